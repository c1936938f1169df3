package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/ezrec/asmls/settings"
)

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	caps := params.Capabilities

	hasConfiguration := caps.Workspace != nil &&
		caps.Workspace.Configuration != nil &&
		*caps.Workspace.Configuration

	hasRelatedInformation := caps.TextDocument != nil &&
		caps.TextDocument.PublishDiagnostics != nil &&
		caps.TextDocument.PublishDiagnostics.RelatedInformation != nil &&
		*caps.TextDocument.PublishDiagnostics.RelatedInformation

	cache := settings.NewCache(s.config.Defaults, nil, 0)
	if hasConfiguration {
		cache = settings.NewCache(s.config.Defaults, s.fetchSettings(context.Call), s.config.ConfigurationTimeout())
	}

	s.lock.Lock()
	s.hasConfigurationCapability = hasConfiguration
	s.hasDiagnosticRelatedInformationCapability = hasRelatedInformation
	s.settings = cache
	s.global = settings.DefaultGlobal
	s.lock.Unlock()

	log.Infof("initialize: configuration %v, diagnostic related information %v", hasConfiguration, hasRelatedInformation)

	capabilities := s.handler.CreateServerCapabilities()

	openClose := true
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &syncKind,
	}

	resolve := false
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		ResolveProvider: &resolve,
	}
	capabilities.HoverProvider = true

	version := s.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    NAME,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	if !s.configurationCapable() {
		return nil
	}

	registration := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     NAME + "." + methodWorkspaceDidChangeConfiguration,
				Method: methodWorkspaceDidChangeConfiguration,
			},
		},
	}

	// The answer arrives on the read loop this notification is holding.
	go func() {
		context.Call(methodClientRegisterCapability, registration, nil)
		log.Debugf("registration of %v done", methodWorkspaceDidChangeConfiguration)
	}()

	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	log.Info("shutdown")
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
