// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package server implements the assembly language server protocol handler.
package server

import (
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/ezrec/asmls/config"
	"github.com/ezrec/asmls/document"
	"github.com/ezrec/asmls/register"
	"github.com/ezrec/asmls/settings"
)

// NAME is the server name reported to clients.
const NAME = "asmls"

// Client-bound and dynamically registered methods.
const (
	methodWorkspaceConfiguration          = "workspace/configuration"
	methodClientRegisterCapability        = "client/registerCapability"
	methodWorkspaceDidChangeConfiguration = "workspace/didChangeConfiguration"
)

var log = commonlog.GetLogger("asmls.server")

// Server is the assembly language server state.
type Server struct {
	Version string // Version reported to clients.

	catalog   *register.Catalog // Shared, read-only register catalog.
	config    config.Config     // Process configuration.
	documents *document.Store   // Open documents.
	handler   protocol.Handler  // LSP method dispatch.
	calls     atomic.Int32      // Calls to the client awaiting an answer.

	lock                                      sync.RWMutex
	settings                                  *settings.Cache // Per-document editor settings.
	global                                    settings.Global // Settings pushed by the client.
	hasConfigurationCapability                bool
	hasDiagnosticRelatedInformationCapability bool
}

// NewServer creates a language server answering from catalog.
func NewServer(catalog *register.Catalog, cfg config.Config) (s *Server) {
	s = &Server{
		Version:   "0.0.1",
		catalog:   catalog,
		config:    cfg,
		documents: document.NewStore(),
		settings:  settings.NewCache(cfg.Defaults, nil, 0),
		global:    settings.DefaultGlobal,
	}

	s.handler = protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		WorkspaceDidChangeConfiguration: s.workspaceDidChangeConfiguration,
		TextDocumentDidOpen:             s.textDocumentDidOpen,
		TextDocumentDidChange:           s.textDocumentDidChange,
		TextDocumentDidClose:            s.textDocumentDidClose,
		TextDocumentCompletion:          s.textDocumentCompletion,
		TextDocumentHover:               s.textDocumentHover,
	}

	return
}

// settingsCache returns the current per-document settings cache.
func (s *Server) settingsCache() *settings.Cache {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.settings
}

// configurationCapable reports if the client supports workspace/configuration.
func (s *Server) configurationCapable() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.hasConfigurationCapability
}

// globalSettings returns the settings last pushed by the client.
func (s *Server) globalSettings() settings.Global {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.global
}
