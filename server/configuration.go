package server

import (
	contextpkg "context"
	"encoding/json"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/ezrec/asmls/settings"
)

// fetchSettings returns a fetcher that asks the client for the editor
// settings of a document.
func (s *Server) fetchSettings(call glsp.CallFunc) settings.Fetcher {
	section := s.config.EditorSection

	return func(ctx contextpkg.Context, uri string) (fs settings.File, err error) {
		scope := uri
		params := protocol.ConfigurationParams{
			Items: []protocol.ConfigurationItem{
				{ScopeURI: &scope, Section: &section},
			},
		}

		done := make(chan []json.RawMessage, 1)
		go func() {
			var result []json.RawMessage
			call(methodWorkspaceConfiguration, params, &result)
			done <- result
		}()

		select {
		case result := <-done:
			if len(result) == 0 {
				err = ErrConfigurationEmpty
				return
			}
			fs, err = s.config.Defaults.Merge(result[0])
		case <-ctx.Done():
			err = ctx.Err()
		}
		return
	}
}

// documentSettings returns the editor settings for a document.
func (s *Server) documentSettings(uri protocol.DocumentUri) settings.File {
	return s.settingsCache().Get(contextpkg.Background(), uri)
}

func (s *Server) workspaceDidChangeConfiguration(context *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	if s.configurationCapable() {
		cache := s.settingsCache()
		cache.Clear()
		for _, uri := range s.documents.URIs() {
			cache.Resolve(uri)
		}
		return nil
	}

	global := settings.DefaultGlobal
	all, _ := params.Settings.(map[string]any)
	if section, ok := all[s.config.GlobalSection]; ok && section != nil {
		raw, err := json.Marshal(section)
		if err == nil {
			global, err = global.Merge(raw)
		}
		if err != nil {
			log.Warningf("%v", &ErrSettings{Section: s.config.GlobalSection, Err: err})
		}
	}

	s.lock.Lock()
	s.global = global
	s.lock.Unlock()

	return nil
}
