package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.documents.Open(params.TextDocument)

	// Resolve while the read loop is free to deliver the client's answer.
	s.settingsCache().Resolve(params.TextDocument.URI)

	return nil
}

func (s *Server) textDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	err := s.documents.Change(params.TextDocument.URI, params.TextDocument.Version, params.ContentChanges)
	if err != nil {
		// Notifications have no response; an out of sync editor is only logged.
		log.Errorf("didChange: %v", err)
	}
	return nil
}

func (s *Server) textDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	s.documents.Close(uri)
	s.settingsCache().Delete(uri)

	return nil
}
