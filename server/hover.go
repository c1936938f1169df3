package server

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/ezrec/asmls/register"
)

// hoverText formats a register for a markdown hover.
func hoverText(reg register.Register) string {
	return f("**%v** (%v)\n\n%v", reg.Name, reg.Detail(), reg.Description)
}

func (s *Server) textDocumentHover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.documents.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	// AT&T syntax prefixes registers with '%'.
	word := strings.TrimPrefix(doc.WordAt(params.Position), "%")

	reg, ok := s.catalog.Lookup(word)
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(reg),
		},
	}, nil
}
