package server

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/ezrec/asmls/internal"
	"github.com/ezrec/asmls/register"
)

// cursorLine is a line of assembly up to the cursor.
type cursorLine struct {
	Mnemonic string // First whitespace delimited word.
	Operand  string // Partial operand word ending at the cursor.
	InArgs   bool   // If set, the cursor is past the mnemonic.
}

// isOperandByte reports if b can be part of a register operand.
func isOperandByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// inComment reports if text has a ';' comment start outside of a quoted
// character or string literal.
func inComment(text string) bool {
	var quote byte
	for n := 0; n < len(text); n++ {
		c := text[n]
		switch {
		case quote == '`' && c == '\\':
			// Back-quoted strings take C style escapes.
			n++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == ';':
			return true
		}
	}
	return false
}

// parseCursorLine splits the text of a line, up to the cursor.
func parseCursorLine(text string) (cl cursorLine, ok bool) {
	// No completions inside comments.
	if inComment(text) {
		return
	}

	text = strings.TrimLeft(text, "\t ")
	if len(text) == 0 {
		return
	}

	// Labels are not mnemonics.
	if colon := strings.IndexByte(text, ':'); colon >= 0 && !strings.ContainsAny(text[:colon], "\t ") {
		text = strings.TrimLeft(text[colon+1:], "\t ")
		if len(text) == 0 {
			return
		}
	}

	end := strings.IndexAny(text, "\t ")
	if end < 0 {
		cl.Mnemonic = text
		ok = true
		return
	}
	cl.Mnemonic = text[:end]
	cl.InArgs = true

	start := len(text)
	for start > end && isOperandByte(text[start-1]) {
		start--
	}
	cl.Operand = text[start:]

	ok = true
	return
}

// completionItem builds the completion of a register. The inserted text
// follows the case the user started typing in.
func completionItem(reg register.Register, typed string) protocol.CompletionItem {
	kind := protocol.CompletionItemKindVariable
	detail := reg.Detail()

	insert := reg.Name
	if len(typed) != 0 && typed == strings.ToLower(typed) {
		insert = strings.ToLower(insert)
	}

	return protocol.CompletionItem{
		Label:      reg.Name,
		Kind:       &kind,
		Detail:     &detail,
		InsertText: &insert,
		Documentation: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: reg.Description,
		},
		Data: reg.Name,
	}
}

func (s *Server) textDocumentCompletion(context *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := []protocol.CompletionItem{}

	uri := params.TextDocument.URI
	doc, ok := s.documents.Get(uri)
	if !ok {
		return items, nil
	}

	fs := s.documentSettings(uri)

	cl, ok := parseCursorLine(doc.LineTo(params.Position))
	if !ok {
		return items, nil
	}

	log.Debugf("completion %v:%d mnemonic %q operand %q (tab size %d, spaces %v)",
		uri, params.Position.Line, cl.Mnemonic, cl.Operand, fs.TabSize, fs.InsertSpaces)

	if !cl.InArgs {
		return items, nil
	}

	limit := s.globalSettings().MaxCompletionItems
	for reg := range internal.IterSeqLimit(s.catalog.WithPrefix(cl.Operand), limit) {
		items = append(items, completionItem(reg, cl.Operand))
	}

	return items, nil
}
