// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package document tracks the text of documents open in the editor.
package document

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is a snapshot of an open text document.
type Document struct {
	URI        protocol.DocumentUri // Document URI.
	LanguageID string               // Editor language identifier.
	Version    protocol.Integer     // Editor version, increasing on each change.
	Text       string               // Full document text.
}

// Offset converts an editor position to a byte offset into the text.
//
// Characters are counted in UTF-16 code units. Positions past the end of a
// line clamp to the end of that line, and lines past the end of the text
// clamp to the end of the text.
func (doc *Document) Offset(pos protocol.Position) int {
	text := doc.Text

	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		n := strings.IndexByte(text[offset:], '\n')
		if n < 0 {
			return len(text)
		}
		offset += n + 1
	}

	units := protocol.UInteger(0)
	for n, r := range text[offset:] {
		if units >= pos.Character || r == '\n' {
			return offset + n
		}
		units += protocol.UInteger(utf16.RuneLen(r))
	}

	return len(text)
}

// LineTo returns the text of the position's line, up to the position.
func (doc *Document) LineTo(pos protocol.Position) string {
	start := doc.Offset(protocol.Position{Line: pos.Line})
	end := doc.Offset(pos)
	return doc.Text[start:end]
}

// isWordByte reports if b can be part of an operand word.
func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '.' || b == '$' || b == '%':
		return true
	}
	return false
}

// WordAt returns the word surrounding the position, or an empty string.
func (doc *Document) WordAt(pos protocol.Position) (word string) {
	offset := doc.Offset(pos)

	start := offset
	for start > 0 && isWordByte(doc.Text[start-1]) {
		start--
	}
	end := offset
	for end < len(doc.Text) && isWordByte(doc.Text[end]) {
		end++
	}

	return doc.Text[start:end]
}

// apply applies a single content change to the document text.
func (doc *Document) apply(change any) (err error) {
	switch change := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		doc.Text = change.Text
	case *protocol.TextDocumentContentChangeEventWhole:
		doc.Text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		err = doc.applyRange(change.Range, change.Text)
	case *protocol.TextDocumentContentChangeEvent:
		err = doc.applyRange(change.Range, change.Text)
	default:
		err = ErrChangeInvalid
	}
	return
}

func (doc *Document) applyRange(rng *protocol.Range, text string) (err error) {
	if rng == nil {
		doc.Text = text
		return
	}

	start := doc.Offset(rng.Start)
	end := doc.Offset(rng.End)
	if end < start {
		err = ErrRangeInvalid
		return
	}

	doc.Text = doc.Text[:start] + text + doc.Text[end:]
	return
}
