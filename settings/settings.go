// Package settings holds the editor settings the language server honours,
// and the per-document cache of settings resolved from the client.
package settings

import (
	"bytes"
	"encoding/json"
)

// File are the editor settings of a single document.
type File struct {
	TabSize      int  `json:"tabSize" toml:"tab_size"`
	InsertSpaces bool `json:"insertSpaces" toml:"insert_spaces"`
}

// DefaultFile are the settings used when the client provides none.
var DefaultFile = File{
	TabSize:      2,
	InsertSpaces: false,
}

// Global are the server-wide settings pushed by clients that do not support
// per-document configuration.
type Global struct {
	MaxCompletionItems int `json:"maxCompletionItems"` // Cap on completion results, 0 for no cap.
}

// DefaultGlobal are the global settings used until a client sends its own.
var DefaultGlobal = Global{}

// merge decodes raw over base. Fields missing from raw keep the base value,
// and a null or empty raw leaves base unchanged.
func merge[T any](base T, raw []byte) (out T, err error) {
	out = base
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return
	}

	err = json.Unmarshal(raw, &out)
	if err != nil {
		out = base
	}
	return
}

// Merge overlays client-provided JSON settings on top of fs.
func (fs File) Merge(raw []byte) (File, error) {
	return merge(fs, raw)
}

// Merge overlays client-provided JSON settings on top of gs.
func (gs Global) Merge(raw []byte) (Global, error) {
	return merge(gs, raw)
}
