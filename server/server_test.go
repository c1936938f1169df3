package server

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"golang.org/x/text/language"

	"github.com/ezrec/asmls/config"
	"github.com/ezrec/asmls/register"
	"github.com/ezrec/asmls/settings"
	"github.com/ezrec/asmls/translate"
)

const testURI = "file:///test.asm"

// fakeClient answers the requests a server makes to the editor.
type fakeClient struct {
	lock          sync.Mutex
	configuration map[string]string // URI to editor settings JSON.
	fetches       int
	registered    chan protocol.RegistrationParams
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		configuration: map[string]string{},
		registered:    make(chan protocol.RegistrationParams, 1),
	}
}

func (fc *fakeClient) Context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {},
		Call: func(method string, params any, result any) {
			switch method {
			case "workspace/configuration":
				items := params.(protocol.ConfigurationParams).Items
				fc.lock.Lock()
				fc.fetches++
				raw, ok := fc.configuration[*items[0].ScopeURI]
				fc.lock.Unlock()
				if !ok {
					raw = "null"
				}
				_ = json.Unmarshal([]byte("["+raw+"]"), result)
			case "client/registerCapability":
				fc.registered <- params.(protocol.RegistrationParams)
			}
		},
	}
}

func (fc *fakeClient) Fetches() int {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	return fc.fetches
}

func newTestServer(t *testing.T, fc *fakeClient, capabilities string) *Server {
	translate.Use(language.AmericanEnglish)

	s := NewServer(register.Build(), config.Default())

	var params protocol.InitializeParams
	err := json.Unmarshal([]byte(`{"capabilities":`+capabilities+`}`), &params)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.initialize(fc.Context(), &params)
	if err != nil {
		t.Fatal(err)
	}

	err = s.initialized(fc.Context(), &protocol.InitializedParams{})
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func openDocument(t *testing.T, s *Server, fc *fakeClient, text string) {
	err := s.textDocumentDidOpen(fc.Context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "asm",
			Version:    1,
			Text:       text,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func positionParams(uri string, line, char protocol.UInteger) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Position:     protocol.Position{Line: line, Character: char},
	}
}

func complete(t *testing.T, s *Server, fc *fakeClient, uri string, line, char protocol.UInteger) []protocol.CompletionItem {
	result, err := s.textDocumentCompletion(fc.Context(), &protocol.CompletionParams{
		TextDocumentPositionParams: positionParams(uri, line, char),
	})
	assert.NoError(t, err)

	items, ok := result.([]protocol.CompletionItem)
	assert.True(t, ok)
	return items
}

func labels(items []protocol.CompletionItem) (names []string) {
	names = []string{}
	for _, item := range items {
		names = append(names, item.Label)
	}
	return
}

func TestInitialize(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := NewServer(register.Build(), config.Default())

	var params protocol.InitializeParams
	assert.NoError(json.Unmarshal([]byte(`{"capabilities":{"textDocument":{"publishDiagnostics":{"relatedInformation":true}}}}`), &params))

	result, err := s.initialize(fc.Context(), &params)
	assert.NoError(err)

	initResult, ok := result.(protocol.InitializeResult)
	assert.True(ok)
	assert.Equal(NAME, initResult.ServerInfo.Name)
	assert.Equal("0.0.1", *initResult.ServerInfo.Version)

	syncOptions, ok := initResult.Capabilities.TextDocumentSync.(protocol.TextDocumentSyncOptions)
	assert.True(ok)
	assert.Equal(protocol.TextDocumentSyncKindIncremental, *syncOptions.Change)
	assert.True(*syncOptions.OpenClose)

	assert.NotNil(initResult.Capabilities.CompletionProvider)
	assert.False(*initResult.Capabilities.CompletionProvider.ResolveProvider)
	assert.Equal(true, initResult.Capabilities.HoverProvider)

	assert.False(s.configurationCapable())
	assert.True(s.hasDiagnosticRelatedInformationCapability)

	// No dynamic registration without configuration support.
	assert.NoError(s.initialized(fc.Context(), &protocol.InitializedParams{}))
	select {
	case <-fc.registered:
		t.Error("unexpected capability registration")
	case <-time.After(20 * time.Millisecond):
	}

	assert.NoError(s.setTrace(fc.Context(), &protocol.SetTraceParams{Value: protocol.TraceValueMessage}))
	assert.NoError(s.shutdown(fc.Context()))
}

func TestInitializedRegistersConfiguration(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{"workspace":{"configuration":true}}`)
	assert.True(s.configurationCapable())

	select {
	case reg := <-fc.registered:
		assert.Len(reg.Registrations, 1)
		assert.Equal("workspace/didChangeConfiguration", reg.Registrations[0].Method)
	case <-time.After(time.Second):
		t.Error("missing capability registration")
	}
}

func TestCompletionUnknownDocument(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{}`)

	items := complete(t, s, fc, "file:///never-opened.asm", 0, 0)
	assert.NotNil(items)
	assert.Empty(items)
}

func TestCompletionRegisters(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{}`)

	openDocument(t, s, fc, "start:\n\tmov ea\n\tpush sp\nmov\n; mov e\n\tadd eax, [es")

	items := complete(t, s, fc, testURI, 1, 7)
	assert.Equal([]string{"EAX"}, labels(items))
	assert.Equal("eax", *items[0].InsertText)
	assert.Equal("32-bit register", *items[0].Detail)
	assert.Equal(protocol.CompletionItemKindVariable, *items[0].Kind)

	items = complete(t, s, fc, testURI, 2, 8)
	assert.Equal([]string{"SP", "SPL"}, labels(items))

	// Cursor on the mnemonic.
	assert.Empty(complete(t, s, fc, testURI, 3, 3))

	// Inside a comment.
	assert.Empty(complete(t, s, fc, testURI, 4, 7))

	items = complete(t, s, fc, testURI, 5, 13)
	assert.Equal([]string{"ESP", "ESI", "ES"}, labels(items))

	// Empty operand offers every register.
	items = complete(t, s, fc, testURI, 1, 5)
	assert.Len(items, register.Build().Len())
}

func TestCompletionLabel(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{}`)

	openDocument(t, s, fc, "loop: dec EC")

	items := complete(t, s, fc, testURI, 0, 12)
	assert.Equal([]string{"ECX"}, labels(items))
	assert.Equal("ECX", *items[0].InsertText)
}

func TestCompletionGlobalLimit(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{}`)

	openDocument(t, s, fc, "mov e")

	assert.Len(complete(t, s, fc, testURI, 0, 5), 11)

	err := s.workspaceDidChangeConfiguration(fc.Context(), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"asmls": map[string]any{"maxCompletionItems": 3}},
	})
	assert.NoError(err)
	assert.Equal([]string{"EAX", "ECX", "EDX"}, labels(complete(t, s, fc, testURI, 0, 5)))

	// Missing section resets to the global defaults.
	err = s.workspaceDidChangeConfiguration(fc.Context(), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"other": true},
	})
	assert.NoError(err)
	assert.Equal(settings.DefaultGlobal, s.globalSettings())

	// Malformed section falls back to the defaults.
	err = s.workspaceDidChangeConfiguration(fc.Context(), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"asmls": map[string]any{"maxCompletionItems": "many"}},
	})
	assert.NoError(err)
	assert.Equal(settings.DefaultGlobal, s.globalSettings())

	err = s.workspaceDidChangeConfiguration(fc.Context(), &protocol.DidChangeConfigurationParams{})
	assert.NoError(err)
}

func TestSettingsWithoutConfiguration(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	fc.configuration[testURI] = `{"tabSize": 8}`
	s := newTestServer(t, fc, `{}`)

	openDocument(t, s, fc, "mov eax, 1")

	assert.Equal(settings.File{TabSize: 2, InsertSpaces: false}, s.documentSettings(testURI))
	assert.Equal(0, fc.Fetches())
}

func TestSettingsWithConfiguration(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	fc.configuration[testURI] = `{"tabSize": 8}`
	s := newTestServer(t, fc, `{"workspace":{"configuration":true}}`)

	openDocument(t, s, fc, "mov eax, 1")

	assert.Equal(settings.File{TabSize: 8, InsertSpaces: false}, s.documentSettings(testURI))
	assert.Equal(settings.File{TabSize: 8, InsertSpaces: false}, s.documentSettings(testURI))
	assert.Equal(1, fc.Fetches())
	assert.Equal(1, s.settingsCache().Len())

	// Unconfigured documents get the defaults.
	assert.Equal(settings.DefaultFile, s.documentSettings("file:///other.asm"))

	// A configuration change clears the cache, and new settings are fetched.
	fc.lock.Lock()
	fc.configuration[testURI] = `{"insertSpaces": true}`
	fc.lock.Unlock()
	assert.NoError(s.workspaceDidChangeConfiguration(fc.Context(), &protocol.DidChangeConfigurationParams{}))
	assert.Equal(settings.File{TabSize: 2, InsertSpaces: true}, s.documentSettings(testURI))
	assert.Equal(3, fc.Fetches())
	assert.Equal(1, s.settingsCache().Len())

	// Closing the document evicts its settings.
	assert.NoError(s.textDocumentDidClose(fc.Context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))
	assert.Equal(0, s.settingsCache().Len())
	_, ok := s.documents.Get(testURI)
	assert.False(ok)
}

func TestDidChange(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{}`)

	openDocument(t, s, fc, "mov eax, 1\n")

	err := s.textDocumentDidChange(fc.Context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 4},
					End:   protocol.Position{Line: 0, Character: 7},
				},
				Text: "cx",
			},
		},
	})
	assert.NoError(err)

	doc, ok := s.documents.Get(testURI)
	assert.True(ok)
	assert.Equal("mov cx, 1\n", doc.Text)

	// Changes to unknown documents are ignored.
	err = s.textDocumentDidChange(fc.Context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///unknown.asm"},
			Version:                1,
		},
	})
	assert.NoError(err)
}

func TestHover(t *testing.T) {
	assert := assert.New(t)

	fc := newFakeClient()
	s := newTestServer(t, fc, `{}`)

	openDocument(t, s, fc, "mov eflags, %al\n")

	hover := func(char protocol.UInteger) *protocol.Hover {
		h, err := s.textDocumentHover(fc.Context(), &protocol.HoverParams{
			TextDocumentPositionParams: positionParams(testURI, 0, char),
		})
		assert.NoError(err)
		return h
	}

	h := hover(6)
	assert.NotNil(h)
	content, ok := h.Contents.(protocol.MarkupContent)
	assert.True(ok)
	assert.Equal(protocol.MarkupKindMarkdown, content.Kind)
	assert.Contains(content.Value, "**EFLAGS** (32-bit register)")

	h = hover(14)
	assert.NotNil(h)
	assert.Contains(h.Contents.(protocol.MarkupContent).Value, "**AL** (8-bit register)")

	assert.Nil(hover(1))

	h, err := s.textDocumentHover(fc.Context(), &protocol.HoverParams{
		TextDocumentPositionParams: positionParams("file:///unknown.asm", 0, 0),
	})
	assert.NoError(err)
	assert.Nil(h)
}

func TestParseCursorLine(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		cl   cursorLine
		ok   bool
	}){
		{"", cursorLine{}, false},
		{"  \t", cursorLine{}, false},
		{"\tmov", cursorLine{Mnemonic: "mov"}, true},
		{"\tmov ", cursorLine{Mnemonic: "mov", InArgs: true}, true},
		{"mov eax, r", cursorLine{Mnemonic: "mov", Operand: "r", InArgs: true}, true},
		{"lea esi, [ebx+ed", cursorLine{Mnemonic: "lea", Operand: "ed", InArgs: true}, true},
		{"top:", cursorLine{}, false},
		{"top: jmp", cursorLine{Mnemonic: "jmp"}, true},
		{"ret ; done", cursorLine{}, false},
		{"cmp al, ';'", cursorLine{Mnemonic: "cmp", InArgs: true}, true},
		{"db ';', \"a;b\", e", cursorLine{Mnemonic: "db", Operand: "e", InArgs: true}, true},
		{"db `\\`;`, e", cursorLine{Mnemonic: "db", Operand: "e", InArgs: true}, true},
		{"cmp al, ';' ; e", cursorLine{}, false},
		{"db 'unterminated;", cursorLine{Mnemonic: "db", InArgs: true}, true},
	}

	for _, entry := range table {
		cl, ok := parseCursorLine(entry.text)
		assert.Equal(entry.ok, ok, entry.text)
		assert.Equal(entry.cl, cl, entry.text)
	}
}
