package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"rapcfg/internal/check"
	"rapcfg/internal/parser"
)

// SemanticTokenTypes is the legend advertised to clients; semantic token type
// indices below refer to positions in this slice.
var SemanticTokenTypes = []string{
	"keyword",
	"type",
	"variable",
	"property",
	"string",
	"number",
	"macro",
	"operator",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
}

// Handler implements the LSP handlers for class-definition config files.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]string // open document contents, keyed by path
}

func NewHandler() *Handler {
	return &Handler{
		docs: make(map[string]string),
	}
}

// Initialize advertises the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("rapcfg LSP initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("rapcfg LSP shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.docs[path] = params.TextDocument.Text
	h.mu.Unlock()

	h.publishDiagnostics(ctx, params.TextDocument.URI, path, params.TextDocument.Text)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	// Full sync: the last whole-document change wins.
	var text string
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			text = whole.Text
		}
	}

	h.mu.Lock()
	h.docs[path] = text
	h.mu.Unlock()

	h.publishDiagnostics(ctx, params.TextDocument.URI, path, text)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.docs, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentCompletion offers the handful of words the language knows.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	kindKeyword := protocol.CompletionItemKindKeyword
	var items []protocol.CompletionItem
	for _, word := range []string{"class", "delete", "true", "false"} {
		items = append(items, protocol.CompletionItem{
			Label: word,
			Kind:  &kindKeyword,
		})
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull computes semantic tokens for the whole
// document straight from the token stream.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	source, err := h.documentText(path)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: EncodeSemanticTokens(CollectSemanticTokens(source)),
	}, nil
}

func (h *Handler) documentText(path string) (string, error) {
	h.mu.RLock()
	text, ok := h.docs[path]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.URI, path string, text string) {
	file, parseErrors := parser.ParseSource(path, text)
	diagnostics := ConvertParseErrors(parseErrors)
	if len(parseErrors) == 0 {
		checked := check.NewAnalyzer().Check(file)
		diagnostics = append(diagnostics, ConvertCheckDiagnostics(checked)...)
	}
	if diagnostics == nil {
		// An explicit empty list clears stale squiggles on the client.
		diagnostics = []protocol.Diagnostic{}
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// uriToPath converts a file URI into a platform-local path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
