package lsp

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/srcloc/srcloc/source"
)

const lsName = "srcloc"

var log = commonlog.GetLogger("srcloc.lsp")

// Server is a language server that answers textDocument/hover with the
// full coordinate breakdown of the position under the cursor: byte offset,
// line and byte column, character offset, and code-unit offsets under
// UTF-8, UTF-16, and UTF-32.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[string]*document
}

// document is one open text document and the code-unit caches used to
// serve hover queries against it. Handler callbacks run one at a time, so
// the caches have a single consumer.
type document struct {
	src   *source.Source
	utf8  source.CodeUnitsCache
	utf16 source.CodeUnitsCache
	utf32 source.CodeUnitsCache
}

func newDocument(content []byte) *document {
	src := source.New(content)
	src.Freeze()
	return &document{
		src:   src,
		utf8:  src.CodeUnitsCache(source.UTF8),
		utf16: src.CodeUnitsCache(source.UTF16),
		utf32: src.CodeUnitsCache(source.UTF32),
	}
}

// NewServer constructs the hover server.
func NewServer(version string) *Server {
	s := &Server{
		version: version,
		docs:    make(map[string]*document),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentHover:     s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// RunStdio serves the LSP connection over stdin and stdout.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(params.TextDocument.URI, []byte(params.TextDocument.Text))
	log.Infof("opened %s", params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.update(params.TextDocument.URI, []byte(whole.Text))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.lookup(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	offset := NewMapper(doc.src).Offset(params.Position)
	hoverRange := protocol.Range{Start: params.Position, End: params.Position}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describeOffset(doc, offset),
		},
		Range: &hoverRange,
	}, nil
}

// describeOffset renders the coordinate breakdown shown on hover.
func describeOffset(doc *document, offset int) string {
	src := doc.src
	return fmt.Sprintf(
		"byte offset %d\n\nline %d, column %d\n\ncharacter offset %d, column %d\n\ncode units: UTF-8 %d, UTF-16 %d, UTF-32 %d",
		offset,
		src.Line(offset), src.Column(offset),
		src.CharacterOffset(offset), src.CharacterColumn(offset),
		doc.utf8.OffsetAt(offset), doc.utf16.OffsetAt(offset), doc.utf32.OffsetAt(offset),
	)
}

func (s *Server) update(uri string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = newDocument(content)
}

func (s *Server) lookup(uri string) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[uri]
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
