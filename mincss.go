// Package mincss is a minimal CSS 2.1 parser. It turns a stream of
// input characters -- either raw UTF-8 bytes or pre-decoded Unicode
// code points -- into an in-memory Stylesheet: an ordered list of
// rule-groups, each with its selectors and declarations. Errors are
// reported through a line-numbered diagnostic callback (or to
// standard error if none is given) and never abort the parse;
// malformed fragments are skipped so that one bad rule doesn't
// discard the rest of the sheet.
package mincss

import (
	"github.com/erkyrath/mincss/internal/css_ast"
	"github.com/erkyrath/mincss/internal/css_lexer"
	"github.com/erkyrath/mincss/internal/css_parser"
	"github.com/erkyrath/mincss/internal/css_reader"
	"github.com/erkyrath/mincss/internal/logger"
)

// Re-export the typed stylesheet so callers never need to import an
// internal package directly.
type (
	Stylesheet      = css_ast.Stylesheet
	RuleGroup       = css_ast.RuleGroup
	Selector        = css_ast.Selector
	SelectorElement = css_ast.SelectorElement
	Combinator      = css_ast.Combinator
	Declaration     = css_ast.Declaration
	PValue          = css_ast.PValue
	ValueKind       = css_ast.ValueKind
	Separator       = css_ast.Separator
	Sign            = css_ast.Sign
	TokenKind       = css_ast.TokenKind
)

const (
	None            = css_ast.None
	Descendant      = css_ast.Descendant
	Child           = css_ast.Child
	AdjacentSibling = css_ast.AdjacentSibling
)

const (
	ValueToken    = css_ast.ValueToken
	ValueFunction = css_ast.ValueFunction
)

const (
	SepNone  = css_ast.SepNone
	SepSlash = css_ast.SepSlash
	SepComma = css_ast.SepComma
)

const (
	SignNone  = css_ast.SignNone
	SignPlus  = css_ast.SignPlus
	SignMinus = css_ast.SignMinus
)

const (
	TokNumber     = css_ast.Number
	TokPercentage = css_ast.Percentage
	TokDimension  = css_ast.Dimension
	TokString     = css_ast.String
	TokIdent      = css_ast.Ident
	TokURI        = css_ast.URI
	TokHash       = css_ast.Hash
)

// Trace selects how much of the pipeline's intermediate state a
// Context dumps through its trace handler, mirroring the "-l"/"-t"
// flags of the command-line tool.
type Trace int

const (
	TraceOff Trace = iota
	TraceLexer
	TraceTree
)

// ErrorHandler receives one diagnostic: its message text and the
// 1-based source line it applies to.
type ErrorHandler func(message string, line int)

// Context holds the configuration for one or more parses: an error
// handler, a trace level, and a recursion-depth ceiling. A Context
// has no parse-in-progress state of its own, so it may be reused
// sequentially for any number of parses (but not concurrently).
type Context struct {
	handler  ErrorHandler
	trace    Trace
	traceOut func(string)
	maxDepth int
}

// NewContext creates a Context with default settings: diagnostics go
// to standard error, tracing is off, and the recursion depth ceiling
// is css_reader.DefaultMaxDepth.
func NewContext() *Context {
	return &Context{maxDepth: css_reader.DefaultMaxDepth}
}

// SetErrorHandler installs h as the destination for every diagnostic
// raised by subsequent parses. A nil handler restores the default
// (writing to standard error).
func (c *Context) SetErrorHandler(h ErrorHandler) {
	c.handler = h
}

// SetTrace selects which intermediate stage, if any, is dumped
// through out during subsequent parses.
func (c *Context) SetTrace(level Trace, out func(string)) {
	c.trace = level
	c.traceOut = out
}

// SetMaxDepth overrides the recursion-depth ceiling used by
// subsequent parses. A non-positive value restores the default.
func (c *Context) SetMaxDepth(n int) {
	if n <= 0 {
		n = css_reader.DefaultMaxDepth
	}
	c.maxDepth = n
}

// ByteReader supplies one input byte (0..255) at a time, returning a
// negative value at end of stream. It is never called again once it
// has returned negative.
type ByteReader func() int

// RuneReader supplies one already-decoded Unicode scalar at a time,
// returning a negative value at end of stream.
type RuneReader func() rune

// ParseBytesUTF8 parses read as a stream of UTF-8 bytes, decoding it
// internally. It returns the constructed stylesheet and the number of
// diagnostics raised along the way.
func (c *Context) ParseBytesUTF8(read ByteReader) (*Stylesheet, int) {
	sink := logger.NewSink(c.handlerFunc())
	src := css_lexer.NewByteSource(css_lexer.ByteReader(read))
	buf := css_lexer.NewBuffer(src, sink)
	return c.parseBuffer(buf, sink)
}

// ParseRunes parses read as a stream of pre-decoded Unicode scalars.
// It returns the constructed stylesheet and the number of diagnostics
// raised along the way.
func (c *Context) ParseRunes(read RuneReader) (*Stylesheet, int) {
	sink := logger.NewSink(c.handlerFunc())
	src := css_lexer.NewRuneSource(css_lexer.RuneReader(read))
	buf := css_lexer.NewBuffer(src, sink)
	return c.parseBuffer(buf, sink)
}

func (c *Context) handlerFunc() logger.Handler {
	if c.handler == nil {
		return nil
	}
	return logger.Handler(c.handler)
}

// parseBuffer drives the three pipeline stages over an already-wired
// Buffer. With a lexer or tree trace selected it dumps that stage and
// stops there, returning an empty stylesheet.
func (c *Context) parseBuffer(buf *css_lexer.Buffer, sink *logger.Sink) (*Stylesheet, int) {
	lex := css_lexer.NewLexer(buf, sink)

	if c.trace == TraceLexer {
		return c.traceLexer(lex, sink)
	}

	stream := css_lexer.NewStream(lex)
	rdr := css_reader.New(stream, sink, c.maxDepth)
	tree := rdr.ReadStylesheet()

	if c.trace == TraceTree {
		c.dumpTree(tree, 0)
		return &css_ast.Stylesheet{}, sink.Count()
	}

	sheet := css_parser.Construct(tree, sink)
	return sheet, sink.Count()
}

// traceLexer drains every token through to EOF, writing one line per
// token to c.traceOut, and returns an empty result -- matching the
// CLI's "-l" mode, which stops after lexing.
func (c *Context) traceLexer(lex *css_lexer.Lexer, sink *logger.Sink) (*Stylesheet, int) {
	for {
		tok := lex.NextToken()
		if c.traceOut != nil {
			c.traceOut(formatTraceToken(tok))
		}
		if tok.Kind == css_lexer.EOF {
			break
		}
	}
	return &css_ast.Stylesheet{}, sink.Count()
}

func (c *Context) dumpTree(node *css_reader.Node, depth int) {
	if c.traceOut == nil {
		return
	}
	c.traceOut(formatTreeLine(node, depth))
	for _, child := range node.Children {
		c.dumpTree(child, depth+1)
	}
}
