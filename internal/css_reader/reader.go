package css_reader

import (
	"github.com/erkyrath/mincss/internal/css_lexer"
	"github.com/erkyrath/mincss/internal/logger"
)

// DefaultMaxDepth bounds the recursion driven by nested parens,
// brackets, function calls, and blocks. The format being parsed has
// no such bound of its own, so a pathological input (thousands of
// nested parens) could otherwise exhaust the call stack.
const DefaultMaxDepth = 256

// context selects which unexpected-token rules apply to a run of
// readAny: the three "any*" variants described share one driver,
// differing only in their terminators and in how they react to a
// stray close-bracket, semicolon, at-keyword, or HTML comment
// delimiter.
type context int

const (
	ctxTopLevel context = iota
	ctxAtRuleHead
	ctxCloseParen
	ctxCloseBracket
)

// Reader builds the untyped tree from a token stream.
type Reader struct {
	stream   *css_lexer.Stream
	sink     *logger.Sink
	maxDepth int
	depth    int
}

// New creates a Reader. A maxDepth of 0 selects DefaultMaxDepth.
func New(stream *css_lexer.Stream, sink *logger.Sink, maxDepth int) *Reader {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Reader{stream: stream, sink: sink, maxDepth: maxDepth}
}

func (r *Reader) enter(line int) bool {
	r.depth++
	if r.depth > r.maxDepth {
		r.sink.Add(line, "(Internal) Nesting too deep")
		return false
	}
	return true
}

func (r *Reader) leave() {
	r.depth--
}

// ReadStylesheet consumes the whole input and returns the Stylesheet
// root, per read_stylesheet: loop until EOF, skipping top-level Space
// and CDO/CDC, dispatching each non-empty statement.
func (r *Reader) ReadStylesheet() *Node {
	sheet := &Node{Kind: Stylesheet, Line: 1}
	for {
		tok := r.stream.Peek()
		if tok.Kind == css_lexer.EOF {
			return sheet
		}
		if tok.Kind == css_lexer.Space || tok.Kind == css_lexer.CDO || tok.Kind == css_lexer.CDC {
			r.stream.Next()
			continue
		}
		if stmt := r.readStatement(); stmt != nil {
			sheet.Children = append(sheet.Children, stmt)
		}
	}
}

// readStatement implements read_statement.
func (r *Reader) readStatement() *Node {
	tok := r.stream.Peek()

	if tok.Kind == css_lexer.AtKeyword {
		r.stream.Next()
		node := &Node{Kind: AtRule, Text: tok.Text, Line: tok.Line}
		node.Children = append(node.Children, r.readAny(ctxAtRuleHead)...)

		next := r.stream.Peek()
		switch next.Kind {
		case css_lexer.Semicolon:
			r.stream.Next()
		case css_lexer.LBrace:
			node.Children = append(node.Children, r.readBlock())
		case css_lexer.EOF:
			r.sink.Add(next.Line, "Incomplete @-rule")
		}
		return node
	}

	node := &Node{Kind: TopLevel, Line: tok.Line}
	for {
		node.Children = append(node.Children, r.readAny(ctxTopLevel)...)
		next := r.stream.Peek()
		if next.Kind != css_lexer.LBrace {
			break
		}
		node.Children = append(node.Children, r.readBlock())
	}
	if len(node.Children) == 0 {
		return nil
	}
	return node
}

// readBlock implements read_block: consumes the opening brace, then
// loops appending children until the matching close brace (also
// consumed). A nested '{' recurses; '(', '[', and Function open a
// nested balanced node; everything else is a leaf.
func (r *Reader) readBlock() *Node {
	open := r.stream.Next() // the '{'
	node := &Node{Kind: Block, Line: open.Line}

	if !r.enter(open.Line) {
		return node
	}
	defer r.leave()

	for {
		tok := r.stream.Peek()
		switch tok.Kind {
		case css_lexer.EOF:
			r.sink.Add(tok.Line, "Unexpected end of block")
			return node
		case css_lexer.RBrace:
			r.stream.Next()
			return node
		case css_lexer.LBrace:
			node.Children = append(node.Children, r.readBlock())
		case css_lexer.LParen:
			r.stream.Next()
			node.Children = append(node.Children, r.readGroup(Parens, tok.Line, ctxCloseParen, nil))
		case css_lexer.LBracket:
			r.stream.Next()
			node.Children = append(node.Children, r.readGroup(Brackets, tok.Line, ctxCloseBracket, nil))
		case css_lexer.Function:
			r.stream.Next()
			node.Children = append(node.Children, r.readGroup(FunctionNode, tok.Line, ctxCloseParen, tok.Text))
		default:
			r.stream.Next()
			node.Children = append(node.Children, &Node{Kind: TokenNode, Tok: tok, Line: tok.Line})
		}
	}
}

// readGroup opens a Parens/Brackets/FunctionNode container, reading
// its balanced body with readAny(innerCtx) and consuming the matching
// closer (or reporting "Missing close-delimiter" at EOF).
func (r *Reader) readGroup(kind Kind, line int, innerCtx context, name []rune) *Node {
	node := &Node{Kind: kind, Text: name, Line: line}
	if !r.enter(line) {
		return node
	}
	defer r.leave()
	node.Children = r.readAny(innerCtx)
	return node
}

// readAny is the single parameterized driver behind the three
// near-duplicate "read_any" routines: top-level content, an at-rule's
// head (up to ';' or '{'), and the body of a parenthesized/bracketed/
// function group (up to its closer). ctx selects the terminator set
// and the diagnostic text for each class of unexpected token.
func (r *Reader) readAny(ctx context) []*Node {
	var nodes []*Node
	for {
		tok := r.stream.Peek()
		switch tok.Kind {

		case css_lexer.EOF:
			if ctx == ctxCloseParen || ctx == ctxCloseBracket {
				r.sink.Add(tok.Line, "Missing close-delimiter")
			}
			return nodes

		case css_lexer.LBrace:
			if ctx == ctxTopLevel || ctx == ctxAtRuleHead {
				return nodes
			}
			r.sink.Add(tok.Line, "Unexpected block inside brackets")
			r.readBlock()
			continue

		case css_lexer.AtKeyword:
			if ctx == ctxTopLevel {
				return nodes
			}
			r.stream.Next()
			if ctx == ctxAtRuleHead {
				r.sink.Add(tok.Line, "Unexpected @-keyword inside @-rule")
			} else {
				r.sink.Add(tok.Line, "Unexpected @-keyword inside brackets")
			}
			continue

		case css_lexer.Semicolon:
			if ctx == ctxAtRuleHead {
				return nodes
			}
			r.stream.Next()
			if ctx == ctxTopLevel {
				nodes = append(nodes, &Node{Kind: TokenNode, Tok: tok, Line: tok.Line})
			} else {
				r.sink.Add(tok.Line, "Unexpected semicolon inside brackets")
			}
			continue

		case css_lexer.RParen:
			if ctx == ctxCloseParen {
				r.stream.Next()
				return nodes
			}
			r.stream.Next()
			if ctx == ctxAtRuleHead {
				r.sink.Add(tok.Line, "Unexpected close-paren inside @-rule")
			} else {
				r.sink.Add(tok.Line, "Unexpected close-paren")
			}
			continue

		case css_lexer.RBracket:
			if ctx == ctxCloseBracket {
				r.stream.Next()
				return nodes
			}
			r.stream.Next()
			if ctx == ctxAtRuleHead {
				r.sink.Add(tok.Line, "Unexpected close-bracket inside @-rule")
			} else {
				r.sink.Add(tok.Line, "Unexpected close-bracket")
			}
			continue

		case css_lexer.CDO, css_lexer.CDC:
			r.stream.Next()
			if ctx == ctxTopLevel {
				continue
			}
			if ctx == ctxAtRuleHead {
				r.sink.Add(tok.Line, "HTML comment delimiters inside @-rule")
			} else {
				r.sink.Add(tok.Line, "HTML comment delimiters inside brackets")
			}
			continue

		case css_lexer.LParen:
			r.stream.Next()
			nodes = append(nodes, r.readGroup(Parens, tok.Line, ctxCloseParen, nil))
			continue

		case css_lexer.LBracket:
			r.stream.Next()
			nodes = append(nodes, r.readGroup(Brackets, tok.Line, ctxCloseBracket, nil))
			continue

		case css_lexer.Function:
			r.stream.Next()
			nodes = append(nodes, r.readGroup(FunctionNode, tok.Line, ctxCloseParen, tok.Text))
			continue

		default:
			r.stream.Next()
			nodes = append(nodes, &Node{Kind: TokenNode, Tok: tok, Line: tok.Line})
		}
	}
}
