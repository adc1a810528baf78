// Package css_reader implements the second stage of the CSS 2.1
// pipeline: the structural reader. It turns a token stream into an
// untyped tree of balanced fragments -- a stylesheet of top-level
// statements and at-rules, each possibly containing a block, with
// parens/brackets/function calls nested recursively -- enforcing
// bracket/brace/paren balance and "any*" recovery along the way. It
// has no notion of selectors or declarations; that belongs to the
// constructor one layer up.
package css_reader

import "github.com/erkyrath/mincss/internal/css_lexer"

// Kind tags an untyped tree node.
type Kind int

const (
	Stylesheet Kind = iota
	TopLevel
	AtRule
	Block
	Parens
	Brackets
	FunctionNode
	TokenNode
)

func (k Kind) String() string {
	switch k {
	case Stylesheet:
		return "Stylesheet"
	case TopLevel:
		return "TopLevel"
	case AtRule:
		return "AtRule"
	case Block:
		return "Block"
	case Parens:
		return "Parens"
	case Brackets:
		return "Brackets"
	case FunctionNode:
		return "Function"
	case TokenNode:
		return "Token"
	}
	return "???"
}

// Node is one untyped tree node. Text carries the AtRule's keyword or
// the FunctionNode's name; Tok carries the underlying token for a
// TokenNode leaf; Children is empty for every leaf kind.
type Node struct {
	Kind     Kind
	Text     []rune
	Tok      css_lexer.Token
	Children []*Node
	Line     int
}
