// Package css_ast defines the typed stylesheet the constructor
// produces: an ordered list of rule-groups, each with its selectors
// and declarations. Unlike the untyped tree one stage down, nothing
// here is a generic container -- every field says exactly what it
// means in CSS terms.
package css_ast

// Stylesheet is the root of a successfully constructed document: an
// ordered list of rule-groups. Rule-groups that ended up with no
// selectors or no declarations are never added here.
type Stylesheet struct {
	Rules []*RuleGroup
}

// RuleGroup is one or more comma-separated selectors sharing one
// declaration block, e.g. "h1, h2.big { font-size: 12pt }".
type RuleGroup struct {
	Selectors    []*Selector
	Declarations []*Declaration
	Line         int
}

// Combinator describes the relationship between a SelectorElement and
// the one before it in the same Selector. The first element of every
// Selector always has combinator None.
type Combinator uint8

const (
	None Combinator = iota
	Descendant
	Child
	AdjacentSibling
)

func (c Combinator) String() string {
	switch c {
	case None:
		return "None"
	case Descendant:
		return "Descendant"
	case Child:
		return "Child"
	case AdjacentSibling:
		return "AdjacentSibling"
	}
	return "???"
}

// Selector is a chain of simple selectors joined by combinators, e.g.
// "a b > c" is three SelectorElements with combinators
// [None, Descendant, Child].
type Selector struct {
	Elements []*SelectorElement
}

// SelectorElement is one simple selector: an optional element name
// (Ident text, or "*" for the universal selector), plus any number of
// class and id (hash) suffixes. Pseudo-class names are recorded but
// not further interpreted -- the ":func()" functional form and
// attribute selectors are not recognized at all, matching the known
// gaps in the system this parser implements.
type SelectorElement struct {
	Combinator Combinator
	Element    string // "" if no element name/"*" was given
	HasElement bool
	Classes    []string
	Hashes     []string
	Pseudos    []string
}

// HasContent reports whether any of element, class, id, or pseudo was
// actually present -- an element with none of these is not a valid
// simple selector at all ("No selector found").
func (e *SelectorElement) HasContent() bool {
	return e.HasElement || len(e.Classes) > 0 || len(e.Hashes) > 0 || len(e.Pseudos) > 0
}

// Declaration is one "property: value" pair inside a rule-group's
// block, e.g. "color: red" or "font-size: 12pt !important".
type Declaration struct {
	Property  string
	Important bool
	Values    []*PValue
	Line      int
}

// ValueKind distinguishes a PValue's two possible payloads: a single
// token (the common case) or a nested function-call expression.
type ValueKind uint8

const (
	ValueToken ValueKind = iota
	ValueFunction
)

// Separator tags what punctuation, if any, preceded a PValue in its
// enclosing expression.
type Separator uint8

const (
	SepNone Separator = iota
	SepSlash
	SepComma
)

func (s Separator) String() string {
	switch s {
	case SepNone:
		return "None"
	case SepSlash:
		return "/"
	case SepComma:
		return ","
	}
	return "???"
}

// Sign tags a leading unary "+" or "-" applied to a PValue.
type Sign uint8

const (
	SignNone Sign = iota
	SignPlus
	SignMinus
)

func (s Sign) String() string {
	switch s {
	case SignNone:
		return "None"
	case SignPlus:
		return "+"
	case SignMinus:
		return "-"
	}
	return "???"
}

// PValue is one term of a declaration's value-expression: a Number,
// Percentage, Dimension, String, Ident, URI, or Hash token, or -- for a
// function call like "rgb(1, 2, 3)" -- a name plus a nested list of
// PValues for its arguments.
type PValue struct {
	Kind ValueKind
	Sep  Separator
	Sign Sign

	// Valid when Kind == ValueToken.
	TokenKind TokenKind
	Text      string
	// Only meaningful when TokenKind == Dimension: the index within
	// Text separating the numeric prefix from the unit suffix.
	Div int

	// Valid when Kind == ValueFunction.
	FuncName string
	Args     []*PValue
}

// TokenKind is the subset of lexer token kinds that can appear as a
// PValue's payload.
type TokenKind uint8

const (
	Number TokenKind = iota
	Percentage
	Dimension
	String
	Ident
	URI
	Hash
)

func (k TokenKind) String() string {
	switch k {
	case Number:
		return "Number"
	case Percentage:
		return "Percentage"
	case Dimension:
		return "Dimension"
	case String:
		return "String"
	case Ident:
		return "Ident"
	case URI:
		return "URI"
	case Hash:
		return "Hash"
	}
	return "???"
}
