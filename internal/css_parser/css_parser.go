// Package css_parser implements the third stage of the CSS 2.1
// pipeline: the constructor. It walks the untyped tree produced by
// css_reader and builds a typed css_ast.Stylesheet, recognizing
// selector syntax, splitting declaration lists on ';', and parsing
// each declaration's property, value-expression, and trailing
// "!important" flag.
package css_parser

import (
	"strings"

	"github.com/erkyrath/mincss/internal/css_ast"
	"github.com/erkyrath/mincss/internal/css_lexer"
	"github.com/erkyrath/mincss/internal/css_reader"
	"github.com/erkyrath/mincss/internal/logger"
)

// Parser holds the state needed while walking one untyped tree --
// currently just the diagnostic sink, but kept as a struct (rather
// than free functions taking a sink) so later stateful additions
// (e.g. a selector-nesting counter) have somewhere to live.
type Parser struct {
	sink *logger.Sink
}

// Construct walks root (a css_reader Stylesheet node) and returns the
// typed stylesheet it describes.
func Construct(root *css_reader.Node, sink *logger.Sink) *css_ast.Stylesheet {
	p := &Parser{sink: sink}
	sheet := &css_ast.Stylesheet{}
	for _, child := range root.Children {
		switch child.Kind {
		case css_reader.AtRule:
			p.constructAtRule(child)
		case css_reader.TopLevel:
			p.constructRulesets(child, sheet)
		default:
			p.sink.Add(child.Line, "(Internal) Invalid node type")
		}
	}
	return sheet
}

// constructAtRule recognizes a handful of at-rule keywords by name;
// everything else -- including a well-formed "@media" whose body is
// never parsed further -- is silently accepted or ignored.
func (p *Parser) constructAtRule(node *css_reader.Node) {
	name := string(node.Text)
	switch {
	case strings.EqualFold(name, "charset"):
		p.sink.Add(node.Line, "@charset rule ignored (must be UTF-8)")
	case strings.EqualFold(name, "import"):
		p.sink.Add(node.Line, "@import rule ignored")
	case strings.EqualFold(name, "page"):
		p.sink.Add(node.Line, "@page rule ignored")
	case strings.EqualFold(name, "media"):
		// Accepted, but its body (if any) was already collected as an
		// ordinary Block child and is simply discarded here.
	default:
		// Unknown at-rule: ignored without comment.
	}
}

// constructRulesets splits a TopLevel node's children on the
// positions of its Block children, pairing each block with the
// selector-range that precedes it.
func (p *Parser) constructRulesets(node *css_reader.Node, sheet *css_ast.Stylesheet) {
	children := node.Children
	start := 0
	for i, child := range children {
		if child.Kind != css_reader.Block {
			continue
		}
		selRange := children[start:i]
		if len(selRange) == 0 {
			p.sink.Add(child.Line, "Block missing selectors")
			start = i + 1
			continue
		}
		group := p.constructRuleGroup(selRange, child)
		if group != nil {
			sheet.Rules = append(sheet.Rules, group)
		}
		start = i + 1
	}
	if start < len(children) {
		p.sink.Add(lineOfNodes(children[start:], children[len(children)-1].Line), "Selector missing block")
	}
}

// constructRuleGroup builds one RuleGroup from a selector range and
// its block, discarding it if it ends up with no selectors or no
// declarations.
func (p *Parser) constructRuleGroup(selRange []*css_reader.Node, block *css_reader.Node) *css_ast.RuleGroup {
	selectors := p.constructSelectors(selRange)
	decls := p.constructDeclarations(block.Children, block.Line)
	if len(selectors) == 0 || len(decls) == 0 {
		return nil
	}
	return &css_ast.RuleGroup{Selectors: selectors, Declarations: decls, Line: block.Line}
}

// constructDeclarations splits a block's children on top-level
// semicolons and parses each non-blank segment as one declaration.
func (p *Parser) constructDeclarations(children []*css_reader.Node, fallbackLine int) []*css_ast.Declaration {
	var decls []*css_ast.Declaration
	flush := func(raw []*css_reader.Node) {
		seg := trimSpace(raw)
		if len(seg) == 0 {
			return
		}
		if d := p.constructDeclaration(seg, seg[0].Line); d != nil {
			decls = append(decls, d)
		}
	}
	start := 0
	for i, child := range children {
		if child.Kind == css_reader.TokenNode && child.Tok.Kind == css_lexer.Semicolon {
			flush(children[start:i])
			start = i + 1
		}
	}
	flush(children[start:])
	return decls
}

// constructDeclaration parses one "property : value [!important]"
// segment (already split from its neighbors on ';').
func (p *Parser) constructDeclaration(seg []*css_reader.Node, line int) *css_ast.Declaration {
	colon := -1
	for i, n := range seg {
		if n.Kind == css_reader.TokenNode && n.Tok.Kind == css_lexer.Colon {
			colon = i
			break
		}
	}
	if colon < 0 {
		p.sink.Add(line, "Declaration lacks colon")
		return nil
	}

	propRange := trimSpace(seg[:colon])
	valRange := trimSpace(skipLeadingSpace(seg[colon+1:]))

	if len(propRange) == 0 {
		p.sink.Add(line, "Declaration lacks property")
		return nil
	}
	if len(valRange) == 0 {
		p.sink.Add(line, "Declaration lacks value")
		return nil
	}
	if len(propRange) != 1 || propRange[0].Kind != css_reader.TokenNode || propRange[0].Tok.Kind != css_lexer.Ident {
		p.sink.Add(line, "Declaration property is not an identifier")
		return nil
	}

	important := false
	if n, ok := stripImportant(valRange); ok {
		valRange = n
		important = true
	}
	if len(valRange) == 0 {
		p.sink.Add(line, "Missing declaration value")
		return nil
	}

	values, ok := p.constructExpr(valRange, true)
	if !ok {
		return nil
	}

	return &css_ast.Declaration{
		Property:  string(propRange[0].Tok.Text),
		Important: important,
		Values:    values,
		Line:      line,
	}
}

// stripImportant back-scans a trimmed value range for a trailing
// "!important": from the right, skipping whitespace, first an Ident
// "important" (case-insensitive), then a Delim "!". Both must be
// found for the flag to apply; otherwise the range is returned
// unchanged.
func stripImportant(valRange []*css_reader.Node) ([]*css_reader.Node, bool) {
	i := len(valRange)
	i = skipTrailingSpaceIdx(valRange, i)
	if i == 0 {
		return valRange, false
	}
	important := valRange[i-1]
	if important.Kind != css_reader.TokenNode || important.Tok.Kind != css_lexer.Ident ||
		!strings.EqualFold(string(important.Tok.Text), "important") {
		return valRange, false
	}
	i--
	i = skipTrailingSpaceIdx(valRange, i)
	if i == 0 {
		return valRange, false
	}
	bang := valRange[i-1]
	if bang.Kind != css_reader.TokenNode || bang.Tok.Kind != css_lexer.Delim || string(bang.Tok.Text) != "!" {
		return valRange, false
	}
	i--
	return trimSpace(valRange[:i]), true
}

// constructExpr builds a declaration value's PValue list. topLevel is
// carried through only to mirror the original construct_expr's
// signature; the grammar itself does not vary by nesting depth.
func (p *Parser) constructExpr(nodes []*css_reader.Node, topLevel bool) ([]*css_ast.PValue, bool) {
	var values []*css_ast.PValue
	sep := css_ast.SepNone
	sign := css_ast.SignNone
	lastLine := 0

	for _, node := range nodes {
		lastLine = node.Line

		if node.Kind == css_reader.TokenNode && node.Tok.Kind == css_lexer.Space {
			if sign != css_ast.SignNone {
				p.sink.Add(node.Line, "Unexpected +/- with no value")
				return nil, false
			}
			continue
		}

		if node.Kind == css_reader.FunctionNode {
			args, ok := p.constructExpr(node.Children, false)
			if !ok {
				return nil, false
			}
			if sign != css_ast.SignNone {
				p.sink.Add(node.Line, "Function cannot have +/-")
			}
			values = append(values, &css_ast.PValue{
				Kind: css_ast.ValueFunction, Sep: sep, Sign: sign,
				FuncName: string(node.Text), Args: args,
			})
			sep, sign = css_ast.SepNone, css_ast.SignNone
			continue
		}

		if node.Kind == css_reader.TokenNode {
			switch node.Tok.Kind {
			case css_lexer.Delim:
				text := string(node.Tok.Text)
				switch text {
				case "/", ",":
					if sep != css_ast.SepNone || sign != css_ast.SignNone {
						p.sink.Add(node.Line, "Invalid declaration value")
						return nil, false
					}
					if len(values) == 0 {
						p.sink.Add(node.Line, "Unexpected leading separator")
						continue
					}
					if text == "/" {
						sep = css_ast.SepSlash
					} else {
						sep = css_ast.SepComma
					}
					continue
				case "+", "-":
					if sign != css_ast.SignNone {
						p.sink.Add(node.Line, "Invalid declaration value")
						return nil, false
					}
					if text == "+" {
						sign = css_ast.SignPlus
					} else {
						sign = css_ast.SignMinus
					}
					continue
				}
				p.sink.Add(node.Line, "Invalid declaration value")
				return nil, false

			default:
				if node.Tok.Kind.IsNumeric() {
					values = append(values, &css_ast.PValue{
						Kind: css_ast.ValueToken, Sep: sep, Sign: sign,
						TokenKind: tokenKindFor(node.Tok.Kind),
						Text:      string(node.Tok.Text), Div: node.Tok.Div,
					})
					sep, sign = css_ast.SepNone, css_ast.SignNone
					continue
				}

				if node.Tok.Kind == css_lexer.String || node.Tok.Kind == css_lexer.Ident ||
					node.Tok.Kind == css_lexer.URI || node.Tok.Kind == css_lexer.Hash {
					if sign != css_ast.SignNone {
						p.sink.Add(node.Line, "Declaration value cannot have +/-")
					}
					values = append(values, &css_ast.PValue{
						Kind: css_ast.ValueToken, Sep: sep, Sign: sign,
						TokenKind: tokenKindFor(node.Tok.Kind),
						Text:      string(node.Tok.Text),
					})
					sep, sign = css_ast.SepNone, css_ast.SignNone
					continue
				}
			}
		}

		p.sink.Add(node.Line, "Invalid declaration value")
		return nil, false
	}

	if sep != css_ast.SepNone {
		p.sink.Add(lastLine, "Unexpected trailing separator")
	}
	if sign != css_ast.SignNone {
		p.sink.Add(lastLine, "Unexpected trailing +/-")
	}
	if len(values) == 0 {
		p.sink.Add(lastLine, "Missing declaration value")
		return nil, false
	}
	return values, true
}

func tokenKindFor(k css_lexer.T) css_ast.TokenKind {
	switch k {
	case css_lexer.Number:
		return css_ast.Number
	case css_lexer.Percentage:
		return css_ast.Percentage
	case css_lexer.Dimension:
		return css_ast.Dimension
	case css_lexer.String:
		return css_ast.String
	case css_lexer.URI:
		return css_ast.URI
	case css_lexer.Hash:
		return css_ast.Hash
	default:
		return css_ast.Ident
	}
}

func isSpace(n *css_reader.Node) bool {
	return n.Kind == css_reader.TokenNode && n.Tok.Kind == css_lexer.Space
}

func skipLeadingSpace(nodes []*css_reader.Node) []*css_reader.Node {
	for len(nodes) > 0 && isSpace(nodes[0]) {
		nodes = nodes[1:]
	}
	return nodes
}

func skipTrailingSpaceIdx(nodes []*css_reader.Node, i int) int {
	for i > 0 && isSpace(nodes[i-1]) {
		i--
	}
	return i
}

func trimSpace(nodes []*css_reader.Node) []*css_reader.Node {
	nodes = skipLeadingSpace(nodes)
	nodes = nodes[:skipTrailingSpaceIdx(nodes, len(nodes))]
	return nodes
}

func lineOfNodes(nodes []*css_reader.Node, fallback int) int {
	if len(nodes) > 0 {
		return nodes[0].Line
	}
	return fallback
}
