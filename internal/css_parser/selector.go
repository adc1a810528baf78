package css_parser

import (
	"github.com/erkyrath/mincss/internal/css_ast"
	"github.com/erkyrath/mincss/internal/css_lexer"
	"github.com/erkyrath/mincss/internal/css_reader"
)

// constructSelectors splits a selector range on top-level comma
// delimiters and builds one Selector per non-empty sub-range.
func (p *Parser) constructSelectors(nodes []*css_reader.Node) []*css_ast.Selector {
	var selectors []*css_ast.Selector
	for _, group := range splitOnComma(nodes) {
		group = trimSpace(group)
		if len(group) == 0 {
			p.sink.Add(lineOfNodes(nodes, 0), "Block has empty selector")
			continue
		}

		sel := &css_ast.Selector{}
		cur := &selCursor{toks: group}
		if !p.constructSelector(sel, cur, css_ast.None) {
			continue
		}
		if rest := trimSpace(cur.toks[cur.pos:]); len(rest) > 0 {
			p.sink.Add(rest[0].Line, "Unrecognized text in selector")
		}
		if len(sel.Elements) > 0 {
			selectors = append(selectors, sel)
		}
	}
	return selectors
}

func splitOnComma(nodes []*css_reader.Node) [][]*css_reader.Node {
	var groups [][]*css_reader.Node
	start := 0
	for i, n := range nodes {
		if n.Kind == css_reader.TokenNode && n.Tok.Kind == css_lexer.Delim && string(n.Tok.Text) == "," {
			groups = append(groups, nodes[start:i])
			start = i + 1
		}
	}
	groups = append(groups, nodes[start:])
	return groups
}

// selCursor is a flat one-directional cursor over a selector
// sub-range -- selectors never nest parens/brackets, so an index into
// a plain slice is all the lookahead construct_selector needs.
type selCursor struct {
	toks []*css_reader.Node
	pos  int
}

func (c *selCursor) peek() *css_reader.Node {
	if c.pos < len(c.toks) {
		return c.toks[c.pos]
	}
	return nil
}

func (c *selCursor) next() *css_reader.Node {
	n := c.peek()
	if n != nil {
		c.pos++
	}
	return n
}

func (c *selCursor) skipSpace() {
	for {
		n := c.peek()
		if n == nil || n.Kind != css_reader.TokenNode || n.Tok.Kind != css_lexer.Space {
			return
		}
		c.next()
	}
}

func isDelim(n *css_reader.Node, text string) bool {
	return n != nil && n.Kind == css_reader.TokenNode && n.Tok.Kind == css_lexer.Delim && string(n.Tok.Text) == text
}

// constructSelector parses one simple selector (element name plus any
// #hash/.class/:pseudo suffixes) with the given inherited combinator,
// then recurses for any combinator-joined selector that follows.
// Returns false if no selector at all could be found here.
func (p *Parser) constructSelector(sel *css_ast.Selector, c *selCursor, inherited css_ast.Combinator) bool {
	elem := &css_ast.SelectorElement{Combinator: inherited}

	if tok := c.peek(); tok != nil && tok.Kind == css_reader.TokenNode {
		switch {
		case isDelim(tok, "*"):
			elem.HasElement = true
			elem.Element = "*"
			c.next()
		case tok.Tok.Kind == css_lexer.Ident:
			elem.HasElement = true
			elem.Element = string(tok.Tok.Text)
			c.next()
		}
	}

suffixes:
	for {
		tok := c.peek()
		if tok == nil || tok.Kind != css_reader.TokenNode {
			break
		}
		switch {
		case tok.Tok.Kind == css_lexer.Hash:
			elem.Hashes = append(elem.Hashes, string(tok.Tok.Text))
			c.next()
		case isDelim(tok, "."):
			c.next()
			nt := c.peek()
			if nt != nil && nt.Kind == css_reader.TokenNode && nt.Tok.Kind == css_lexer.Ident {
				elem.Classes = append(elem.Classes, string(nt.Tok.Text))
				c.next()
			} else {
				break suffixes
			}
		case tok.Tok.Kind == css_lexer.Colon:
			c.next()
			nt := c.peek()
			if nt != nil && nt.Kind == css_reader.TokenNode && nt.Tok.Kind == css_lexer.Ident {
				elem.Pseudos = append(elem.Pseudos, string(nt.Tok.Text))
				c.next()
			} else {
				break suffixes
			}
		default:
			break suffixes
		}
	}

	if !elem.HasContent() {
		line := 0
		if tok := c.peek(); tok != nil {
			line = tok.Line
		}
		p.sink.Add(line, "No selector found")
		return false
	}
	sel.Elements = append(sel.Elements, elem)

	tok := c.peek()
	if tok == nil {
		return true
	}

	hadSpace := false
	for {
		tok = c.peek()
		if tok == nil || tok.Kind != css_reader.TokenNode || tok.Tok.Kind != css_lexer.Space {
			break
		}
		hadSpace = true
		c.next()
	}
	tok = c.peek()
	if tok == nil {
		return true
	}

	if isDelim(tok, "+") || isDelim(tok, ">") {
		comb := css_ast.AdjacentSibling
		if isDelim(tok, ">") {
			comb = css_ast.Child
		}
		combLine := tok.Line
		c.next()
		c.skipSpace()
		if c.peek() == nil {
			p.sink.Add(combLine, "Combinator not followed by selector")
			return true
		}
		return p.constructSelector(sel, c, comb)
	}

	if !hadSpace {
		// No whitespace and no explicit combinator: whatever follows
		// belongs to the caller, not to this selector chain.
		return true
	}

	return p.constructSelector(sel, c, css_ast.Descendant)
}
