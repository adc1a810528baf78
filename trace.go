package mincss

import (
	"fmt"
	"strings"

	"github.com/erkyrath/mincss/internal/css_lexer"
	"github.com/erkyrath/mincss/internal/css_reader"
)

// formatTraceToken renders one token the way "-l" dumps it: the kind
// name followed by its text in quotes, with any control character
// shown as "^X" rather than printed literally.
func formatTraceToken(tok css_lexer.Token) string {
	var b strings.Builder
	b.WriteString(tok.Kind.String())
	b.WriteString(" \"")
	for _, ch := range tok.Text {
		if ch < 0x20 {
			b.WriteByte('^')
			b.WriteByte(byte(ch) + 64)
			continue
		}
		b.WriteRune(ch)
	}
	b.WriteByte('"')
	return b.String()
}

// formatTreeLine renders one untyped-tree node the way "-t" dumps it:
// indentation by depth, the node kind, its text (if any), and its
// source line.
func formatTreeLine(node *css_reader.Node, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch node.Kind {
	case css_reader.TokenNode:
		return fmt.Sprintf("%s%s (line %d)", indent, formatTraceToken(node.Tok), node.Line)
	case css_reader.AtRule, css_reader.FunctionNode:
		if len(node.Text) > 0 {
			return fmt.Sprintf("%s%s %q (line %d)", indent, node.Kind, string(node.Text), node.Line)
		}
	}
	return fmt.Sprintf("%s%s (line %d)", indent, node.Kind, node.Line)
}
