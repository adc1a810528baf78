package css_lexer

import (
	"testing"

	"github.com/erkyrath/mincss/internal/logger"
)

func newTestLexer(contents string) (*Lexer, *logger.Sink) {
	bytes := []byte(contents)
	i := 0
	sink := logger.NewSink(func(string, int) {})
	src := NewByteSource(func() int {
		if i >= len(bytes) {
			return -1
		}
		b := bytes[i]
		i++
		return int(b)
	})
	buf := NewBuffer(src, sink)
	return NewLexer(buf, sink), sink
}

func lexOne(contents string) (T, string) {
	lex, _ := newTestLexer(contents)
	tok := lex.NextToken()
	return tok.Kind, string(tok.Text)
}

func lexAll(contents string) []Token {
	lex, _ := newTestLexer(contents)
	var toks []Token
	for {
		tok := lex.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func lexErrorCount(contents string) int {
	lex, sink := newTestLexer(contents)
	for {
		tok := lex.NextToken()
		if tok.Kind == EOF {
			break
		}
	}
	return sink.Count()
}

func TestOneCharTokens(t *testing.T) {
	expected := []struct {
		contents string
		kind     T
	}{
		{"(", LParen},
		{")", RParen},
		{"[", LBracket},
		{"]", RBracket},
		{"{", LBrace},
		{"}", RBrace},
		{":", Colon},
		{";", Semicolon},
		{"", EOF},
	}
	for _, e := range expected {
		kind, _ := lexOne(e.contents)
		if kind != e.kind {
			t.Errorf("lexOne(%q): got %v, want %v", e.contents, kind, e.kind)
		}
	}
}

func TestIncludesAndDashMatch(t *testing.T) {
	if kind, _ := lexOne("~="); kind != Includes {
		t.Errorf("~= should lex as Includes, got %v", kind)
	}
	if kind, _ := lexOne("~"); kind != Delim {
		t.Errorf("~ alone should lex as Delim, got %v", kind)
	}
	if kind, _ := lexOne("|="); kind != DashMatch {
		t.Errorf("|= should lex as DashMatch, got %v", kind)
	}
	if kind, _ := lexOne("|"); kind != Delim {
		t.Errorf("| alone should lex as Delim, got %v", kind)
	}
}

func TestCDOCDC(t *testing.T) {
	if kind, _ := lexOne("<!--"); kind != CDO {
		t.Errorf("<!-- should lex as CDO, got %v", kind)
	}
	if kind, _ := lexOne("-->"); kind != CDC {
		t.Errorf("--> should lex as CDC, got %v", kind)
	}
	if kind, _ := lexOne("<!-x"); kind != Delim {
		t.Errorf("<!-x should lex as Delim, got %v", kind)
	}
}

func TestIdentAndAtKeywordAndHash(t *testing.T) {
	if kind, text := lexOne("foo-bar"); kind != Ident || text != "foo-bar" {
		t.Errorf("foo-bar: got %v %q", kind, text)
	}
	if kind, text := lexOne("@media"); kind != AtKeyword || text != "@media" {
		t.Errorf("@media: got %v %q", kind, text)
	}
	if kind, text := lexOne("#x1"); kind != Hash || text != "#x1" {
		t.Errorf("#x1: got %v %q", kind, text)
	}
	if kind, _ := lexOne("#"); kind != Delim {
		t.Errorf("lone # should lex as Delim, got %v", kind)
	}
	if kind, _ := lexOne("@"); kind != Delim {
		t.Errorf("lone @ should lex as Delim, got %v", kind)
	}
}

func TestDegenerateHyphenIsDelim(t *testing.T) {
	// A lone '-' with nothing valid following it is not a real
	// identifier; it must lex as a one-character Delim, not a
	// one-character Ident.
	kind, text := lexOne("-")
	if kind != Delim || text != "-" {
		t.Errorf("lone -: got %v %q, want Delim \"-\"", kind, text)
	}
	kind, _ = lexOne("- x")
	if kind != Delim {
		t.Errorf("- followed by space: got %v, want Delim", kind)
	}
	kind, text = lexOne("-x")
	if kind != Ident || text != "-x" {
		t.Errorf("-x: got %v %q, want Ident \"-x\"", kind, text)
	}
}

func TestFunctionAndURI(t *testing.T) {
	if kind, text := lexOne("rgb("); kind != Function || text != "rgb(" {
		t.Errorf("rgb(: got %v %q", kind, text)
	}
	if kind, text := lexOne(`url(foo.png)`); kind != URI || text != "url(foo.png)" {
		t.Errorf("url(foo.png): got %v %q", kind, text)
	}
	if kind, text := lexOne(`url("foo.png")`); kind != URI || text != `url("foo.png")` {
		t.Errorf(`url("foo.png"): got %v %q`, kind, text)
	}
	if kind, text := lexOne("url"); kind != Ident || text != "url" {
		t.Errorf("bare url: got %v %q", kind, text)
	}
}

func TestNumberPercentageDimension(t *testing.T) {
	if kind, text := lexOne("12"); kind != Number || text != "12" {
		t.Errorf("12: got %v %q", kind, text)
	}
	if kind, text := lexOne("12.5"); kind != Number || text != "12.5" {
		t.Errorf("12.5: got %v %q", kind, text)
	}
	if kind, text := lexOne("50%"); kind != Percentage || text != "50%" {
		t.Errorf("50%%: got %v %q", kind, text)
	}
	lex, _ := newTestLexer("12pt")
	tok := lex.NextToken()
	if tok.Kind != Dimension || string(tok.Text) != "12pt" || tok.Div != 2 {
		t.Errorf("12pt: got %v %q div=%d", tok.Kind, string(tok.Text), tok.Div)
	}
	if kind, _ := lexOne("."); kind != Delim {
		t.Errorf("lone . should lex as Delim, got %v", kind)
	}
}

func TestStringEscapesAndUnterminated(t *testing.T) {
	if kind, text := lexOne(`"hi"`); kind != String || text != `"hi"` {
		t.Errorf(`"hi": got %v %q`, kind, text)
	}
	if kind, text := lexOne(`"a\"b"`); kind != String || text != `"a"b"` {
		t.Errorf(`"a\"b": got %v %q`, kind, text)
	}
	if kind, text := lexOne(`"\41"`); kind != String || text != `"A"` {
		t.Errorf(`"\41": got %v %q`, kind, text)
	}
	if n := lexErrorCount("\"unterminated"); n != 1 {
		t.Errorf("unterminated string: got %d errors, want 1", n)
	}
}

func TestComment(t *testing.T) {
	if kind, _ := lexOne("/* hi */"); kind != Comment {
		t.Errorf("comment: got %v", kind)
	}
	if n := lexErrorCount("/* hi"); n != 1 {
		t.Errorf("unterminated comment: got %d errors, want 1", n)
	}
}

func TestBackslashEscapes(t *testing.T) {
	if kind, text := lexOne(`\41`); kind != Ident || text != "A" {
		t.Errorf(`\41: got %v %q`, kind, text)
	}
	if kind, text := lexOne(`\.`); kind != Ident || text != "." {
		t.Errorf(`\.: got %v %q`, kind, text)
	}
	kind, _ := lexOne("\\")
	if kind != Delim {
		t.Errorf("lone trailing backslash: got %v, want Delim", kind)
	}
}

func TestWhitespaceRun(t *testing.T) {
	kind, _ := lexOne("   \t\nfoo")
	if kind != Space {
		t.Errorf("leading whitespace: got %v, want Space", kind)
	}
}

func TestEmptyInput(t *testing.T) {
	toks := lexAll("")
	if len(toks) != 1 || toks[0].Kind != EOF {
		t.Errorf("empty input: got %d tokens, want a single EOF", len(toks))
	}
}
