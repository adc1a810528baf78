package css_lexer

// Stream wraps a Lexer with one token of pushback and materializes
// each token's semantic text: the delimiters, quotes, and sigils that
// only exist to mark a token's kind are stripped here, not in the
// Lexer, so that every later stage sees exactly the text a CSS author
// wrote. Comment tokens are never handed to callers -- Next (and
// Peek) skip them transparently, matching how mincss's reader layer
// never saw comment nodes either.
type Stream struct {
	lex     *Lexer
	peeked  *Token
	current Token
}

// NewStream creates a stream reading from lex.
func NewStream(lex *Lexer) *Stream {
	return &Stream{lex: lex}
}

// Peek returns the next non-comment token without consuming it.
func (s *Stream) Peek() Token {
	if s.peeked == nil {
		tok := s.read()
		s.peeked = &tok
	}
	return *s.peeked
}

// Next consumes and returns the next non-comment token.
func (s *Stream) Next() Token {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		s.current = tok
		return tok
	}
	s.current = s.read()
	return s.current
}

func (s *Stream) read() Token {
	for {
		tok := s.lex.NextToken()
		if tok.Kind == Comment {
			continue
		}
		stripTokenText(&tok)
		return tok
	}
}

// stripTokenText rewrites tok.Text in place from the Lexer's raw
// accepted text to the semantic text a later stage should see: the
// quotes around a String, the '@' of an AtKeyword, the '#' of a Hash,
// the trailing '(' of a Function and a Percentage's trailing '%', and
// both the leading "url(" and trailing ')' of a URI (but not any
// quotes nested inside it -- the URI's interior is handled exactly
// like a String's would be, quotes included, matching the contract
// the original lexer leaves for its caller).
func stripTokenText(tok *Token) {
	switch tok.Kind {
	case String:
		if len(tok.Text) >= 2 {
			tok.Text = tok.Text[1 : len(tok.Text)-1]
		} else {
			tok.Text = tok.Text[:0]
		}
	case AtKeyword, Hash:
		if len(tok.Text) >= 1 {
			tok.Text = tok.Text[1:]
		}
	case Percentage, Function:
		if len(tok.Text) >= 1 {
			tok.Text = tok.Text[:len(tok.Text)-1]
		}
	case URI:
		if len(tok.Text) >= 5 {
			tok.Text = tok.Text[4 : len(tok.Text)-1]
		} else {
			tok.Text = tok.Text[:0]
		}
	case Dimension:
		// Text stays whole; Div already marks the number/unit
		// boundary for callers that need to split it.
	case Space:
		tok.Text = nil
	case LBrace, RBrace, LBracket, RBracket, LParen, RParen,
		Colon, Semicolon, Includes, DashMatch, CDO, CDC, EOF:
		tok.Text = nil
	}
}
