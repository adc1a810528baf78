package css_lexer

import "github.com/erkyrath/mincss/internal/logger"

// Buffer is the lexer's pushback token buffer: an extensible array of
// code points with two cursors, accepted and mark (invariant:
// 0 <= accepted <= mark == len(runes)). Text committed to the current
// token lives in runes[:accepted]; text in runes[accepted:mark] has
// been read from the source but pushed back, and will be redelivered
// by the next NextChar calls before the source is consulted again.
//
// This is the Go expression of cssint.h's tokenbufsize/tokenmark/
// tokenlen trio and csslex.c's next_char/putback_char/erase_char.
type Buffer struct {
	src      charSource
	sink     *logger.Sink
	runes    []rune
	accepted int
	mark     int
	line     int
}

// NewBuffer creates an empty buffer reading from src. Line numbers
// start at 1.
func NewBuffer(src charSource, sink *logger.Sink) *Buffer {
	return &Buffer{src: src, sink: sink, line: 1}
}

// Line returns the current 1-based source line.
func (b *Buffer) Line() int {
	return b.line
}

// StartToken discards the accepted portion of the buffer (the
// previous token's text), sliding any pushed-back tail down to the
// front. Called at the start of every NextToken.
func (b *Buffer) StartToken() {
	extra := b.mark - b.accepted
	if extra > 0 {
		copy(b.runes[0:], b.runes[b.accepted:b.mark])
	}
	b.runes = b.runes[:extra]
	b.accepted = 0
	b.mark = extra
}

// NextChar returns the next code point, taking it from the pushback
// region if one is available there, and otherwise pulling a fresh one
// from the source. Returns EOFRune at end of stream without moving
// either cursor, so it may be called any number of times after EOF.
func (b *Buffer) NextChar() rune {
	if b.accepted < b.mark {
		ch := b.runes[b.accepted]
		b.accepted++
		return ch
	}

	ch, errMsg := b.src.next()
	if ch == EOFRune {
		return EOFRune
	}
	if errMsg != "" {
		b.sink.Add(b.line, errMsg)
	}

	b.runes = append(b.runes, ch)
	b.accepted++
	b.mark = b.accepted

	if ch == '\n' || ch == '\r' {
		b.line++
	}
	return ch
}

// PutBack rejects the last count accepted characters back into the
// pushback region, without removing them from the buffer.
func (b *Buffer) PutBack(count int) {
	if count > b.accepted {
		b.sink.Add(b.line, "(Internal) Put back too many characters")
		b.accepted = 0
		return
	}
	b.accepted -= count
}

// Erase permanently removes the last count accepted characters from
// the buffer, shifting any pushed-back tail left to close the gap.
// Used when an escape sequence in-place replaces a span of hex digits
// with its decoded character.
func (b *Buffer) Erase(count int) {
	if count > b.accepted {
		b.sink.Add(b.line, "(Internal) Erase too many characters")
		return
	}
	tail := b.mark - b.accepted
	if tail > 0 {
		copy(b.runes[b.accepted-count:], b.runes[b.accepted:b.mark])
	}
	b.mark -= count
	b.accepted -= count
	b.runes = b.runes[:b.mark]
}

// Accepted returns the code points committed to the current token so
// far. The returned slice is only valid until the next mutating call.
func (b *Buffer) Accepted() []rune {
	return b.runes[:b.accepted]
}

// SetLast overwrites the most recently accepted code point. Used to
// substitute a decoded escape value for the character(s) it replaces
// after an Erase.
func (b *Buffer) SetLast(ch rune) {
	b.runes[b.accepted-1] = ch
}

// MatchAccepted reports whether the tail of the accepted text matches
// str, case-insensitively (ASCII only, matching match_accepted_chars
// in csslex.c -- used only to recognize the identifier "url").
func (b *Buffer) MatchAccepted(str string) bool {
	if len(str) > b.accepted {
		return false
	}
	offset := b.accepted - len(str)
	for i := 0; i < len(str); i++ {
		ch := rune(str[i])
		alt := ch
		switch {
		case ch >= 'a' && ch <= 'z':
			alt = ch - ('a' - 'A')
		case ch >= 'A' && ch <= 'Z':
			alt = ch + ('a' - 'A')
		}
		val := b.runes[offset+i]
		if val != ch && val != alt {
			return false
		}
	}
	return true
}
