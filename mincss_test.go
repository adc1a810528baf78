package mincss

import (
	"strings"
	"testing"
)

func parse(t *testing.T, contents string) (*Stylesheet, []string) {
	t.Helper()
	ctx := NewContext()
	var msgs []string
	ctx.SetErrorHandler(func(msg string, line int) {
		msgs = append(msgs, msg)
	})
	r := strings.NewReader(contents)
	sheet, count := ctx.ParseBytesUTF8(func() int {
		b, err := r.ReadByte()
		if err != nil {
			return -1
		}
		return int(b)
	})
	if count != len(msgs) {
		t.Errorf("error count %d did not match handler calls %d", count, len(msgs))
	}
	return sheet, msgs
}

func TestParseSimpleRule(t *testing.T) {
	sheet, msgs := parse(t, "p { color: red; }")
	if len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule-group, got %d", len(sheet.Rules))
	}
}

func TestParseEmptyInput(t *testing.T) {
	sheet, msgs := parse(t, "")
	if len(msgs) != 0 || len(sheet.Rules) != 0 {
		t.Fatalf("expected an empty result, got %d rules / %v", len(sheet.Rules), msgs)
	}
}

func TestParseWhitespaceAndCommentsOnly(t *testing.T) {
	sheet, msgs := parse(t, "  /* nothing here */  \n\t ")
	if len(msgs) != 0 || len(sheet.Rules) != 0 {
		t.Fatalf("expected an empty result, got %d rules / %v", len(sheet.Rules), msgs)
	}
}

func TestParseIdempotentErrorCount(t *testing.T) {
	const input = `p { } @charset "x"; q { a: 1`
	_, first := parse(t, input)
	_, second := parse(t, input)
	if len(first) != len(second) {
		t.Fatalf("error counts differ between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("message %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestRuneReader(t *testing.T) {
	ctx := NewContext()
	runes := []rune("p { color: red }")
	i := 0
	sheet, count := ctx.ParseRunes(func() rune {
		if i >= len(runes) {
			return -1
		}
		r := runes[i]
		i++
		return r
	})
	if count != 0 {
		t.Fatalf("unexpected error count: %d", count)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule-group, got %d", len(sheet.Rules))
	}
}

func TestTraceLexer(t *testing.T) {
	ctx := NewContext()
	var lines []string
	ctx.SetTrace(TraceLexer, func(line string) { lines = append(lines, line) })
	r := strings.NewReader("p{}")
	ctx.ParseBytesUTF8(func() int {
		b, err := r.ReadByte()
		if err != nil {
			return -1
		}
		return int(b)
	})
	if len(lines) == 0 {
		t.Fatalf("expected at least one traced token line")
	}
}
