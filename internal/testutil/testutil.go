// Package testutil provides shared fixtures for scanner tests.
package testutil

import (
	"strings"
	"testing"

	"GoLex/internal/charset"
	"GoLex/internal/regex"
	"GoLex/internal/scanner"
	"GoLex/internal/stream"
	"GoLex/internal/token"
)

// LiteralType builds a token type matching exactly the given text.
func LiteralType(t *testing.T, name, text string) *token.Type {
	t.Helper()
	r, err := regex.Literal(text)
	if err != nil {
		t.Fatalf("Literal(%q): %v", text, err)
	}
	return token.MustType(name, r, token.ParseWord)
}

// CommentType builds the '{' [^{}]* '}' token type used across the
// scanner scenarios.
func CommentType(t *testing.T) *token.Type {
	t.Helper()
	open, err := charset.Char('{')
	if err != nil {
		t.Fatal(err)
	}
	closing, err := charset.Char('}')
	if err != nil {
		t.Fatal(err)
	}
	body := charset.Complement(charset.Union(open, closing))
	pattern := regex.Concat(
		regex.For(open),
		regex.For(body).Repeated().Optional(),
		regex.For(closing),
	)
	return token.MustType("comment", pattern, token.ParseWord)
}

// LanguageScanner returns a scanner for the small test language used by
// the end-to-end scenarios: keywords, identifiers, numbers, whitespace.
func LanguageScanner(t *testing.T) *scanner.Scanner {
	t.Helper()
	return scanner.New(
		LiteralType(t, "fun", "fun"),
		LiteralType(t, "function", "function"),
		token.Identifier(),
		token.IntLiteral(),
		token.FloatLiteral(),
		token.Whitespace(),
	)
}

// ScanAll scans input to completion and verifies the stream's mark
// stack is balanced afterwards.
func ScanAll(t *testing.T, s *scanner.Scanner, input string) []token.Token {
	t.Helper()
	in := stream.NewText(input)
	toks, err := s.ScanAll(in)
	if err != nil {
		t.Fatalf("ScanAll(%q): %v", input, err)
	}
	if depth := in.MarkDepth(); depth != 0 {
		t.Fatalf("ScanAll(%q) left %d marks outstanding", input, depth)
	}
	return toks
}

// Lexemes concatenates all emitted lexemes except the EOF sentinel.
func Lexemes(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks[:len(toks)-1] {
		b.WriteString(tok.Lexeme)
	}
	return b.String()
}

// ExpectTypes asserts the token type names in order.
func ExpectTypes(t *testing.T, toks []token.Token, names ...string) {
	t.Helper()
	if len(toks) != len(names) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(names))
	}
	for i, name := range names {
		if toks[i].Type.Name() != name {
			t.Errorf("token %d = %s(%q), want type %s",
				i, toks[i].Type.Name(), toks[i].Lexeme, name)
		}
	}
}
