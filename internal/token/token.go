// Package token associates regular-expression patterns with value
// parsers and display names, and defines the tagged lexemes a scanner
// emits.
package token

import (
	"errors"
	"fmt"

	"GoLex/internal/regex"
	"GoLex/internal/stream"
)

var (
	ErrOptionalPattern = errors.New("token pattern must not match the empty string")
)

// ParseFunc converts a lexeme into a token value.
type ParseFunc func(lexeme string) (any, error)

// StringifyFunc converts a token value back into a lexeme.
type StringifyFunc func(value any) (string, error)

// Type is a token type: a pattern plus the conversions between lexemes
// and values. Types are compared by identity; two types wrapping equal
// patterns are still distinct tags.
type Type struct {
	name      string
	pattern   *regex.RegEx
	parse     ParseFunc
	stringify StringifyFunc
}

// NewType creates a token type. The pattern must not be optional: a
// token that matches the empty string would stall the scanner.
func NewType(name string, pattern *regex.RegEx, parse ParseFunc) (*Type, error) {
	if pattern.IsOptional() {
		return nil, fmt.Errorf("token type %q: %w", name, ErrOptionalPattern)
	}
	if parse == nil {
		parse = ParseWord
	}
	return &Type{name: name, pattern: pattern, parse: parse}, nil
}

// MustType is NewType for statically known-good patterns.
func MustType(name string, pattern *regex.RegEx, parse ParseFunc) *Type {
	t, err := NewType(name, pattern, parse)
	if err != nil {
		panic("golex: " + err.Error())
	}
	return t
}

// WithStringify returns the type with a value-to-lexeme conversion
// attached.
func (t *Type) WithStringify(fn StringifyFunc) *Type {
	t.stringify = fn
	return t
}

// Name returns the display name.
func (t *Type) Name() string {
	return t.name
}

// Pattern returns the type's pattern.
func (t *Type) Pattern() *regex.RegEx {
	return t.pattern
}

// Parse converts a lexeme using the type's parser.
func (t *Type) Parse(lexeme string) (any, error) {
	return t.parse(lexeme)
}

// Stringify converts a value back into a lexeme. Without an attached
// conversion the value must already be a string.
func (t *Type) Stringify(value any) (string, error) {
	if t.stringify != nil {
		return t.stringify(value)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("token type %q cannot stringify %T", t.name, value)
}

func (t *Type) String() string {
	return t.name
}

// Token is one scanned lexeme: its type, source text, the position where
// it began, and the parsed value.
type Token struct {
	Type     *Type
	Lexeme   string
	Position stream.Position
	Value    any
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type.Name(), t.Lexeme, t.Position)
}
