package token

import (
	"fmt"
	"strconv"

	"GoLex/internal/charset"
	"GoLex/internal/regex"
)

// Built-in parsers. These cover the value conversions declared token
// types usually need; anything else is a caller-supplied ParseFunc.

// ParseWord returns the lexeme unchanged.
func ParseWord(lexeme string) (any, error) {
	return lexeme, nil
}

// ParseInt parses a decimal integer.
func ParseInt(lexeme string) (any, error) {
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseFloat parses a floating point number.
func ParseFloat(lexeme string) (any, error) {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseBool parses "true" / "false" style booleans.
func ParseBool(lexeme string) (any, error) {
	v, err := strconv.ParseBool(lexeme)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// StringifyInt renders an int64 value back into a decimal lexeme.
func StringifyInt(value any) (string, error) {
	v, ok := value.(int64)
	if !ok {
		return "", fmt.Errorf("stringify int: got %T", value)
	}
	return strconv.FormatInt(v, 10), nil
}

// StringifyFloat renders a float64 value back into a lexeme.
func StringifyFloat(value any) (string, error) {
	v, ok := value.(float64)
	if !ok {
		return "", fmt.Errorf("stringify float: got %T", value)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// StringifyBool renders a bool value back into a lexeme.
func StringifyBool(value any) (string, error) {
	v, ok := value.(bool)
	if !ok {
		return "", fmt.Errorf("stringify bool: got %T", value)
	}
	return strconv.FormatBool(v), nil
}

func mustRange(a, b rune) charset.Set {
	s, err := charset.NewRange(a, b)
	if err != nil {
		panic("golex: " + err.Error())
	}
	return s
}

func mustChars(cs ...rune) charset.Set {
	sets := make([]charset.Set, len(cs))
	for i, c := range cs {
		s, err := charset.Char(c)
		if err != nil {
			panic("golex: " + err.Error())
		}
		sets[i] = s
	}
	return charset.Union(sets...)
}

// Ready-made patterns. Each call builds a fresh pattern so the types
// constructed from them keep their own identities.

// LetterSet is [a-zA-Z].
func LetterSet() charset.Set {
	return charset.Union(mustRange('a', 'z'), mustRange('A', 'Z'))
}

// DigitSet is [0-9].
func DigitSet() charset.Set {
	return mustRange('0', '9')
}

// WhitespaceSet is space, tab, newline and carriage return.
func WhitespaceSet() charset.Set {
	return mustChars(' ', '\t', '\n', '\r')
}

// Whitespace returns a token type matching one or more whitespace
// characters.
func Whitespace() *Type {
	return MustType("whitespace", regex.For(WhitespaceSet()).Repeated(), ParseWord)
}

// Identifier returns a token type for [a-zA-Z][a-zA-Z0-9]*.
func Identifier() *Type {
	head := regex.For(LetterSet())
	tail := regex.For(charset.Union(LetterSet(), DigitSet())).Repeated().Optional()
	return MustType("identifier", regex.Concat(head, tail), ParseWord)
}

// IntLiteral returns a token type for [0-9]+ parsed as int64.
func IntLiteral() *Type {
	return MustType("integer", regex.For(DigitSet()).Repeated(), ParseInt).
		WithStringify(StringifyInt)
}

// FloatLiteral returns a token type for [0-9]* '.' [0-9]+ parsed as
// float64.
func FloatLiteral() *Type {
	digits := regex.For(DigitSet())
	dot := regex.For(mustChars('.'))
	pattern := regex.Concat(digits.Repeated().Optional(), dot, digits.Repeated())
	return MustType("float", pattern, ParseFloat).WithStringify(StringifyFloat)
}

// BoolLiteral returns a token type for "true" | "false" parsed as bool.
func BoolLiteral() *Type {
	tr, err := regex.Literal("true")
	if err != nil {
		panic("golex: " + err.Error())
	}
	fa, err := regex.Literal("false")
	if err != nil {
		panic("golex: " + err.Error())
	}
	return MustType("boolean", regex.Choice(tr, fa), ParseBool).
		WithStringify(StringifyBool)
}
