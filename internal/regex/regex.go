// Package regex provides composable regular expressions over 16-bit
// character sets. A RegEx is an automaton whose accepting states carry a
// private accept marker; the scanner retags them with token types.
package regex

import (
	"math/rand"
	"unicode/utf16"

	"GoLex/internal/automaton"
	"GoLex/internal/charset"
)

// acceptMarker tags accepting states of pattern automata.
type acceptMarker struct{}

var accept automaton.Tag = acceptMarker{}

// RegEx is an immutable regular expression. The deterministic form is
// compiled lazily and cached.
type RegEx struct {
	a   *automaton.Automaton
	det *automaton.Automaton
}

// For returns a RegEx matching exactly one code unit from set.
func For(set charset.Set) *RegEx {
	return &RegEx{a: automaton.ForSet(set, accept)}
}

// Literal returns a RegEx matching exactly the given string.
// The string is matched as UTF-16 code units, so runes beyond the
// 16-bit alphabet are matched as their surrogate pairs.
func Literal(s string) (*RegEx, error) {
	units := utf16.Encode([]rune(s))
	parts := make([]*RegEx, 0, len(units))
	for _, u := range units {
		set, err := charset.Char(rune(u))
		if err != nil {
			return nil, err
		}
		parts = append(parts, For(set))
	}
	return Concat(parts...), nil
}

// Optional returns a RegEx that additionally matches the empty string.
func (r *RegEx) Optional() *RegEx {
	a := r.a.Optional()
	if a == r.a {
		return r
	}
	return &RegEx{a: a}
}

// Repeated returns a RegEx matching one or more repetitions.
func (r *RegEx) Repeated() *RegEx {
	return &RegEx{a: r.a.Repeated()}
}

// Choice returns a RegEx matching any of the alternatives.
func Choice(rs ...*RegEx) *RegEx {
	as := make([]*automaton.Automaton, len(rs))
	for i, r := range rs {
		as[i] = r.a
	}
	return &RegEx{a: automaton.Choice(as...)}
}

// Concat returns a RegEx matching the operands in sequence.
func Concat(rs ...*RegEx) *RegEx {
	as := make([]*automaton.Automaton, len(rs))
	for i, r := range rs {
		as[i] = r.a
	}
	return &RegEx{a: automaton.Concat(as...)}
}

// IsOptional reports whether the empty string matches.
func (r *RegEx) IsOptional() bool {
	return r.a.IsOptional()
}

// Automaton returns a copy of the underlying automaton.
func (r *RegEx) Automaton() *automaton.Automaton {
	return r.a.Clone()
}

// Deterministic returns the compiled deterministic automaton, building
// and caching it on first use.
func (r *RegEx) Deterministic() (*automaton.Automaton, error) {
	if r.det == nil {
		det, err := r.a.Determinize()
		if err != nil {
			return nil, err
		}
		r.det = det
	}
	return r.det, nil
}

// Matches reports whether the whole input matches.
func (r *RegEx) Matches(input string) bool {
	det, err := r.Deterministic()
	if err != nil {
		return false
	}
	m := automaton.NewMatcher(det)
	for _, u := range utf16.Encode([]rune(input)) {
		if !m.Match(rune(u)) {
			return false
		}
	}
	return m.IsRecognizing()
}

// MatchesPrefix reports whether some prefix of the input matches.
func (r *RegEx) MatchesPrefix(input string) bool {
	det, err := r.Deterministic()
	if err != nil {
		return false
	}
	m := automaton.NewMatcher(det)
	if m.IsRecognizing() {
		return true
	}
	for _, u := range utf16.Encode([]rune(input)) {
		if !m.Match(rune(u)) {
			break
		}
		if m.IsRecognizing() {
			return true
		}
	}
	return false
}

// FindLongestPrefix returns the length in code units of the longest
// matching prefix of input, or -1 when no prefix matches.
func (r *RegEx) FindLongestPrefix(input string) int {
	det, err := r.Deterministic()
	if err != nil {
		return -1
	}
	m := automaton.NewMatcher(det)
	best := -1
	if m.IsRecognizing() {
		best = 0
	}
	for i, u := range utf16.Encode([]rune(input)) {
		if !m.Match(rune(u)) {
			break
		}
		if m.IsRecognizing() {
			best = i + 1
		}
	}
	return best
}

// Find returns the code-unit offsets [start, end) of the leftmost, then
// longest, match inside input. Reports false when nothing matches.
func (r *RegEx) Find(input string) (start, end int, ok bool) {
	det, err := r.Deterministic()
	if err != nil {
		return 0, 0, false
	}
	units := utf16.Encode([]rune(input))
	for from := 0; from <= len(units); from++ {
		m := automaton.NewMatcher(det)
		best := -1
		if m.IsRecognizing() {
			best = from
		}
		for i := from; i < len(units); i++ {
			if !m.Match(rune(units[i])) {
				break
			}
			if m.IsRecognizing() {
				best = i + 1
			}
		}
		if best >= 0 {
			return from, best, true
		}
	}
	return 0, 0, false
}

// Random generates a random matching string, useful for property tests
// and grammar sampling. The continuation probability decays with length
// so generation terminates on cyclic patterns.
func (r *RegEx) Random(rng *rand.Rand) string {
	det, err := r.Deterministic()
	if err != nil {
		return ""
	}
	for attempt := 0; ; attempt++ {
		m := automaton.NewMatcher(det)
		var units []uint16
		for {
			if m.IsRecognizing() {
				// Stop more eagerly the longer the string grows.
				if rng.Intn(len(units)+2) != 0 {
					break
				}
			}
			c, ok := m.RandomStep(rng)
			if !ok {
				break
			}
			units = append(units, uint16(c))
		}
		if m.IsRecognizing() {
			return string(utf16.Decode(units))
		}
		if attempt >= 50 {
			return ""
		}
	}
}
