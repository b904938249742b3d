package automaton

import "math/rand"

// Matcher walks an automaton, tracking the current state's recognizables
// and the recognizables of the most recent accepting state entered since
// the last reset. A matcher is single-user mutable state; create one per
// concurrent walk.
//
// On deterministic automata at most one transition fires per input code
// unit, so transition order does not affect the outcome.
type Matcher struct {
	a       *Automaton
	current int
	last    []Tag
}

// NewMatcher creates a matcher positioned at the start state.
func NewMatcher(a *Automaton) *Matcher {
	m := &Matcher{a: a}
	m.Reset()
	return m
}

// Reset returns to the start state. Both the recognized and the
// last-recognized sets become the start state's recognizables.
func (m *Matcher) Reset() {
	m.current = 0
	m.last = append(m.last[:0], m.a.states[0].tags...)
}

// Match attempts one step: the first transition whose trigger contains c
// fires. Reports whether any transition fired.
func (m *Matcher) Match(c rune) bool {
	for _, tr := range m.a.states[m.current].trans {
		if tr.Trigger.Contains(c) {
			m.enter(tr.Target)
			return true
		}
	}
	return false
}

// Recognized returns a copy of the current state's recognizables.
func (m *Matcher) Recognized() []Tag {
	return m.a.Tags(m.current)
}

// IsRecognizing reports whether the current state accepts.
func (m *Matcher) IsRecognizing() bool {
	return m.a.IsAccepting(m.current)
}

// LastRecognized returns a copy of the recognizables of the most recent
// accepting state entered since the last reset.
func (m *Matcher) LastRecognized() []Tag {
	if len(m.last) == 0 {
		return nil
	}
	out := make([]Tag, len(m.last))
	copy(out, m.last)
	return out
}

// RandomStep fires a random outgoing transition and returns a random
// code unit from its trigger. Reports false when the current state has
// no outgoing transitions. Used by random string generation.
func (m *Matcher) RandomStep(rng *rand.Rand) (rune, bool) {
	trans := m.a.states[m.current].trans
	if len(trans) == 0 {
		return 0, false
	}
	tr := trans[rng.Intn(len(trans))]
	c, ok := tr.Trigger.Random(rng)
	if !ok {
		return 0, false
	}
	m.enter(tr.Target)
	return c, true
}

func (m *Matcher) enter(target int) {
	m.current = target
	if tags := m.a.states[target].tags; len(tags) > 0 {
		m.last = append(m.last[:0], tags...)
	}
}
