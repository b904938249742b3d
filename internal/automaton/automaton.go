// Package automaton implements tagged finite automata over 16-bit
// character sets: construction by composition, subset-construction
// determinization with deduplicating minimization, and matching with
// last-accept tracking.
//
// States live in an arena and reference each other by index, so cyclic
// transition graphs need no pointer bookkeeping and structural equality
// reduces to integer comparisons. All composition operations build fresh
// automata; inputs are never mutated.
package automaton

import "GoLex/internal/charset"

// Tag marks what an accepting state recognizes. Tags must be comparable;
// they are deduplicated and compared by interface identity, so two
// distinct pointer tags never merge.
type Tag = any

// Transition is a labelled edge: it fires when the input code unit is
// contained in Trigger, moving to the state at arena index Target.
type Transition struct {
	Trigger charset.Set
	Target  int
}

type state struct {
	tags  []Tag
	trans []Transition
}

// Automaton is a finite automaton whose states are stored in insertion
// order starting from the start state at index 0.
type Automaton struct {
	states []*state
}

// New creates an automaton with a single start state carrying the given
// tags (deduplicated; none for a transient start).
func New(tags ...Tag) *Automaton {
	return &Automaton{states: []*state{{tags: appendTags(nil, tags...)}}}
}

// ForSet builds the two-state automaton recognizing exactly one code
// unit from set, tagging the accepting state.
func ForSet(set charset.Set, tags ...Tag) *Automaton {
	a := New()
	accept := a.AddState(tags...)
	a.On(0, set, accept)
	return a
}

// AddState appends a state and returns its index.
func (a *Automaton) AddState(tags ...Tag) int {
	a.states = append(a.states, &state{tags: appendTags(nil, tags...)})
	return len(a.states) - 1
}

// On appends a transition. Empty triggers are dropped: they can never fire.
func (a *Automaton) On(from int, trigger charset.Set, target int) {
	if trigger.IsEmpty() {
		return
	}
	a.states[from].trans = append(a.states[from].trans, Transition{Trigger: trigger, Target: target})
}

// OnMerged adds a transition, coalescing with an existing transition to
// the same target by unioning the triggers.
func (a *Automaton) OnMerged(from int, trigger charset.Set, target int) {
	if trigger.IsEmpty() {
		return
	}
	s := a.states[from]
	for i, tr := range s.trans {
		if tr.Target == target {
			s.trans[i].Trigger = charset.Union(tr.Trigger, trigger)
			return
		}
	}
	s.trans = append(s.trans, Transition{Trigger: trigger, Target: target})
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// Start returns the start state index.
func (a *Automaton) Start() int {
	return 0
}

// Tags returns a copy of the state's recognizables.
func (a *Automaton) Tags(i int) []Tag {
	s := a.states[i]
	if len(s.tags) == 0 {
		return nil
	}
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Transitions returns a copy of the state's transition list.
func (a *Automaton) Transitions(i int) []Transition {
	s := a.states[i]
	if len(s.trans) == 0 {
		return nil
	}
	out := make([]Transition, len(s.trans))
	copy(out, s.trans)
	return out
}

// ResolveTags rewrites every accepting state's recognizables through fn.
// Used to collapse competing tags after determinization.
func (a *Automaton) ResolveTags(fn func(tags []Tag) []Tag) {
	for _, s := range a.states {
		if len(s.tags) > 0 {
			s.tags = appendTags(nil, fn(s.tags)...)
		}
	}
}

// IsAccepting reports whether the state carries at least one tag.
func (a *Automaton) IsAccepting(i int) bool {
	return len(a.states[i].tags) > 0
}

// IsOptional reports whether the start state accepts, i.e. whether the
// language includes the empty string.
func (a *Automaton) IsOptional() bool {
	return a.IsAccepting(0)
}

// IsDeterministic reports whether every state's triggers are pairwise
// disjoint.
func (a *Automaton) IsDeterministic() bool {
	for _, s := range a.states {
		for i := range s.trans {
			for j := i + 1; j < len(s.trans); j++ {
				if !charset.Intersect(s.trans[i].Trigger, s.trans[j].Trigger).IsEmpty() {
					return false
				}
			}
		}
	}
	return true
}

// trim drops states unreachable from the start and renumbers the rest
// in breadth-first traversal order.
func (a *Automaton) trim() {
	remap := make([]int, len(a.states))
	for i := range remap {
		remap[i] = -1
	}
	order := []int{0}
	remap[0] = 0
	for qi := 0; qi < len(order); qi++ {
		for _, tr := range a.states[order[qi]].trans {
			if remap[tr.Target] == -1 {
				remap[tr.Target] = len(order)
				order = append(order, tr.Target)
			}
		}
	}
	next := make([]*state, len(order))
	for newIdx, oldIdx := range order {
		s := a.states[oldIdx]
		for ti := range s.trans {
			s.trans[ti].Target = remap[s.trans[ti].Target]
		}
		next[newIdx] = s
	}
	a.states = next
}

// appendTags appends tags to dst, keeping dst duplicate-free in
// insertion order.
func appendTags(dst []Tag, tags ...Tag) []Tag {
	for _, t := range tags {
		seen := false
		for _, d := range dst {
			if d == t {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, t)
		}
	}
	return dst
}

func cloneState(s *state, offset int) *state {
	ns := &state{tags: appendTags(nil, s.tags...)}
	for _, tr := range s.trans {
		ns.trans = append(ns.trans, Transition{Trigger: tr.Trigger, Target: tr.Target + offset})
	}
	return ns
}
