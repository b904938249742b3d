package automaton

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"GoLex/internal/charset"
)

// Determinization limits.
const MaxDFAStates = 10000

var ErrStateLimitExceeded = errors.New("DFA state limit exceeded during determinization")

// disjoin rewrites a transition list so the triggers are pairwise
// disjoint: the triggers are partitioned by overlap and every partition
// cell yields one transition per source transition that covered it.
// Nondeterminism survives only as duplicated targets on equal triggers.
func disjoin(trans []Transition) []Transition {
	if len(trans) < 2 {
		return trans
	}
	triggers := make([]charset.Set, len(trans))
	for i, tr := range trans {
		triggers[i] = tr.Trigger
	}
	var out []Transition
	for _, o := range charset.Overlaps(triggers...) {
		for _, m := range o.Members {
			out = append(out, Transition{Trigger: o.Set, Target: trans[m].Target})
		}
	}
	return out
}

// coalesce merges a disjoint transition list by target: triggers leading
// to the same state union into one transition, ordered by the target's
// first occurrence. Language-preserving on deterministic lists.
func coalesce(trans []Transition) []Transition {
	var out []Transition
	for _, tr := range trans {
		merged := false
		for i := range out {
			if out[i].Target == tr.Target {
				out[i].Trigger = charset.Union(out[i].Trigger, tr.Trigger)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, tr)
		}
	}
	return out
}

// Determinize returns an equivalent deterministic automaton with no two
// structurally equal states, built by powerset construction over
// interned closures followed by iterated deduplication.
func (a *Automaton) Determinize() (*Automaton, error) {
	// Work on a copy whose per-state triggers are already disjoint.
	src := a.Clone()
	for _, s := range src.states {
		s.trans = disjoin(s.trans)
	}

	out := &Automaton{}
	interned := make(map[string]int)
	var members [][]int

	// addClosure interns the sorted, deduplicated member set and creates
	// its state on first sight, recognizables unioned in member order.
	addClosure := func(ms []int) (int, error) {
		sorted := append([]int(nil), ms...)
		sort.Ints(sorted)
		dedup := sorted[:0]
		for _, m := range sorted {
			if len(dedup) == 0 || dedup[len(dedup)-1] != m {
				dedup = append(dedup, m)
			}
		}
		key := closureKey(dedup)
		if idx, ok := interned[key]; ok {
			return idx, nil
		}
		if len(out.states) >= MaxDFAStates {
			return 0, ErrStateLimitExceeded
		}
		var tags []Tag
		for _, m := range dedup {
			tags = appendTags(tags, src.states[m].tags...)
		}
		out.states = append(out.states, &state{tags: tags})
		members = append(members, dedup)
		idx := len(out.states) - 1
		interned[key] = idx
		return idx, nil
	}

	if _, err := addClosure([]int{0}); err != nil {
		return nil, err
	}

	// Work-list over closures: out.states grows as new closures appear.
	for qi := 0; qi < len(out.states); qi++ {
		var combined []Transition
		for _, m := range members[qi] {
			combined = append(combined, src.states[m].trans...)
		}
		combined = disjoin(combined)

		// disjoin emits equal triggers consecutively; each run of equal
		// triggers becomes one transition to the closure of its targets.
		for i := 0; i < len(combined); {
			j := i + 1
			targets := []int{combined[i].Target}
			for j < len(combined) && combined[j].Trigger.Equal(combined[i].Trigger) {
				targets = append(targets, combined[j].Target)
				j++
			}
			tgt, err := addClosure(targets)
			if err != nil {
				return nil, err
			}
			out.states[qi].trans = append(out.states[qi].trans, Transition{Trigger: combined[i].Trigger, Target: tgt})
			i = j
		}
	}

	out.dedupe()
	return out, nil
}

// dedupe collapses structurally equal states onto their first
// occurrence, re-aiming transitions, until the state count stops
// shrinking. Transitions are coalesced by target between rounds so that
// re-aimed duplicates cannot mask equality.
func (a *Automaton) dedupe() {
	for _, s := range a.states {
		s.trans = coalesce(s.trans)
	}
	for {
		n := len(a.states)
		canon := make([]int, n)
		kept := 0
		for i := 0; i < n; i++ {
			canon[i] = i
			for j := 0; j < i; j++ {
				if canon[j] == j && a.stateEqual(i, j) {
					canon[i] = j
					break
				}
			}
			if canon[i] == i {
				kept++
			}
		}
		if kept == n {
			return
		}
		for _, s := range a.states {
			for ti := range s.trans {
				s.trans[ti].Target = canon[s.trans[ti].Target]
			}
		}
		a.trim()
		for _, s := range a.states {
			s.trans = coalesce(s.trans)
		}
	}
}

// stateEqual reports structural equality: same recognizables as sets and
// same transitions as multisets (trigger equality plus target identity).
func (a *Automaton) stateEqual(i, j int) bool {
	si, sj := a.states[i], a.states[j]
	if !tagSetEqual(si.tags, sj.tags) {
		return false
	}
	if len(si.trans) != len(sj.trans) {
		return false
	}
	used := make([]bool, len(sj.trans))
	for _, ti := range si.trans {
		found := false
		for k, tj := range sj.trans {
			if used[k] || ti.Target != tj.Target || !ti.Trigger.Equal(tj.Trigger) {
				continue
			}
			used[k] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

func tagSetEqual(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		found := false
		for _, o := range b {
			if t == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func closureKey(members []int) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(m))
	}
	return b.String()
}
