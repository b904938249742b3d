package automaton

// Clone returns a structurally identical copy sharing no mutable state
// with the original.
func (a *Automaton) Clone() *Automaton {
	out := &Automaton{states: make([]*state, len(a.states))}
	for i, s := range a.states {
		out.states[i] = cloneState(s, 0)
	}
	return out
}

// Retag returns a copy in which every accepting state's recognizables
// are replaced by the single given tag. Used to turn an accept-marker
// automaton into a token-type-tagged one.
func (a *Automaton) Retag(tag Tag) *Automaton {
	out := a.Clone()
	for _, s := range out.states {
		if len(s.tags) > 0 {
			s.tags = []Tag{tag}
		}
	}
	return out
}

// Optional returns an automaton that additionally accepts the empty
// string. An already optional automaton is returned as is.
//
// The new start state carries the union of the original final states'
// recognizables and replicates the original start's outbound edges into
// the cloned body.
func (a *Automaton) Optional() *Automaton {
	if a.IsOptional() {
		return a
	}
	out := &Automaton{}
	var tags []Tag
	for _, s := range a.states {
		if len(s.tags) > 0 {
			tags = appendTags(tags, s.tags...)
		}
	}
	start := &state{tags: tags}
	out.states = append(out.states, start)
	for _, s := range a.states {
		out.states = append(out.states, cloneState(s, 1))
	}
	for _, tr := range a.states[0].trans {
		start.trans = append(start.trans, Transition{Trigger: tr.Trigger, Target: tr.Target + 1})
	}
	out.trim()
	return out
}

// Repeated returns an automaton recognizing one or more repetitions of
// the body: every final state of the clone receives a copy of the
// start's outbound edges.
func (a *Automaton) Repeated() *Automaton {
	out := a.Clone()
	startTrans := make([]Transition, len(out.states[0].trans))
	copy(startTrans, out.states[0].trans)
	for _, s := range out.states {
		if len(s.tags) > 0 {
			s.trans = append(s.trans, startTrans...)
		}
	}
	return out
}

// Choice returns an automaton recognizing the union of the inputs'
// languages. The new start state unions all the starts' recognizables
// (final iff any input is optional) and replicates every start's
// outbound edges; all other states of all inputs are preserved.
func Choice(as ...*Automaton) *Automaton {
	out := &Automaton{states: []*state{{}}}
	start := out.states[0]
	for _, a := range as {
		start.tags = appendTags(start.tags, a.states[0].tags...)
		offset := len(out.states)
		for _, s := range a.states {
			out.states = append(out.states, cloneState(s, offset))
		}
		for _, tr := range a.states[0].trans {
			start.trans = append(start.trans, Transition{Trigger: tr.Trigger, Target: tr.Target + offset})
		}
	}
	out.trim()
	return out
}

// Concat returns an automaton recognizing the concatenation of the
// inputs' languages, handling any mix of optional operands.
//
// The frontier walk replicates each operand's start edges into the
// current frontier instead of chaining through epsilon edges; when an
// operand is optional its start's frontier role is played by the
// frontier states already in hand, which is what lets the operand be
// skipped. Recognizables are stripped from operands before the last
// non-optional one so no accept fires before every required part has
// been seen.
func Concat(as ...*Automaton) *Automaton {
	if len(as) == 0 {
		return New()
	}

	last := -1
	for i, a := range as {
		if !a.IsOptional() {
			last = i
		}
	}

	out := &Automaton{}
	var start *state
	if last == -1 {
		// Every operand is optional, so the whole concatenation is:
		// the start replicates the first operand's accepting start.
		start = &state{tags: appendTags(nil, as[0].states[0].tags...)}
	} else {
		start = &state{}
	}
	out.states = append(out.states, start)

	frontier := []int{0}
	for i, a := range as {
		keepTags := i >= last
		offset := len(out.states)
		var next []int
		for si, s := range a.states {
			var tags []Tag
			if keepTags {
				tags = appendTags(nil, s.tags...)
			}
			ns := &state{tags: tags}
			for _, tr := range s.trans {
				ns.trans = append(ns.trans, Transition{Trigger: tr.Trigger, Target: tr.Target + offset})
			}
			out.states = append(out.states, ns)
			if len(s.tags) > 0 {
				if si == 0 {
					next = append(next, frontier...)
				} else {
					next = append(next, offset+si)
				}
			}
		}
		for _, fi := range frontier {
			f := out.states[fi]
			for _, tr := range a.states[0].trans {
				f.trans = append(f.trans, Transition{Trigger: tr.Trigger, Target: tr.Target + offset})
			}
		}
		frontier = dedupInts(next)
	}

	out.trim()
	return out
}

func dedupInts(xs []int) []int {
	out := xs[:0]
	for _, x := range xs {
		seen := false
		for _, o := range out {
			if o == x {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, x)
		}
	}
	return out
}
