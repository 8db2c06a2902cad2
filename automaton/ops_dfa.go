package automaton

// Reduce sorts each state's transitions and merges adjacent or overlapping
// ranges that share a destination into a single transition. Determinize
// always runs its result through Reduce; callers that hand-build or
// mutate an automaton directly should call it before relying on
// SortedTransitions producing a minimal edge set.
func Reduce(a *Automaton) *Automaton {
	for i := range a.states {
		ts := a.SortedTransitions(i)
		if len(ts) == 0 {
			continue
		}

		merged := make([]Transition, 0, len(ts))
		cur := ts[0]
		for _, t := range ts[1:] {
			if t.Dest == cur.Dest && t.Min <= cur.Max+1 {
				if t.Max > cur.Max {
					cur.Max = t.Max
				}

				continue
			}
			merged = append(merged, cur)
			cur = t
		}
		merged = append(merged, cur)
		a.states[i].Transitions = merged
	}

	return a
}

// liveStates returns the set of state indices from which some accept state
// is reachable.
func liveStates(a *Automaton) map[int]bool {
	reverse := make(map[int][]int)
	for i, s := range a.states {
		for _, t := range s.Transitions {
			reverse[t.Dest] = append(reverse[t.Dest], i)
		}
	}

	live := make(map[int]bool)
	var stack []int
	for i, s := range a.states {
		if s.Accept {
			live[i] = true
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		for _, pred := range reverse[cur] {
			if !live[pred] {
				live[pred] = true
				stack = append(stack, pred)
			}
		}
	}

	return live
}

// RemoveDeadTransitions drops every transition that leads only to states
// from which no accept state is reachable, and renumbers the remaining
// states compactly. Run this after Minus/Intersection, which can otherwise
// leave large unreachable-to-accept remnants in the arena.
func RemoveDeadTransitions(a *Automaton) *Automaton {
	live := liveStates(a)
	if !live[a.initial] {
		return Empty()
	}

	remap := make(map[int]int)
	out := &Automaton{Deterministic: a.Deterministic}
	for i := range a.states {
		if live[i] {
			remap[i] = out.AddState()
		}
	}
	out.initial = remap[a.initial]

	for i, s := range a.states {
		newIdx, ok := remap[i]
		if !ok {
			continue
		}
		out.SetAccept(newIdx, s.Accept)
		for _, t := range s.Transitions {
			if dest, ok := remap[t.Dest]; ok {
				out.AddTransition(newIdx, dest, t.Min, t.Max)
			}
		}
	}

	return Reduce(out)
}

// Totalize returns a is a deterministic automaton where every state has an
// outgoing transition covering the entire rune range [0,MaxRune], adding a
// single non-accepting dead-end state to absorb anything the original
// automaton would otherwise have rejected outright. Complement requires
// its operand to already be totalized; determinization alone doesn't
// guarantee that.
func Totalize(a *Automaton) *Automaton {
	out := a.clone()
	dead := out.AddState()
	out.AddTransition(dead, dead, 0, MaxRune)

	for i := range out.states {
		if i == dead {
			continue
		}

		ts := out.SortedTransitions(i)
		var gaps []Transition
		next := rune(0)
		for _, t := range ts {
			if t.Min > next {
				gaps = append(gaps, Transition{Min: next, Max: t.Min - 1, Dest: dead})
			}
			if t.Max+1 > next {
				next = t.Max + 1
			}
		}
		if next <= MaxRune {
			gaps = append(gaps, Transition{Min: next, Max: MaxRune, Dest: dead})
		}

		out.states[i].Transitions = append(out.states[i].Transitions, gaps...)
	}

	return Reduce(out)
}

// Complement returns an automaton accepting every string not accepted by
// a. a must already be deterministic (Determinize it first); Complement
// totalizes internally and simply flips every Accept flag.
func Complement(a *Automaton) *Automaton {
	out := Totalize(a)
	for i := range out.states {
		out.states[i].Accept = !out.states[i].Accept
	}

	return out
}

// product runs the classic DFA product construction over a and b, calling
// accept(aAccept, bAccept) to decide whether each paired state accepts.
// Both operands must already be deterministic.
func product(a, b *Automaton, accept func(aAccept, bAccept bool) bool) *Automaton {
	out := &Automaton{Deterministic: true}

	type pair struct{ ai, bi int }
	idOf := map[pair]int{}

	start := pair{a.initial, b.initial}
	initial := out.AddState()
	idOf[start] = initial
	out.initial = initial
	out.SetAccept(initial, accept(a.states[a.initial].Accept, b.states[b.initial].Accept))

	worklist := []pair{start}
	for len(worklist) > 0 {
		n := len(worklist) - 1
		cur := worklist[n]
		worklist = worklist[:n]
		curID := idOf[cur]

		at := a.SortedTransitions(cur.ai)
		bt := b.SortedTransitions(cur.bi)

		for _, ta := range at {
			for _, tb := range bt {
				lo := maxRune(ta.Min, tb.Min)
				hi := minRune(ta.Max, tb.Max)
				if lo > hi {
					continue
				}

				next := pair{ta.Dest, tb.Dest}
				destID, ok := idOf[next]
				if !ok {
					destID = out.AddState()
					idOf[next] = destID
					out.SetAccept(destID, accept(a.states[ta.Dest].Accept, b.states[tb.Dest].Accept))
					worklist = append(worklist, next)
				}

				out.AddTransition(curID, destID, lo, hi)
			}
		}
	}

	return Reduce(out)
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}

	return b
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}

	return b
}

// Intersection returns an automaton accepting the language a ∩ b. Both
// operands must already be deterministic.
func Intersection(a, b *Automaton) *Automaton {
	return product(a, b, func(aAccept, bAccept bool) bool { return aAccept && bAccept })
}

// Minus returns an automaton accepting strings in a's language but not in
// b's. Both operands must already be deterministic; b is totalized
// internally so the product construction sees a defined transition for
// every input.
func Minus(a, b *Automaton) *Automaton {
	bTotal := Totalize(b)

	return product(a, bTotal, func(aAccept, bAccept bool) bool { return aAccept && !bAccept })
}
