// Package automaton implements a finite-state automaton over Unicode code
// points: an arena of State records addressed by index, transitions labeled
// with inclusive [Min,Max] rune ranges (plus an epsilon marker used only
// during construction), and the standard combinators and normalizations
// used to compile a query-DSL term, wildcard, or regex into a single
// matchable graph — union, concatenation, repetition, determinize,
// minimize, complement, and intersection.
package automaton

import "sort"

// MaxRune is the inclusive upper bound on any transition label this
// package deals in.
const MaxRune = 0x10FFFF

// Transition is a labeled edge from one state to another, matching any rune
// in [Min,Max] inclusive. A Transition with Min > Max is an epsilon edge:
// it consumes no input and exists only in the NFA form produced by the
// Thompson-style combinators, never in a determinized automaton.
type Transition struct {
	Min, Max rune
	Dest     int
}

// IsEpsilon reports whether t is an epsilon (no-input) edge.
func (t Transition) IsEpsilon() bool { return t.Min > t.Max }

// State is one node of the automaton's arena: whether it accepts, and the
// (possibly unsorted, possibly overlapping) transitions leaving it.
type State struct {
	Accept      bool
	Transitions []Transition
}

// Automaton is a mutable finite-state graph. Fresh automata built by the
// combinators in this package are NFAs (possibly with epsilon edges and
// overlapping/unsorted transitions); Determinize produces an automaton with
// Deterministic set, no epsilon edges, and at most one transition out of
// each state per rune.
type Automaton struct {
	states        []State
	initial       int
	Deterministic bool
}

// NumStates returns the number of states in the arena, including any that
// have become unreachable.
func (a *Automaton) NumStates() int { return len(a.states) }

// Initial returns the index of the initial state.
func (a *Automaton) Initial() int { return a.initial }

// State returns the state at index i.
func (a *Automaton) State(i int) *State { return &a.states[i] }

// AddState appends a new, non-accepting state with no transitions and
// returns its index.
func (a *Automaton) AddState() int {
	a.states = append(a.states, State{})
	return len(a.states) - 1
}

// SetAccept marks state i as accepting or not.
func (a *Automaton) SetAccept(i int, accept bool) { a.states[i].Accept = accept }

// IsAccept reports whether state i is accepting.
func (a *Automaton) IsAccept(i int) bool { return a.states[i].Accept }

// AddTransition adds an edge from `from` to `to` accepting runes in
// [min,max]. Transitions added this way are not required to be sorted or
// non-overlapping; Reduce and Determinize handle that.
func (a *Automaton) AddTransition(from, to int, min, max rune) {
	a.states[from].Transitions = append(a.states[from].Transitions, Transition{Min: min, Max: max, Dest: to})
}

// addEpsilon adds a no-input edge from `from` to `to`.
func (a *Automaton) addEpsilon(from, to int) {
	a.states[from].Transitions = append(a.states[from].Transitions, Transition{Min: 1, Max: 0, Dest: to})
}

// clone returns a deep copy of a, used internally by combinators that need
// to merge two automata into a fresh arena without aliasing either input's
// backing slices.
func (a *Automaton) clone() *Automaton {
	out := &Automaton{states: make([]State, len(a.states)), initial: a.initial, Deterministic: a.Deterministic}
	for i, s := range a.states {
		out.states[i] = State{Accept: s.Accept, Transitions: append([]Transition(nil), s.Transitions...)}
	}

	return out
}

// Empty returns an automaton accepting no strings at all (not even the
// empty string): a single non-accepting state with no transitions.
func Empty() *Automaton {
	a := &Automaton{Deterministic: true}
	a.initial = a.AddState()

	return a
}

// EmptyString returns an automaton accepting exactly the empty string.
func EmptyString() *Automaton {
	a := &Automaton{Deterministic: true}
	a.initial = a.AddState()
	a.SetAccept(a.initial, true)

	return a
}

// CharRange returns an automaton accepting exactly one rune, anywhere in
// [min,max] inclusive.
func CharRange(min, max rune) *Automaton {
	a := &Automaton{Deterministic: true}
	start := a.AddState()
	end := a.AddState()
	a.initial = start
	a.SetAccept(end, true)
	a.AddTransition(start, end, min, max)

	return a
}

// Singleton returns an automaton accepting exactly the one given string, a
// straight-line chain of single-rune transitions.
func Singleton(s string) *Automaton {
	a := &Automaton{Deterministic: true}
	cur := a.AddState()
	a.initial = cur
	for _, r := range s {
		next := a.AddState()
		a.AddTransition(cur, next, r, r)
		cur = next
	}
	a.SetAccept(cur, true)

	return a
}

// offsetTransitions returns a copy of src's transitions with Dest shifted
// by delta, for splicing one automaton's states into another's arena.
func offsetTransitions(src []Transition, delta int) []Transition {
	out := make([]Transition, len(src))
	for i, t := range src {
		out[i] = Transition{Min: t.Min, Max: t.Max, Dest: t.Dest + delta}
	}

	return out
}

// appendStates copies src's states into dst's arena (offset by dst's
// current size) and returns the offset, so src's old state index i now
// lives at dst index i+offset.
func appendStates(dst, src *Automaton) int {
	offset := len(dst.states)
	for _, s := range src.states {
		dst.states = append(dst.states, State{
			Accept:      s.Accept,
			Transitions: offsetTransitions(s.Transitions, offset),
		})
	}

	return offset
}

// Concatenate returns an automaton accepting the language { xy : x in a, y
// in b }, via Thompson's construction: epsilon edges from every accept
// state of a to b's initial state.
func Concatenate(a, b *Automaton) *Automaton {
	out := &Automaton{}
	aOffset := appendStates(out, a)
	bOffset := appendStates(out, b)
	out.initial = aOffset + a.initial

	for i, s := range a.states {
		if !s.Accept {
			continue
		}
		out.states[aOffset+i].Accept = false
		out.addEpsilon(aOffset+i, bOffset+b.initial)
	}

	return out
}

// Union returns an automaton accepting the language a ∪ b, via a new
// initial state with epsilon edges into each operand's initial state.
func Union(a, b *Automaton) *Automaton {
	out := &Automaton{}
	aOffset := appendStates(out, a)
	bOffset := appendStates(out, b)
	out.initial = out.AddState()
	out.addEpsilon(out.initial, aOffset+a.initial)
	out.addEpsilon(out.initial, bOffset+b.initial)

	return out
}

// UnionAll returns an automaton accepting the union of every automaton in
// list, for compiling multi-term alternations without a chain of binary
// Unions.
func UnionAll(list []*Automaton) *Automaton {
	if len(list) == 0 {
		return Empty()
	}

	out := &Automaton{}
	out.initial = out.AddState()
	for _, a := range list {
		offset := appendStates(out, a)
		out.addEpsilon(out.initial, offset+a.initial)
	}

	return out
}

// Optional returns an automaton accepting a's language plus the empty
// string.
func Optional(a *Automaton) *Automaton {
	return Union(a, EmptyString())
}

// Star returns an automaton accepting zero or more repetitions of a's
// language (Kleene star).
func Star(a *Automaton) *Automaton {
	out := &Automaton{}
	offset := appendStates(out, a)
	out.initial = out.AddState()
	out.SetAccept(out.initial, true)
	out.addEpsilon(out.initial, offset+a.initial)

	for i, s := range a.states {
		if s.Accept {
			out.addEpsilon(offset+i, out.initial)
		}
	}

	return out
}

// Plus returns an automaton accepting one or more repetitions of a's
// language.
func Plus(a *Automaton) *Automaton {
	return Concatenate(a, Star(a))
}

// Repeat returns an automaton accepting between min and max (inclusive)
// repetitions of a's language. A negative max means unbounded (min or
// more).
func Repeat(a *Automaton, min, max int) *Automaton {
	if min < 0 {
		min = 0
	}

	if max < 0 {
		if min == 0 {
			return Star(a)
		}

		result := a
		for i := 1; i < min; i++ {
			result = Concatenate(result, a)
		}

		return Concatenate(result, Star(a))
	}

	if min > max {
		return Empty()
	}
	if max == 0 {
		return EmptyString()
	}

	var result *Automaton
	if min == 0 {
		result = EmptyString()
	} else {
		result = a
		for i := 1; i < min; i++ {
			result = Concatenate(result, a)
		}
	}

	optionalTail := Optional(a)
	for i := min; i < max; i++ {
		if i == 0 {
			result = optionalTail
		} else {
			result = Concatenate(result, optionalTail)
		}
	}

	return result
}

// sortTransitions sorts a state's transitions by (Min, Max, Dest) so Reduce
// and Determinize can scan them in a single linear pass.
func sortTransitions(ts []Transition) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Min != ts[j].Min {
			return ts[i].Min < ts[j].Min
		}
		if ts[i].Max != ts[j].Max {
			return ts[i].Max < ts[j].Max
		}

		return ts[i].Dest < ts[j].Dest
	})
}

// SortedTransitions returns a sorted copy of state i's transitions.
func (a *Automaton) SortedTransitions(i int) []Transition {
	ts := append([]Transition(nil), a.states[i].Transitions...)
	sortTransitions(ts)

	return ts
}
