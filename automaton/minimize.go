package automaton

// reverse returns an automaton accepting the reverse of a's language: every
// transition is flipped, a fresh initial state has epsilon edges to every
// one of a's former accept states, and a's former initial state becomes
// the sole accept state.
func reverse(a *Automaton) *Automaton {
	out := &Automaton{}
	for range a.states {
		out.AddState()
	}

	for i, s := range a.states {
		for _, t := range s.Transitions {
			if t.IsEpsilon() {
				out.addEpsilon(t.Dest, i)
			} else {
				out.AddTransition(t.Dest, i, t.Min, t.Max)
			}
		}
	}

	newInitial := out.AddState()
	out.initial = newInitial
	for i, s := range a.states {
		if s.Accept {
			out.addEpsilon(newInitial, i)
		}
	}
	out.SetAccept(a.initial, true)

	return out
}

// Minimize returns the minimal DFA equivalent to a, via Brzozowski's
// double-reversal algorithm: reverse, determinize, reverse, determinize.
// Two determinizations of a reversed automaton always yield the minimal
// DFA, without the partition-refinement bookkeeping Hopcroft's algorithm
// needs — the tradeoff is that each determinization step can, in the worst
// case, produce exponentially many states.
func Minimize(a *Automaton) *Automaton {
	step1 := Determinize(reverse(a))
	step2 := Determinize(reverse(step1))

	return RemoveDeadTransitions(step2)
}
