package automaton

// IsEmpty reports whether a accepts no strings at all, including the empty
// string: true iff no accept state is reachable from the initial state.
func IsEmpty(a *Automaton) bool {
	live := liveStates(a)
	return !live[a.initial]
}

// IsEmptyString reports whether a accepts the empty string (and says
// nothing about whether it accepts anything else).
func IsEmptyString(a *Automaton) bool {
	return anyAccepts(a, a.epsilonClosure([]int{a.initial}))
}

// IsTotal reports whether a (which must be deterministic) accepts every
// possible string: equivalent to its complement being empty.
func IsTotal(a *Automaton) bool {
	return IsEmpty(Complement(a))
}

// IsFinite reports whether a's language is finite, i.e. its reachable
// state graph (epsilon edges included) contains no cycle. a need not be
// deterministic.
func IsFinite(a *Automaton) bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(a.states))

	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		for _, t := range a.states[i].Transitions {
			switch color[t.Dest] {
			case gray:
				return false
			case white:
				if !visit(t.Dest) {
					return false
				}
			}
		}
		color[i] = black

		return true
	}

	return visit(a.initial)
}

// SubsetOf reports whether a's language is a subset of b's. Both operands
// must already be deterministic: a ⊆ b iff a ∩ ¬b is empty.
func SubsetOf(a, b *Automaton) bool {
	return IsEmpty(Minus(a, b))
}

// SameLanguage reports whether a and b accept exactly the same language.
// Both operands must already be deterministic.
func SameLanguage(a, b *Automaton) bool {
	return SubsetOf(a, b) && SubsetOf(b, a)
}
