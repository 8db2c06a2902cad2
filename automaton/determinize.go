package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// epsilonClosure returns the set of states reachable from any state in
// seed via zero or more epsilon edges, including seed itself.
func (a *Automaton) epsilonClosure(seed []int) []int {
	seen := make(map[int]bool, len(seed))
	stack := append([]int(nil), seed...)
	for _, s := range seed {
		seen[s] = true
	}

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		for _, t := range a.states[cur].Transitions {
			if !t.IsEpsilon() || seen[t.Dest] {
				continue
			}
			seen[t.Dest] = true
			stack = append(stack, t.Dest)
		}
	}

	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)

	return out
}

func setKey(states []int) string {
	b := strings.Builder{}
	for i, s := range states {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}

	return b.String()
}

func anyAccepts(a *Automaton, states []int) bool {
	for _, s := range states {
		if a.states[s].Accept {
			return true
		}
	}

	return false
}

// boundaryPoints returns the sorted, deduplicated set of interval start
// points implied by the non-epsilon transitions leaving any state in
// states: every Min, and every Max+1 that doesn't overflow MaxRune.
func boundaryPoints(a *Automaton, states []int) []rune {
	seen := make(map[rune]bool)
	for _, s := range states {
		for _, t := range a.states[s].Transitions {
			if t.IsEpsilon() {
				continue
			}
			seen[t.Min] = true
			if t.Max < MaxRune {
				seen[t.Max+1] = true
			}
		}
	}

	out := make([]rune, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Determinize converts a (possibly nondeterministic, possibly
// epsilon-containing) automaton into an equivalent DFA via subset
// construction: each DFA state corresponds to an epsilon-closed set of NFA
// states, and the rune alphabet is partitioned at every transition
// boundary so each resulting DFA transition is a single, non-overlapping
// range.
func Determinize(a *Automaton) *Automaton {
	out := &Automaton{Deterministic: true}

	startSet := a.epsilonClosure([]int{a.initial})
	startKey := setKey(startSet)

	stateOf := map[string]int{}
	initial := out.AddState()
	stateOf[startKey] = initial
	out.initial = initial
	out.SetAccept(initial, anyAccepts(a, startSet))

	type pending struct {
		id  int
		set []int
	}
	worklist := []pending{{id: initial, set: startSet}}

	for len(worklist) > 0 {
		n := len(worklist) - 1
		cur := worklist[n]
		worklist = worklist[:n]

		points := boundaryPoints(a, cur.set)
		for i, p := range points {
			var hi rune
			if i+1 < len(points) {
				hi = points[i+1] - 1
			} else {
				hi = MaxRune
			}

			var targetSeed []int
			for _, s := range cur.set {
				for _, t := range a.states[s].Transitions {
					if t.IsEpsilon() {
						continue
					}
					if t.Min <= p && p <= t.Max {
						targetSeed = append(targetSeed, t.Dest)
					}
				}
			}
			if len(targetSeed) == 0 {
				continue
			}

			targetSet := a.epsilonClosure(targetSeed)
			key := setKey(targetSet)

			destID, ok := stateOf[key]
			if !ok {
				destID = out.AddState()
				stateOf[key] = destID
				out.SetAccept(destID, anyAccepts(a, targetSet))
				worklist = append(worklist, pending{id: destID, set: targetSet})
			}

			out.AddTransition(cur.id, destID, p, hi)
		}
	}

	return Reduce(out)
}
