package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func accepts(a *Automaton, s string) bool {
	state := a.initial
	for _, r := range s {
		found := false
		for _, t := range a.states[state].Transitions {
			if t.IsEpsilon() {
				continue
			}
			if t.Min <= r && r <= t.Max {
				state = t.Dest
				found = true

				break
			}
		}
		if !found {
			return false
		}
	}

	return a.states[state].Accept
}

func TestSingleton(t *testing.T) {
	a := Singleton("cat")
	require.True(t, accepts(a, "cat"))
	require.False(t, accepts(a, "cats"))
	require.False(t, accepts(a, "ca"))
}

func TestUnion_NeedsDeterminize(t *testing.T) {
	a := Union(Singleton("cat"), Singleton("dog"))
	d := Determinize(a)

	require.True(t, d.Deterministic)
	require.True(t, accepts(d, "cat"))
	require.True(t, accepts(d, "dog"))
	require.False(t, accepts(d, "cow"))
}

func TestConcatenate(t *testing.T) {
	a := Determinize(Concatenate(Singleton("foo"), Singleton("bar")))
	require.True(t, accepts(a, "foobar"))
	require.False(t, accepts(a, "foo"))
	require.False(t, accepts(a, "bar"))
}

func TestStarAndPlus(t *testing.T) {
	star := Determinize(Star(Singleton("ab")))
	require.True(t, accepts(star, ""))
	require.True(t, accepts(star, "ab"))
	require.True(t, accepts(star, "abab"))
	require.False(t, accepts(star, "aba"))

	plus := Determinize(Plus(Singleton("ab")))
	require.False(t, accepts(plus, ""))
	require.True(t, accepts(plus, "ab"))
	require.True(t, accepts(plus, "abab"))
}

func TestOptional(t *testing.T) {
	opt := Determinize(Optional(Singleton("x")))
	require.True(t, accepts(opt, ""))
	require.True(t, accepts(opt, "x"))
	require.False(t, accepts(opt, "xx"))
}

func TestRepeat_MinMax(t *testing.T) {
	r := Determinize(Repeat(Singleton("a"), 2, 4))
	require.False(t, accepts(r, "a"))
	require.True(t, accepts(r, "aa"))
	require.True(t, accepts(r, "aaa"))
	require.True(t, accepts(r, "aaaa"))
	require.False(t, accepts(r, "aaaaa"))
}

func TestRepeat_Unbounded(t *testing.T) {
	r := Determinize(Repeat(Singleton("a"), 2, -1))
	require.False(t, accepts(r, "a"))
	require.True(t, accepts(r, "aa"))
	require.True(t, accepts(r, "aaaaaaaa"))
}

func TestComplement(t *testing.T) {
	a := Determinize(Singleton("x"))
	c := Complement(a)

	require.False(t, accepts(c, "x"))
	require.True(t, accepts(c, "y"))
	require.True(t, accepts(c, ""))
}

func TestIntersectionAndMinus(t *testing.T) {
	ab := Determinize(Union(Singleton("a"), Singleton("b")))
	bc := Determinize(Union(Singleton("b"), Singleton("c")))

	inter := Intersection(ab, bc)
	require.True(t, accepts(inter, "b"))
	require.False(t, accepts(inter, "a"))
	require.False(t, accepts(inter, "c"))

	minus := Minus(ab, bc)
	require.True(t, accepts(minus, "a"))
	require.False(t, accepts(minus, "b"))
}

func TestIsEmptyAndIsEmptyString(t *testing.T) {
	require.True(t, IsEmpty(Empty()))
	require.False(t, IsEmpty(Singleton("x")))

	require.True(t, IsEmptyString(EmptyString()))
	require.False(t, IsEmptyString(Singleton("x")))
}

func TestIsFinite(t *testing.T) {
	require.True(t, IsFinite(Singleton("abc")))
	require.False(t, IsFinite(Star(Singleton("a"))))
}

func TestSubsetOfAndSameLanguage(t *testing.T) {
	a := Determinize(Singleton("cat"))
	b := Determinize(Union(Singleton("cat"), Singleton("dog")))

	require.True(t, SubsetOf(a, b))
	require.False(t, SubsetOf(b, a))
	require.False(t, SameLanguage(a, b))
	require.True(t, SameLanguage(a, Determinize(Singleton("cat"))))
}

func TestMinimize_ProducesEquivalentAutomaton(t *testing.T) {
	a := Determinize(Union(Singleton("cat"), Union(Singleton("car"), Singleton("cats"))))
	m := Minimize(a)

	require.True(t, SameLanguage(a, m))
	require.True(t, accepts(m, "cat"))
	require.True(t, accepts(m, "car"))
	require.True(t, accepts(m, "cats"))
	require.False(t, accepts(m, "ca"))
}

func TestNumberedStatesAndStartPoints(t *testing.T) {
	a := Determinize(Union(Singleton("ab"), Singleton("ac")))

	order := NumberedStates(a)
	require.Equal(t, a.initial, order[0])
	require.NotEmpty(t, StartPoints(a))
}
