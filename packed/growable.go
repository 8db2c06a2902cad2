package packed

// Growable wraps a Mutable and transparently widens its bit width in place
// whenever a caller tries to Set a value that no longer fits, instead of
// requiring the caller to pre-compute the final width. This is what
// postings and stored-field offset writers use while they're still
// appending values and don't yet know the eventual maximum.
type Growable struct {
	current Mutable
}

// NewGrowable creates a Growable array of valueCount values, starting at
// startBitsPerValue bits wide (1 if the caller has no better estimate).
func NewGrowable(valueCount, startBitsPerValue int) *Growable {
	if startBitsPerValue <= 0 {
		startBitsPerValue = 1
	}
	m, err := New(valueCount, startBitsPerValue)
	if err != nil {
		// startBitsPerValue is always in [1,64] by construction above.
		panic(err)
	}

	return &Growable{current: m}
}

func (g *Growable) Size() int         { return g.current.Size() }
func (g *Growable) BitsPerValue() int { return g.current.BitsPerValue() }
func (g *Growable) Get(i int) uint64  { return g.current.Get(i) }

// Set stores v at index i, widening the backing array first if v doesn't
// fit in the current bit width.
func (g *Growable) Set(i int, v uint64) {
	needed := BitsRequired(v)
	if needed > g.current.BitsPerValue() {
		g.grow(needed)
	}
	g.current.Set(i, v)
}

// Fill sets every value in [from, to) to v, widening first if necessary.
func (g *Growable) Fill(from, to int, v uint64) {
	needed := BitsRequired(v)
	if needed > g.current.BitsPerValue() {
		g.grow(needed)
	}
	g.current.Fill(from, to, v)
}

// Clear resets every value to 0. It does not narrow the bit width back down.
func (g *Growable) Clear() { g.current.Clear() }

// EnsureCapacity widens the array so it can hold any value up to maxValue
// without a further reallocation, useful when a caller already knows the
// eventual maximum and wants to avoid repeated regrowth.
func (g *Growable) EnsureCapacity(maxValue uint64) {
	needed := BitsRequired(maxValue)
	if needed > g.current.BitsPerValue() {
		g.grow(needed)
	}
}

func (g *Growable) grow(newBitsPerValue int) {
	next, err := New(g.current.Size(), newBitsPerValue)
	if err != nil {
		panic(err)
	}
	for i := 0; i < g.current.Size(); i++ {
		next.Set(i, g.current.Get(i))
	}
	g.current = next
}

// Current returns the current backing array. The returned value is only
// valid until the next Set/Fill/EnsureCapacity call that triggers a widen.
func (g *Growable) Current() Mutable { return g.current }

// BulkGet copies min(len(out), Size()-i) values starting at i into out.
func (g *Growable) BulkGet(i int, out []uint64) int { return bulkGet(g, i, out) }

// BulkSet copies min(len(in), Size()-i) values from in, each going through
// Set so the array widens automatically if a value doesn't fit.
func (g *Growable) BulkSet(i int, in []uint64) int { return bulkSet(g, i, in) }

// Resize returns a new Growable of newSize values at the current bit
// width, with content copied from min(Size(),newSize) positions.
func (g *Growable) Resize(newSize int) Mutable {
	return &Growable{current: resize(g.current, newSize)}
}
