// Package packed implements fixed-bit-width integer arrays: every value in
// an array is stored using exactly the same number of bits (1 through 64),
// chosen to be just wide enough for the largest value the array will ever
// hold. The stored-fields writer keeps its fdx offsets in one; it suits
// anywhere a long run of small non-negative integers would otherwise waste
// most of a full 64-bit word.
package packed

import (
	"fmt"

	"github.com/gosegment/ltcore/errs"
)

// MaxBitsPerValue is the widest value width this package supports; 64-bit
// values are stored as plain uint64s via Direct64.
const MaxBitsPerValue = 64

// Mutable is a fixed-width array of valueCount unsigned integers, each
// BitsPerValue() bits wide. Implementations never validate that Set's v
// fits in BitsPerValue bits on the hot path; callers that can't guarantee
// this should go through Growable instead.
type Mutable interface {
	// Size returns the number of values in the array.
	Size() int
	// BitsPerValue returns the fixed width, in bits, of every value.
	BitsPerValue() int
	// Get returns the value at index i.
	Get(i int) uint64
	// Set stores v at index i. v must fit in BitsPerValue bits.
	Set(i int, v uint64)
	// Fill sets every value in [from, to) to v.
	Fill(from, to int, v uint64)
	// Clear resets every value to 0.
	Clear()
	// BulkGet copies min(len(out), Size()-i) values starting at i into out
	// and returns the number copied. i must be a valid index; the count
	// returned is always at least 1.
	BulkGet(i int, out []uint64) int
	// BulkSet copies min(len(in), Size()-i) values from in into the array
	// starting at i and returns the number copied. i must be a valid
	// index; the count returned is always at least 1.
	BulkSet(i int, in []uint64) int
	// Resize returns a new Mutable of newSize values at the same bit
	// width: content is copied from min(Size(), newSize) positions: any
	// positions beyond the old size are zero.
	Resize(newSize int) Mutable
}

// bulkGet is the shared BulkGet implementation every Mutable delegates to.
func bulkGet(m Mutable, i int, out []uint64) int {
	checkIndex(i, m.Size())
	n := len(out)
	if i+n > m.Size() {
		n = m.Size() - i
	}
	for j := 0; j < n; j++ {
		out[j] = m.Get(i + j)
	}

	return n
}

// bulkSet is the shared BulkSet implementation every Mutable delegates to.
func bulkSet(m Mutable, i int, in []uint64) int {
	checkIndex(i, m.Size())
	n := len(in)
	if i+n > m.Size() {
		n = m.Size() - i
	}
	for j := 0; j < n; j++ {
		m.Set(i+j, in[j])
	}

	return n
}

// resize is the shared Resize implementation every Mutable delegates to: a
// fresh array of the same bit width, with min(m.Size(),newSize) values
// copied over and the rest zero.
func resize(m Mutable, newSize int) Mutable {
	next, err := New(newSize, m.BitsPerValue())
	if err != nil {
		panic(err)
	}

	n := m.Size()
	if newSize < n {
		n = newSize
	}
	for i := 0; i < n; i++ {
		next.Set(i, m.Get(i))
	}

	return next
}

// BitsRequired returns the minimum number of bits needed to represent
// maxValue, the same computation spec.md's packed-integer sizing asks for
// when a caller already knows the largest value an array will hold.
func BitsRequired(maxValue uint64) int {
	if maxValue == 0 {
		return 1
	}

	bits := 0
	for maxValue != 0 {
		bits++
		maxValue >>= 1
	}

	return bits
}

// New creates a Mutable holding valueCount values, each bitsPerValue bits
// wide, selecting the narrowest concrete representation that exactly
// matches bitsPerValue (Direct8/16/32/64 for the byte-aligned widths,
// Packed64 for everything else).
func New(valueCount, bitsPerValue int) (Mutable, error) {
	if bitsPerValue <= 0 || bitsPerValue > MaxBitsPerValue {
		return nil, fmt.Errorf("%w: bitsPerValue %d outside [1,%d]", errs.ErrValueTooLarge, bitsPerValue, MaxBitsPerValue)
	}
	if valueCount < 0 {
		return nil, fmt.Errorf("%w: negative valueCount %d", errs.ErrIndexOutOfRange, valueCount)
	}

	switch bitsPerValue {
	case 8:
		return NewDirect8(valueCount), nil
	case 16:
		return NewDirect16(valueCount), nil
	case 32:
		return NewDirect32(valueCount), nil
	case 64:
		return NewDirect64(valueCount), nil
	default:
		return NewPacked64(valueCount, bitsPerValue), nil
	}
}

func checkIndex(i, size int) {
	if i < 0 || i >= size {
		panic(fmt.Sprintf("packed: index %d out of range [0,%d)", i, size))
	}
}
