package bitvector

import (
	"fmt"

	"github.com/gosegment/ltcore/errs"
	"github.com/gosegment/ltcore/store"
)

// CodecName identifies the on-disk format written by WriteTo.
const CodecName = "BitVector"

// VersionLegacy is a read-only format whose bits have the inverse polarity
// of every version since: a set bit marks a deleted document. Readers
// detect it purely from the stored version number and InvertAll the
// result once decoding finishes.
const VersionLegacy = 1

// VersionCurrent is the only version this package writes. D-gaps are
// recorded between deleted (cleared) bits, matching the intuition that a
// freshly flushed segment with very few deletions should cost very little
// to describe.
const VersionCurrent = 2

// AlgoID is the footer algorithm identifier for bit-vector streams.
const AlgoID = 2

// sparseSentinel is written in place of the dense form's `count` field to
// flag the sparse (d-gaps) form: a real popcount is never negative, so -1
// unambiguously distinguishes the two without a separate discriminator
// byte.
const sparseSentinel int32 = -1

// shouldWriteSparse implements the sparseness heuristic: let C be the
// cleared count and L the vector's size. Estimate the average gap between
// cleared bits as L/C and bucket it into one of five vint widths e using
// the 1<<7/1<<14/1<<21/1<<28 byte-count thresholds; the expected size in
// bits of the d-gap stream is then 32 + 8*(e+1)*C. D-gaps are chosen only
// when that estimate is less than a tenth of L, i.e. 10*expected < L —
// cheap enough to be worth the extra decode indirection. A vector with no
// cleared bits always takes the d-gap form, whatever its size.
//
// The formula is monotonic in C: it only ever favors d-gaps when the
// cleared count is a small, near-constant fraction of a large L (few
// deletions in a big segment, the case this heuristic is built for). A
// vector whose cleared count is a large fraction of its size always
// serializes dense, since the d-gap stream's own estimated size then scales
// with L and can never clear the 10x margin; see DESIGN.md for the reading
// of spec.md this is grounded on.
func shouldWriteSparse(size, clearedCount int) bool {
	if clearedCount == 0 {
		return true
	}

	avgGap := size / clearedCount

	var e int
	switch {
	case avgGap >= 1<<28:
		e = 5
	case avgGap >= 1<<21:
		e = 4
	case avgGap >= 1<<14:
		e = 3
	case avgGap >= 1<<7:
		e = 2
	default:
		e = 1
	}

	expected := 8*(e+1)*clearedCount + 32

	return 10*expected < size
}

// WriteTo serializes bv to out, using the sparse layout when
// shouldWriteSparse says so and the dense layout otherwise. The sparse
// layout is not picked merely because it would be smaller; its estimate
// has to come in under a tenth of the vector's size.
func WriteTo(out *store.DataOutput, bv *BitVector) error {
	if err := out.WriteHeader(CodecName, VersionCurrent); err != nil {
		return err
	}
	if err := out.WriteInt32(int32(bv.size)); err != nil {
		return err
	}

	cleared := bv.ClearedCount()
	if shouldWriteSparse(bv.size, cleared) {
		if err := writeSparse(out, bv); err != nil {
			return err
		}
	} else {
		if err := writeDense(out, bv); err != nil {
			return err
		}
	}

	return out.WriteFooter(AlgoID)
}

// byteAt extracts byte i (8 live/dead bits, i*8..i*8+7) from bv's backing
// words.
func byteAt(bv *BitVector, i int) byte {
	word := bv.bits[i/8]
	shift := uint((i % 8) * 8)

	return byte(word >> shift)
}

// setByteMask overwrites byte i of bv's backing words with mask.
func setByteMask(bv *BitVector, i int, mask byte) {
	wordIdx := i / 8
	shift := uint((i % 8) * 8)
	bv.bits[wordIdx] &^= uint64(0xFF) << shift
	bv.bits[wordIdx] |= uint64(mask) << shift
}

// liveByteMask returns the byte pattern byte i would hold if every document
// it covers were live: 0xFF for a full byte, or the low bitsInByte bits set
// for the vector's final, possibly-partial byte.
func liveByteMask(size, i int) byte {
	bitsInByte := size - i*8
	if bitsInByte >= 8 {
		return 0xFF
	}
	if bitsInByte <= 0 {
		return 0
	}

	return byte(1<<uint(bitsInByte) - 1)
}

func numBytes(size int) int { return (size + 7) / 8 }

func writeDense(out *store.DataOutput, bv *BitVector) error {
	if err := out.WriteInt32(int32(bv.count)); err != nil {
		return err
	}
	for i := 0; i < numBytes(bv.size); i++ {
		if err := out.WriteByte(byteAt(bv, i)); err != nil {
			return err
		}
	}

	return nil
}

// writeSparse emits the d-gaps form: a sentinel marking this form, the
// size and live count again, then one (vint gap, u8 byteMask) entry per
// byte that contains at least one cleared bit — gap is the distance, in
// qualifying bytes, from the previous entry (or from -1 for the first).
// Fully-live bytes need no entry at all.
func writeSparse(out *store.DataOutput, bv *BitVector) error {
	if err := out.WriteInt32(sparseSentinel); err != nil {
		return err
	}
	if err := out.WriteInt32(int32(bv.size)); err != nil {
		return err
	}
	if err := out.WriteInt32(int32(bv.count)); err != nil {
		return err
	}

	last := -1
	n := numBytes(bv.size)
	for i := 0; i < n; i++ {
		b := byteAt(bv, i)
		if b == liveByteMask(bv.size, i) {
			continue
		}

		gap := i - last - 1
		if err := out.WriteVInt64(uint64(gap)); err != nil {
			return err
		}
		if err := out.WriteByte(b); err != nil {
			return err
		}
		last = i
	}

	return nil
}

// ReadFrom deserializes a BitVector previously written by WriteTo, or a
// legacy-format vector whose d-gap polarity this function corrects via
// InvertAll before returning.
func ReadFrom(in *store.DataInput) (*BitVector, error) {
	version, err := in.ReadHeader(CodecName, VersionLegacy, VersionCurrent)
	if err != nil {
		return nil, err
	}

	size32, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	size := int(size32)

	discriminator, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}

	var bv *BitVector
	if discriminator == sparseSentinel {
		bv, err = readSparse(in)
	} else {
		bv, err = readDense(in, size)
	}
	if err != nil {
		return nil, err
	}

	if version == VersionLegacy {
		bv.InvertAll()
	}

	if _, _, err := in.ReadFooter(); err != nil {
		return nil, err
	}

	return bv, nil
}

func readDense(in *store.DataInput, size int) (*BitVector, error) {
	bv := &BitVector{bits: make([]uint64, wordsFor(size)), size: size}
	for i := 0; i < numBytes(size); i++ {
		b, err := in.ReadByte()
		if err != nil {
			return nil, err
		}
		setByteMask(bv, i, b)
	}
	bv.maskTrailingBits()
	bv.recount()

	return bv, nil
}

func readSparse(in *store.DataInput) (*BitVector, error) {
	size32, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	if _, err := in.ReadInt32(); err != nil { // count, recomputed below
		return nil, err
	}
	size := int(size32)

	bv := New(size)

	footerStart := int64(in.Len() - store.FooterLength)
	last := -1
	n := numBytes(size)
	for in.Position() < footerStart {
		gap64, err := in.ReadVInt64()
		if err != nil {
			return nil, err
		}
		mask, err := in.ReadByte()
		if err != nil {
			return nil, err
		}

		byteIdx := last + int(gap64) + 1
		if byteIdx < 0 || byteIdx >= n {
			return nil, fmt.Errorf("%w: d-gap byte %d outside [0,%d)", errs.ErrCorrupt, byteIdx, n)
		}
		setByteMask(bv, byteIdx, mask)
		last = byteIdx
	}

	bv.maskTrailingBits()
	bv.recount()

	return bv, nil
}
