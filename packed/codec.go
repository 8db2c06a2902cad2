package packed

import (
	"fmt"

	"github.com/gosegment/ltcore/errs"
	"github.com/gosegment/ltcore/store"
)

// CodecName identifies the on-disk format written by WriteTo/ReadFrom.
const CodecName = "PackedInts"

// VersionCurrent is the only version this package currently writes.
const VersionCurrent = 1

// AlgoID is the footer algorithm identifier for packed-integer streams.
const AlgoID = 1

// FormatPacked is the only on-disk body layout this package writes: values
// bit-packed contiguously across 64-bit words with no inter-value padding,
// Packed64's in-memory layout written out word for word.
const FormatPacked = 0

// PackedIntsVersionCurrent is the packed-ints body format's own version
// number, carried alongside (not instead of) the shared codec header's
// version so a future alternate body format (e.g. one laid out per-block
// instead of per-word) can be introduced without bumping the codec
// version every reader already checks.
const PackedIntsVersionCurrent = 1

// WriteTo serializes m to out: a codec header, valueCount, bitsPerValue,
// formatId, packedIntsVersion, the raw packed words, and a checksummed
// footer. Non-Packed64 layouts (Direct8/16/32/64, Paged) are first copied
// value-by-value into a Packed64 of matching width so the on-disk layout
// is uniform regardless of which in-memory representation produced it.
func WriteTo(out *store.DataOutput, m Mutable) error {
	if err := out.WriteHeader(CodecName, VersionCurrent); err != nil {
		return err
	}
	if err := out.WriteVInt32(uint32(m.Size())); err != nil {
		return err
	}
	if err := out.WriteVInt32(uint32(m.BitsPerValue())); err != nil {
		return err
	}
	if err := out.WriteVInt32(FormatPacked); err != nil {
		return err
	}
	if err := out.WriteVInt32(PackedIntsVersionCurrent); err != nil {
		return err
	}

	p, ok := m.(*Packed64)
	if !ok {
		p = NewPacked64(m.Size(), m.BitsPerValue())
		for i := 0; i < m.Size(); i++ {
			p.Set(i, m.Get(i))
		}
	}

	for _, w := range p.Blocks() {
		if err := out.WriteUint64(w); err != nil {
			return err
		}
	}

	return out.WriteFooter(AlgoID)
}

// ReadFrom deserializes a Packed64 array previously written by WriteTo.
func ReadFrom(in *store.DataInput) (*Packed64, error) {
	if _, err := in.ReadHeader(CodecName, VersionCurrent, VersionCurrent); err != nil {
		return nil, err
	}

	valueCount, err := in.ReadVInt32()
	if err != nil {
		return nil, err
	}
	bitsPerValue, err := in.ReadVInt32()
	if err != nil {
		return nil, err
	}
	if bitsPerValue == 0 || bitsPerValue > MaxBitsPerValue {
		return nil, fmt.Errorf("%w: bitsPerValue %d", errs.ErrCorrupt, bitsPerValue)
	}

	formatID, err := in.ReadVInt32()
	if err != nil {
		return nil, err
	}
	if formatID != FormatPacked {
		return nil, fmt.Errorf("%w: unknown packed-ints formatId %d", errs.ErrUnsupportedVersion, formatID)
	}
	if _, err := in.ReadVInt32(); err != nil { // packedIntsVersion, informational
		return nil, err
	}

	p := NewPacked64(int(valueCount), int(bitsPerValue))
	for i := range p.blocks {
		w, err := in.ReadUint64()
		if err != nil {
			return nil, err
		}
		p.blocks[i] = w
	}

	if _, _, err := in.ReadFooter(); err != nil {
		return nil, err
	}

	return p, nil
}
