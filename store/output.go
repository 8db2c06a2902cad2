package store

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gosegment/ltcore/checksum"
	"github.com/gosegment/ltcore/endian"
)

// DataOutput is a sequential byte sink with a running checksum, the write
// side of every ltcore codec. It wraps any io.Writer — a file, a
// bytes.Buffer, or an in-memory segment — and tracks the absolute byte
// offset so callers can record fdx-style offsets as they write.
//
// A DataOutput is owned by a single writer goroutine for its lifetime, the
// same single-writer discipline spec.md §5 requires of stored-fields
// writers.
type DataOutput struct {
	cw     *checksum.Writer
	engine endian.EndianEngine
	scratch [8]byte
}

// NewDataOutput wraps w for sequential, checksummed writes using
// little-endian byte order.
func NewDataOutput(w io.Writer) *DataOutput {
	return &DataOutput{cw: checksum.NewWriter(w), engine: endian.GetLittleEndianEngine()}
}

// Position returns the number of bytes written so far.
func (o *DataOutput) Position() int64 { return o.cw.Count() }

// WriteByte writes a single byte.
func (o *DataOutput) WriteByte(b byte) error {
	o.scratch[0] = b
	_, err := o.cw.Write(o.scratch[:1])

	return err
}

// WriteBytes writes p verbatim.
func (o *DataOutput) WriteBytes(p []byte) error {
	_, err := o.cw.Write(p)
	return err
}

// WriteUint16 writes a fixed-width 16-bit integer.
func (o *DataOutput) WriteUint16(v uint16) error {
	o.engine.PutUint16(o.scratch[:2], v)
	_, err := o.cw.Write(o.scratch[:2])

	return err
}

// WriteUint32 writes a fixed-width 32-bit integer.
func (o *DataOutput) WriteUint32(v uint32) error {
	o.engine.PutUint32(o.scratch[:4], v)
	_, err := o.cw.Write(o.scratch[:4])

	return err
}

// WriteUint64 writes a fixed-width 64-bit integer.
func (o *DataOutput) WriteUint64(v uint64) error {
	o.engine.PutUint64(o.scratch[:8], v)
	_, err := o.cw.Write(o.scratch[:8])

	return err
}

// WriteInt32 writes a fixed-width signed 32-bit integer.
func (o *DataOutput) WriteInt32(v int32) error { return o.WriteUint32(uint32(v)) }

// WriteInt64 writes a fixed-width signed 64-bit integer.
func (o *DataOutput) WriteInt64(v int64) error { return o.WriteUint64(uint64(v)) }

// WriteFloat32 writes the raw IEEE-754 bits of v.
func (o *DataOutput) WriteFloat32(v float32) error { return o.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes the raw IEEE-754 bits of v.
func (o *DataOutput) WriteFloat64(v float64) error { return o.WriteUint64(math.Float64bits(v)) }

// WriteVInt32 writes v as an unsigned base-128 varint. Callers only ever
// pass non-negative values (lengths, counts, field numbers); spec.md's vint
// encodings carry no sign bit.
func (o *DataOutput) WriteVInt32(v uint32) error {
	n := binary.PutUvarint(o.scratch[:], uint64(v))
	_, err := o.cw.Write(o.scratch[:n])

	return err
}

// WriteVInt64 writes v as an unsigned base-128 varint.
func (o *DataOutput) WriteVInt64(v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := o.cw.Write(buf[:n])

	return err
}

// WriteString writes s as a vint32 byte-length followed by its UTF-8 bytes.
func (o *DataOutput) WriteString(s string) error {
	if err := o.WriteVInt32(uint32(len(s))); err != nil {
		return err
	}

	return o.WriteBytes([]byte(s))
}

// CopyBytes copies n bytes read from r directly into the output stream,
// without going through a typed decode/encode round trip. storedfields uses
// this for the bulk raw-range merge of congruent segments.
func (o *DataOutput) CopyBytes(r io.Reader, n int64) (int64, error) {
	return io.CopyN(o.cw, r, n)
}

// WriteHeader writes the shared codec header: magic, version, codecName.
func (o *DataOutput) WriteHeader(codecName string, version uint32) error {
	if err := o.WriteUint32(CodecHeaderMagic); err != nil {
		return err
	}
	if err := o.WriteVInt32(version); err != nil {
		return err
	}

	return o.WriteString(codecName)
}

// WriteFooter writes the shared codec footer: magic, algoID, and the
// checksum of every byte written to this DataOutput so far (including the
// footer's own magic and algoID fields).
func (o *DataOutput) WriteFooter(algoID int32) error {
	if err := o.WriteUint32(CodecFooterMagic); err != nil {
		return err
	}
	if err := o.WriteInt32(algoID); err != nil {
		return err
	}

	return o.WriteUint64(o.cw.Sum64())
}
