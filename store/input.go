package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gosegment/ltcore/endian"
	"github.com/gosegment/ltcore/errs"
)

// DataInput is a random-access reader over an in-memory byte slice, the
// read side of every ltcore codec. Segment files are small enough (or
// mmap-backed by the embedding application) that ltcore always hands
// readers the whole artifact as a []byte rather than an io.ReaderAt; Clone
// gives each caller an independent cursor over the same backing bytes, the
// "clone shares the file handle but has its own cursor" pattern spec.md §5
// asks for.
type DataInput struct {
	buf    []byte
	pos    int
	engine endian.EndianEngine
}

// NewDataInput wraps buf for little-endian random-access reads starting at
// offset 0.
func NewDataInput(buf []byte) *DataInput {
	return &DataInput{buf: buf, engine: endian.GetLittleEndianEngine()}
}

// Len returns the total number of bytes available.
func (in *DataInput) Len() int { return len(in.buf) }

// Position returns the current read cursor.
func (in *DataInput) Position() int64 { return int64(in.pos) }

// Seek moves the read cursor to an absolute offset.
func (in *DataInput) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(in.buf)) {
		return fmt.Errorf("%w: seek to %d (len %d)", errs.ErrIndexOutOfRange, pos, len(in.buf))
	}
	in.pos = int(pos)

	return nil
}

// Clone returns an independent cursor over the same backing bytes,
// positioned at the start.
func (in *DataInput) Clone() *DataInput {
	return &DataInput{buf: in.buf, engine: in.engine}
}

func (in *DataInput) need(n int) error {
	if in.pos+n > len(in.buf) {
		return fmt.Errorf("%w: need %d bytes at %d, have %d", errs.ErrUnexpectedEOF, n, in.pos, len(in.buf))
	}

	return nil
}

// ReadByte reads a single byte.
func (in *DataInput) ReadByte() (byte, error) {
	if err := in.need(1); err != nil {
		return 0, err
	}
	b := in.buf[in.pos]
	in.pos++

	return b, nil
}

// ReadBytes reads and returns a copy of the next n bytes.
func (in *DataInput) ReadBytes(n int) ([]byte, error) {
	if err := in.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, in.buf[in.pos:in.pos+n])
	in.pos += n

	return out, nil
}

// ReadBytesRef reads the next n bytes without copying, returning a slice
// that aliases the backing buffer. Callers must not retain it past the next
// mutation of the underlying segment bytes.
func (in *DataInput) ReadBytesRef(n int) ([]byte, error) {
	if err := in.need(n); err != nil {
		return nil, err
	}
	out := in.buf[in.pos : in.pos+n]
	in.pos += n

	return out, nil
}

// ReadUint16 reads a fixed-width 16-bit integer.
func (in *DataInput) ReadUint16() (uint16, error) {
	if err := in.need(2); err != nil {
		return 0, err
	}
	v := in.engine.Uint16(in.buf[in.pos : in.pos+2])
	in.pos += 2

	return v, nil
}

// ReadUint32 reads a fixed-width 32-bit integer.
func (in *DataInput) ReadUint32() (uint32, error) {
	if err := in.need(4); err != nil {
		return 0, err
	}
	v := in.engine.Uint32(in.buf[in.pos : in.pos+4])
	in.pos += 4

	return v, nil
}

// ReadUint64 reads a fixed-width 64-bit integer.
func (in *DataInput) ReadUint64() (uint64, error) {
	if err := in.need(8); err != nil {
		return 0, err
	}
	v := in.engine.Uint64(in.buf[in.pos : in.pos+8])
	in.pos += 8

	return v, nil
}

// ReadInt32 reads a fixed-width signed 32-bit integer.
func (in *DataInput) ReadInt32() (int32, error) {
	v, err := in.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a fixed-width signed 64-bit integer.
func (in *DataInput) ReadInt64() (int64, error) {
	v, err := in.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads the raw IEEE-754 bits of a float32.
func (in *DataInput) ReadFloat32() (float32, error) {
	v, err := in.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads the raw IEEE-754 bits of a float64.
func (in *DataInput) ReadFloat64() (float64, error) {
	v, err := in.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadVInt32 reads an unsigned base-128 varint as a uint32.
func (in *DataInput) ReadVInt32() (uint32, error) {
	v, err := in.ReadVInt64()
	return uint32(v), err
}

// ReadVInt64 reads an unsigned base-128 varint.
func (in *DataInput) ReadVInt64() (uint64, error) {
	v, n := binary.Uvarint(in.buf[in.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: malformed varint at %d", errs.ErrUnexpectedEOF, in.pos)
	}
	in.pos += n

	return v, nil
}

// ReadString reads a vint32 byte-length followed by that many UTF-8 bytes.
func (in *DataInput) ReadString() (string, error) {
	n, err := in.ReadVInt32()
	if err != nil {
		return "", err
	}
	b, err := in.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Sub returns an io.Reader over buf[start:end], used by callers that need
// to stream a byte range verbatim into a DataOutput (a merge's bulk
// raw-range copy) without decoding it.
func (in *DataInput) Sub(start, end int64) io.Reader {
	return bytes.NewReader(in.buf[start:end])
}

// ReadHeader validates and consumes the shared codec header, checking the
// magic number, the codec name, and that the on-disk version falls within
// [minVersion, maxVersion].
func (in *DataInput) ReadHeader(codecName string, minVersion, maxVersion uint32) (version uint32, err error) {
	magic, err := in.ReadUint32()
	if err != nil {
		return 0, err
	}
	if magic != CodecHeaderMagic {
		return 0, fmt.Errorf("%w: bad header magic %x", errs.ErrCorrupt, magic)
	}

	version, err = in.ReadVInt32()
	if err != nil {
		return 0, err
	}

	name, err := in.ReadString()
	if err != nil {
		return 0, err
	}
	if name != codecName {
		return 0, fmt.Errorf("%w: expected codec %q, got %q", errs.ErrUnknownCodec, codecName, name)
	}
	if version < minVersion || version > maxVersion {
		return 0, fmt.Errorf("%w: codec %q version %d outside [%d,%d]", errs.ErrUnsupportedVersion, codecName, version, minVersion, maxVersion)
	}

	return version, nil
}

// ReadFooter validates and consumes the shared codec footer at the current
// position (which must be exactly len(buf)-FooterLength), returning the
// stored algoID and checksum. It does not itself verify the checksum
// against the preceding bytes; callers with the whole artifact in hand
// should use VerifyChecksum for that.
func (in *DataInput) ReadFooter() (algoID int32, storedChecksum uint64, err error) {
	magic, err := in.ReadUint32()
	if err != nil {
		return 0, 0, err
	}
	if magic != CodecFooterMagic {
		return 0, 0, fmt.Errorf("%w: bad footer magic %x", errs.ErrCorrupt, magic)
	}

	algoID, err = in.ReadInt32()
	if err != nil {
		return 0, 0, err
	}

	storedChecksum, err = in.ReadUint64()
	if err != nil {
		return 0, 0, err
	}

	return algoID, storedChecksum, nil
}
