package storedfields

import (
	"fmt"

	"github.com/gosegment/ltcore/errs"
	"github.com/gosegment/ltcore/store"
)

// Reader provides random-access lookup of documents previously written by
// Writer: given a docID, Document seeks straight to that document's fdt
// offset via the fdx index rather than scanning.
type Reader struct {
	fdt     *store.DataInput
	offsets []uint64
}

// OpenReader validates and loads the fdx index from fdxBytes, then wraps fdt
// for random-access document reads. Both inputs must be the full bytes of
// their respective streams (header through footer); OpenReader verifies
// both footers' checksums before returning.
func OpenReader(fdtBytes, fdxBytes []byte) (*Reader, error) {
	if err := store.VerifyChecksum(fdtBytes); err != nil {
		return nil, err
	}
	if err := store.VerifyChecksum(fdxBytes); err != nil {
		return nil, err
	}

	fdt := store.NewDataInput(fdtBytes)
	if _, err := fdt.ReadHeader(FdtCodecName, VersionCurrent, VersionCurrent); err != nil {
		return nil, err
	}

	idx := store.NewDataInput(fdxBytes)
	if _, err := idx.ReadHeader(FdxCodecName, VersionCurrent, VersionCurrent); err != nil {
		return nil, err
	}

	// The fdx body is just i64[numDocs]; numDocs is never written
	// explicitly, it's implied by how many 8-byte offsets fit between the
	// header and the footer.
	remaining := int64(len(fdxBytes)) - idx.Position() - store.FooterLength
	if remaining < 0 || remaining%8 != 0 {
		return nil, fmt.Errorf("%w: fdx body length %d not a multiple of 8", errs.ErrCorrupt, remaining)
	}
	numDocs := remaining / 8

	offsets := make([]uint64, numDocs)
	for i := range offsets {
		v, err := idx.ReadInt64()
		if err != nil {
			return nil, err
		}
		offsets[i] = uint64(v)
	}

	if _, _, err := idx.ReadFooter(); err != nil {
		return nil, err
	}

	return &Reader{fdt: fdt, offsets: offsets}, nil
}

// DocCount returns the number of documents indexed by this reader.
func (r *Reader) DocCount() int { return len(r.offsets) }

// Visitor is called once per field of a document visited by Document. It
// returns an error to abort the visit early (e.g. once every wanted field
// has been seen); any non-nil error is propagated back out of Document.
type Visitor func(field FieldEntry) error

// Document visits every stored field of docID, in write order, calling
// visit for each one. A selectFields set, if non-nil, restricts which
// field numbers visit is actually called for — non-selected fields are
// still parsed (their length-prefixed bytes must be skipped to find the
// next field) but never handed to the callback.
func (r *Reader) Document(docID int, selectFields map[uint32]bool, visit Visitor) error {
	if docID < 0 || docID >= len(r.offsets) {
		return fmt.Errorf("%w: docID %d outside [0,%d)", errs.ErrIndexOutOfRange, docID, len(r.offsets))
	}

	cloned := r.fdt.Clone()
	if err := cloned.Seek(int64(r.offsets[docID])); err != nil {
		return err
	}

	fieldCount, err := cloned.ReadVInt32()
	if err != nil {
		return err
	}

	for i := uint32(0); i < fieldCount; i++ {
		fieldNumber, err := cloned.ReadVInt32()
		if err != nil {
			return err
		}
		bits, err := cloned.ReadByte()
		if err != nil {
			return err
		}

		field, err := readFieldValue(cloned, fieldNumber, bits)
		if err != nil {
			return err
		}

		if selectFields != nil && !selectFields[fieldNumber] {
			continue
		}

		if err := visit(field); err != nil {
			return err
		}
	}

	return nil
}

// readFieldValue decodes one field's payload according to its `bits` byte:
// binary if IS_BINARY is set, a numeric variant if NUMERIC_MASK is
// non-zero, otherwise a length-prefixed UTF-8 string.
func readFieldValue(in *store.DataInput, fieldNumber uint32, bits byte) (FieldEntry, error) {
	if bits&bitsIsBinary != 0 {
		length, err := in.ReadVInt32()
		if err != nil {
			return FieldEntry{}, err
		}
		value, err := in.ReadBytesRef(int(length))
		if err != nil {
			return FieldEntry{}, err
		}

		return BinaryField(fieldNumber, value), nil
	}

	switch (bits & bitsNumericMask) >> bitsNumericShift {
	case numericInt32:
		v, err := in.ReadInt32()
		if err != nil {
			return FieldEntry{}, err
		}

		return Int32Field(fieldNumber, v), nil
	case numericInt64:
		v, err := in.ReadInt64()
		if err != nil {
			return FieldEntry{}, err
		}

		return Int64Field(fieldNumber, v), nil
	case numericFloat32:
		v, err := in.ReadFloat32()
		if err != nil {
			return FieldEntry{}, err
		}

		return Float32Field(fieldNumber, v), nil
	case numericFloat64:
		v, err := in.ReadFloat64()
		if err != nil {
			return FieldEntry{}, err
		}

		return Float64Field(fieldNumber, v), nil
	}

	s, err := in.ReadString()
	if err != nil {
		return FieldEntry{}, err
	}

	return StringField(fieldNumber, s), nil
}

// RawDocumentRange returns the byte range [start,end) of the fdt stream
// spanning docID through docID+count-1 inclusive, the "congruent raw copy"
// unit Merge uses to bulk-copy whole runs of untouched documents without
// decoding them. count must not extend past the reader's DocCount.
func (r *Reader) RawDocumentRange(docID, count int) (start, end int64, err error) {
	if docID < 0 || count < 1 || docID+count > len(r.offsets) {
		return 0, 0, fmt.Errorf("%w: range [%d,%d) outside [0,%d)", errs.ErrIndexOutOfRange, docID, docID+count, len(r.offsets))
	}

	start = int64(r.offsets[docID])
	if docID+count < len(r.offsets) {
		end = int64(r.offsets[docID+count])
	} else {
		end = int64(r.fdt.Len() - store.FooterLength)
	}

	return start, end, nil
}

// DocOffset returns the raw fdt byte offset recorded for docID.
func (r *Reader) DocOffset(docID int) (uint64, error) {
	if docID < 0 || docID >= len(r.offsets) {
		return 0, fmt.Errorf("%w: docID %d outside [0,%d)", errs.ErrIndexOutOfRange, docID, len(r.offsets))
	}

	return r.offsets[docID], nil
}

// fdtInput exposes the reader's fdt DataInput so Merge can build an
// io.Reader over an arbitrary byte range of it for bulk copying.
func (r *Reader) fdtInput() *store.DataInput { return r.fdt }
