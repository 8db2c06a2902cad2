// Package storedfields implements the segment-level stored-fields codec:
// an fdt (field data) stream holding each live document's field values
// back to back, and an fdx (field index) array mapping document id to its
// byte offset into the fdt stream. Both are framed with the shared codec
// header/footer so a reader can validate them before trusting a single
// byte of content.
package storedfields

// FdtCodecName identifies the stored-fields data stream.
const FdtCodecName = "Lucene40StoredFieldsData"

// FdxCodecName identifies the stored-fields index stream.
const FdxCodecName = "Lucene40StoredFieldsIndex"

// VersionCurrent is the only version this package currently writes.
const VersionCurrent = 0

// AlgoIDFdt / AlgoIDFdx are the footer algorithm identifiers for the two
// streams; kept distinct so a misrouted fdx read against an fdt stream (or
// vice versa) fails loudly even if both pass header validation.
const (
	AlgoIDFdt int32 = 10
	AlgoIDFdx int32 = 11
)

// MaxRawMergeDocs bounds how many consecutive, fully-live, congruent
// documents Merge will bulk-copy as one raw byte range before checking
// back in with the abort callback. Lucene's stored-fields merger uses the
// same bound (4192) to keep an abort request from being starved by one
// enormous contiguous copy.
const MaxRawMergeDocs = 4192

// FieldType discriminates the tagged-union payload a FieldEntry carries.
type FieldType int

const (
	// FieldTypeString holds a length-prefixed UTF-8 string in StringValue.
	FieldTypeString FieldType = iota
	// FieldTypeBinary holds a length-prefixed opaque byte slice in
	// BinaryValue.
	FieldTypeBinary
	// FieldTypeInt32 holds a 4-byte two's-complement integer in IntValue.
	FieldTypeInt32
	// FieldTypeInt64 holds an 8-byte two's-complement integer in IntValue.
	FieldTypeInt64
	// FieldTypeFloat32 holds an IEEE-754 single-precision float in
	// FloatValue.
	FieldTypeFloat32
	// FieldTypeFloat64 holds an IEEE-754 double-precision float in
	// FloatValue.
	FieldTypeFloat64
)

// The on-disk `bits` byte tags each field record's payload shape: bit 0 is
// reserved and must be zero, bit 1 marks a binary payload, and bits 3..5
// carry one of the four NUMERIC_MASK codes when the field is numeric.
// Anything left over (bits all zero) is a length-prefixed UTF-8 string.
const (
	bitsIsBinary     = 1 << 1
	bitsNumericShift = 3
	bitsNumericMask  = 0x7 << bitsNumericShift

	numericInt32   = 1
	numericInt64   = 2
	numericFloat32 = 3
	numericFloat64 = 4
)

// FieldEntry is one field value as stored in (or read from) the fdt
// stream: a field number plus a tagged-union payload. Exactly one of
// StringValue, BinaryValue, IntValue, or FloatValue is meaningful,
// selected by Type.
type FieldEntry struct {
	FieldNumber uint32
	Type        FieldType

	StringValue string
	BinaryValue []byte
	IntValue    int64
	FloatValue  float64
}

// StringField builds a string-typed FieldEntry.
func StringField(fieldNumber uint32, v string) FieldEntry {
	return FieldEntry{FieldNumber: fieldNumber, Type: FieldTypeString, StringValue: v}
}

// BinaryField builds a binary-typed FieldEntry.
func BinaryField(fieldNumber uint32, v []byte) FieldEntry {
	return FieldEntry{FieldNumber: fieldNumber, Type: FieldTypeBinary, BinaryValue: v}
}

// Int32Field builds an int32-typed FieldEntry.
func Int32Field(fieldNumber uint32, v int32) FieldEntry {
	return FieldEntry{FieldNumber: fieldNumber, Type: FieldTypeInt32, IntValue: int64(v)}
}

// Int64Field builds an int64-typed FieldEntry.
func Int64Field(fieldNumber uint32, v int64) FieldEntry {
	return FieldEntry{FieldNumber: fieldNumber, Type: FieldTypeInt64, IntValue: v}
}

// Float32Field builds a float32-typed FieldEntry.
func Float32Field(fieldNumber uint32, v float32) FieldEntry {
	return FieldEntry{FieldNumber: fieldNumber, Type: FieldTypeFloat32, FloatValue: float64(v)}
}

// Float64Field builds a float64-typed FieldEntry.
func Float64Field(fieldNumber uint32, v float64) FieldEntry {
	return FieldEntry{FieldNumber: fieldNumber, Type: FieldTypeFloat64, FloatValue: v}
}

// bitsFor returns the on-disk `bits` byte for t.
func bitsFor(t FieldType) byte {
	switch t {
	case FieldTypeBinary:
		return bitsIsBinary
	case FieldTypeInt32:
		return numericInt32 << bitsNumericShift
	case FieldTypeInt64:
		return numericInt64 << bitsNumericShift
	case FieldTypeFloat32:
		return numericFloat32 << bitsNumericShift
	case FieldTypeFloat64:
		return numericFloat64 << bitsNumericShift
	default:
		return 0
	}
}
