// Package ltcore provides a space-efficient, segment-oriented storage and
// query core modeled on a Lucene-shaped inverted-index engine: a
// stored-fields codec for per-document field values, a deletion bit
// vector for tombstoning documents without rewriting a segment, a
// packed-integer layer every offset/id array is built on, a finite-state
// automaton core for compiling wildcard/regex/range query terms, and a
// tolerant tokenizer for a query-DSL string.
//
// # Core Features
//
//   - Segment-level stored-fields read/write with bulk congruent-segment
//     merge (storedfields)
//   - Deletion bit vectors with cached population counts and a sparse
//     d-gap encoding for lightly-deleted segments (bitvector)
//   - Fixed-bit-width packed-integer arrays, 1 to 64 bits, with growable
//     and paged variants (packed)
//   - NFA/DFA automaton construction, determinization, and minimization
//     (automaton)
//   - A never-fails query-DSL lexer that degrades to recorded notes
//     instead of parse errors (tokenizer)
//   - Shared codec header/footer framing and a stable 64-bit checksum
//     over every persisted artifact (store, checksum)
//
// # Basic Usage
//
// Writing and reading a segment's stored fields:
//
//	import "github.com/gosegment/ltcore"
//
//	var fdt, fdx bytes.Buffer
//	w, _ := ltcore.NewStoredFieldsWriter(&fdt, 100)
//	w.StartDocument(1)
//	w.WriteField(storedfields.StringField(0, "hello"))
//	w.FinishDocument()
//	w.Finish(store.NewDataOutput(&fdx))
//
//	r, _ := ltcore.OpenStoredFields(fdt.Bytes(), fdx.Bytes())
//	r.Document(0, nil, func(f storedfields.FieldEntry) error {
//	    fmt.Println(f.FieldNumber, f.StringValue)
//	    return nil
//	})
//
// # Package Structure
//
// This file provides convenient top-level wrappers around the storedfields,
// bitvector, and packed packages. The other packages (store, checksum,
// automaton, tokenizer) have no wrappers here; use them directly, as you
// would the wrapped ones for fine-grained control.
package ltcore

import (
	"io"

	"github.com/gosegment/ltcore/bitvector"
	"github.com/gosegment/ltcore/packed"
	"github.com/gosegment/ltcore/store"
	"github.com/gosegment/ltcore/storedfields"
)

// NewStoredFieldsWriter creates a stored-fields Writer that appends to
// fdt, with estimatedDocCount used only to size its initial offset index.
func NewStoredFieldsWriter(fdt io.Writer, estimatedDocCount int) (*storedfields.Writer, error) {
	return storedfields.NewWriter(store.NewDataOutput(fdt), estimatedDocCount)
}

// OpenStoredFields validates and opens a stored-fields Reader over the raw
// bytes of a previously written fdt/fdx pair.
func OpenStoredFields(fdtBytes, fdxBytes []byte) (*storedfields.Reader, error) {
	return storedfields.OpenReader(fdtBytes, fdxBytes)
}

// NewLiveDocs creates a deletion bit vector for a segment of the given
// size, with every document initially live.
func NewLiveDocs(size int) *bitvector.BitVector {
	return bitvector.New(size)
}

// WriteLiveDocs serializes bv to w in the dense or sparse on-disk layout,
// chosen as bitvector.WriteTo chooses it.
func WriteLiveDocs(w io.Writer, bv *bitvector.BitVector) error {
	return bitvector.WriteTo(store.NewDataOutput(w), bv)
}

// ReadLiveDocs deserializes a deletion bit vector previously written by
// WriteLiveDocs.
func ReadLiveDocs(data []byte) (*bitvector.BitVector, error) {
	return bitvector.ReadFrom(store.NewDataInput(data))
}

// NewPackedInts creates a fixed-bit-width integer array of valueCount
// values, each bitsPerValue bits wide.
func NewPackedInts(valueCount, bitsPerValue int) (packed.Mutable, error) {
	return packed.New(valueCount, bitsPerValue)
}
