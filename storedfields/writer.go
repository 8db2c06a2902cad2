package storedfields

import (
	"fmt"

	"github.com/gosegment/ltcore/errs"
	"github.com/gosegment/ltcore/packed"
	"github.com/gosegment/ltcore/store"
)

// Writer sequentially appends documents to an fdt stream, one at a time,
// and records each document's starting file offset for the fdx index it
// produces on Finish. A Writer is owned by a single goroutine for its
// lifetime: spec.md's single-writer discipline applies to every codec
// built on store.DataOutput.
type Writer struct {
	fdt *store.DataOutput

	offsets     *packed.Growable
	docCount    int
	fieldsWritten int
	fieldsWanted  int
	started       bool
	aborted       bool
}

// NewWriter creates a Writer that appends to fdt, estimating docCount
// documents up front (used only to size the offset index's initial
// capacity; it grows past this if exceeded).
func NewWriter(fdt *store.DataOutput, estimatedDocCount int) (*Writer, error) {
	if err := fdt.WriteHeader(FdtCodecName, VersionCurrent); err != nil {
		return nil, err
	}

	if estimatedDocCount < 1 {
		estimatedDocCount = 1
	}

	return &Writer{
		fdt:     fdt,
		offsets: packed.NewGrowable(estimatedDocCount, 8),
	}, nil
}

// StartDocument begins a new document with exactly fieldCount fields,
// recording its starting fdt offset in the index and writing the field
// count prefix. Every started document must be completed with exactly
// fieldCount calls to WriteField before the next StartDocument or Finish.
func (w *Writer) StartDocument(fieldCount int) error {
	if w.started {
		return fmt.Errorf("%w: StartDocument called before previous document finished", errs.ErrCorrupt)
	}
	if fieldCount < 0 {
		return fmt.Errorf("%w: negative fieldCount %d", errs.ErrIndexOutOfRange, fieldCount)
	}

	if w.docCount >= w.offsets.Size() {
		w.growIndex()
	}
	w.offsets.Set(w.docCount, uint64(w.fdt.Position()))

	if err := w.fdt.WriteVInt32(uint32(fieldCount)); err != nil {
		return err
	}

	w.started = true
	w.fieldsWanted = fieldCount
	w.fieldsWritten = 0

	return nil
}

// growIndex doubles the offset index's capacity when StartDocument is
// called more times than the constructor's estimate allowed for.
func (w *Writer) growIndex() {
	next := packed.NewGrowable(w.offsets.Size()*2, w.offsets.BitsPerValue())
	for i := 0; i < w.docCount; i++ {
		next.Set(i, w.offsets.Get(i))
	}
	w.offsets = next
}

// WriteField appends one field value to the document currently being
// written: vint32 fieldNumber, a `bits` byte selecting the payload's
// tagged-union variant, then the variant's own encoding (length-prefixed
// UTF-8 for a string, length-prefixed bytes for binary, fixed-width i32/i64
// for a numeric value).
func (w *Writer) WriteField(field FieldEntry) error {
	if !w.started {
		return fmt.Errorf("%w: WriteField called outside StartDocument/FinishDocument", errs.ErrCorrupt)
	}
	if w.fieldsWritten >= w.fieldsWanted {
		return fmt.Errorf("%w: wrote more than the declared %d fields", errs.ErrCorrupt, w.fieldsWanted)
	}

	if err := w.fdt.WriteVInt32(field.FieldNumber); err != nil {
		return err
	}
	if err := w.fdt.WriteByte(bitsFor(field.Type)); err != nil {
		return err
	}

	switch field.Type {
	case FieldTypeBinary:
		if err := w.fdt.WriteVInt32(uint32(len(field.BinaryValue))); err != nil {
			return err
		}
		if err := w.fdt.WriteBytes(field.BinaryValue); err != nil {
			return err
		}
	case FieldTypeInt32:
		if err := w.fdt.WriteInt32(int32(field.IntValue)); err != nil {
			return err
		}
	case FieldTypeInt64:
		if err := w.fdt.WriteInt64(field.IntValue); err != nil {
			return err
		}
	case FieldTypeFloat32:
		if err := w.fdt.WriteFloat32(float32(field.FloatValue)); err != nil {
			return err
		}
	case FieldTypeFloat64:
		if err := w.fdt.WriteFloat64(field.FloatValue); err != nil {
			return err
		}
	default:
		if err := w.fdt.WriteString(field.StringValue); err != nil {
			return err
		}
	}

	w.fieldsWritten++

	return nil
}

// FinishDocument closes out the document started by StartDocument,
// verifying that exactly the declared number of fields were written —
// spec.md's resolution of the finish()-length-mismatch Open Question
// treats any discrepancy as a fatal corruption signal rather than a
// silent truncation/pad.
func (w *Writer) FinishDocument() error {
	if !w.started {
		return fmt.Errorf("%w: FinishDocument called without a started document", errs.ErrCorrupt)
	}
	if w.fieldsWritten != w.fieldsWanted {
		return fmt.Errorf("%w: declared %d fields, wrote %d", errs.ErrCorrupt, w.fieldsWanted, w.fieldsWritten)
	}

	w.started = false
	w.docCount++

	return nil
}

// Abort marks the writer unusable: a later Finish returns errs.ErrAborted
// and writes no footer or index. StartDocument, WriteField, and
// FinishDocument do not check the mark and keep writing to the fdt
// stream. Used when a merge's CheckAbort callback requests early
// termination.
func (w *Writer) Abort() {
	w.aborted = true
}

// DocCount returns the number of fully-finished documents written so far.
func (w *Writer) DocCount() int { return w.docCount }

// Offsets exposes the in-progress fdx offsets, primarily so Merge can
// append bulk-copied ranges without going through StartDocument/WriteField.
func (w *Writer) Offsets() *packed.Growable { return w.offsets }

// RecordRawOffset registers the fdt offset for a document appended by a
// bulk raw-range copy (see Merge), bypassing the StartDocument/WriteField
// field-count bookkeeping since the bytes were copied verbatim from an
// already-valid source document.
func (w *Writer) RecordRawOffset(fdtOffset int64) {
	if w.docCount >= w.offsets.Size() {
		w.growIndex()
	}
	w.offsets.Set(w.docCount, uint64(fdtOffset))
	w.docCount++
}

// FdtOutput exposes the underlying fdt DataOutput, for Merge's bulk
// CopyBytes path.
func (w *Writer) FdtOutput() *store.DataOutput { return w.fdt }

// Finish closes the fdt stream with its footer and writes the fdx index to
// idxOut. After Finish, the Writer must not be used again.
func (w *Writer) Finish(idxOut *store.DataOutput) error {
	if w.aborted {
		return errs.ErrAborted
	}
	if w.started {
		return fmt.Errorf("%w: Finish called with an unfinished document", errs.ErrCorrupt)
	}

	if err := w.fdt.WriteFooter(AlgoIDFdt); err != nil {
		return err
	}

	if err := idxOut.WriteHeader(FdxCodecName, VersionCurrent); err != nil {
		return err
	}
	for i := 0; i < w.docCount; i++ {
		if err := idxOut.WriteInt64(int64(w.offsets.Get(i))); err != nil {
			return err
		}
	}

	return idxOut.WriteFooter(AlgoIDFdx)
}
