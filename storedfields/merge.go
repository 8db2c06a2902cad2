package storedfields

// MergeReader pairs a segment's stored-fields Reader with its current
// liveness: nil Live means every document in the segment is live, letting
// Merge take the fast congruent bulk-copy path for the whole segment
// instead of the per-document re-encode fallback.
type MergeReader struct {
	Reader *Reader
	Live   LiveDocs
}

// LiveDocs is the minimal view Merge needs of a deletion bit vector,
// satisfied by *bitvector.BitVector without storedfields importing it
// directly (storedfields only needs to ask "is doc i live", not manage
// the vector's lifecycle).
type LiveDocs interface {
	Get(i int) bool
}

// MergeState describes one merge operation: the ordered list of source
// segments to append to writer, and an optional CheckAbort callback polled
// between merge units so a long merge can be cancelled promptly.
type MergeState struct {
	Readers     []MergeReader
	CheckAbort  func() error
}

// Merge appends every live document from every reader in state, in order,
// to writer. A segment with no deletions (Live == nil) is copied as raw
// fdt byte ranges in chunks of at most MaxRawMergeDocs, checking back in
// with CheckAbort between chunks; a segment with any deletions falls back
// to decoding and re-encoding each live document individually, since a
// contiguous raw range can no longer be guaranteed to contain only
// documents the merge wants to keep.
func Merge(writer *Writer, state MergeState) error {
	for _, mr := range state.Readers {
		var err error
		if mr.Live == nil {
			err = mergeRawRange(writer, mr.Reader, state.CheckAbort)
		} else {
			err = mergeReencode(writer, mr.Reader, mr.Live, state.CheckAbort)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func checkAbort(cb func() error) error {
	if cb == nil {
		return nil
	}

	return cb()
}

func mergeRawRange(writer *Writer, reader *Reader, abort func() error) error {
	total := reader.DocCount()
	for start := 0; start < total; {
		if err := checkAbort(abort); err != nil {
			writer.Abort()
			return err
		}

		chunk := total - start
		if chunk > MaxRawMergeDocs {
			chunk = MaxRawMergeDocs
		}

		oldStart, oldEnd, err := reader.RawDocumentRange(start, chunk)
		if err != nil {
			return err
		}

		newBase := writer.FdtOutput().Position()
		if _, err := writer.FdtOutput().CopyBytes(reader.fdtInput().Sub(oldStart, oldEnd), oldEnd-oldStart); err != nil {
			return err
		}

		for j := start; j < start+chunk; j++ {
			oldOffset, err := reader.DocOffset(j)
			if err != nil {
				return err
			}
			writer.RecordRawOffset(newBase + int64(oldOffset) - oldStart)
		}

		start += chunk
	}

	return nil
}

func mergeReencode(writer *Writer, reader *Reader, live LiveDocs, abort func() error) error {
	for i := 0; i < reader.DocCount(); i++ {
		if !live.Get(i) {
			continue
		}
		if err := checkAbort(abort); err != nil {
			writer.Abort()
			return err
		}

		var fields []FieldEntry
		collect := func(f FieldEntry) error {
			if f.Type == FieldTypeBinary {
				// BinaryValue aliases the reader's backing buffer
				// (ReadBytesRef); every other variant is already a
				// by-value copy.
				f.BinaryValue = append([]byte(nil), f.BinaryValue...)
			}
			fields = append(fields, f)
			return nil
		}
		if err := reader.Document(i, nil, collect); err != nil {
			return err
		}

		if err := writer.StartDocument(len(fields)); err != nil {
			return err
		}
		for _, f := range fields {
			if err := writer.WriteField(f); err != nil {
				return err
			}
		}
		if err := writer.FinishDocument(); err != nil {
			return err
		}
	}

	return nil
}
