// Package checksum provides the stable 64-bit rolling checksum used to
// frame every artifact ltcore persists: stored-fields streams, bit-vector
// files, and packed-integer streams are all followed by a footer carrying
// one of these checksums over everything written before it.
package checksum

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Digest accumulates a 64-bit checksum over bytes written to it via Write,
// without buffering the input. It implements io.Writer so it can be wrapped
// around an output stream transparently.
type Digest struct {
	h *xxhash.Digest
}

// New creates an empty Digest.
func New() *Digest {
	return &Digest{h: xxhash.New()}
}

// Write feeds data into the running checksum. It never returns an error.
func (d *Digest) Write(data []byte) (int, error) {
	return d.h.Write(data)
}

// Sum64 returns the checksum of all bytes written so far.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}

// Reset clears the digest back to its initial state so it can be reused.
func (d *Digest) Reset() {
	d.h.Reset()
}

// Of returns the checksum of a single byte slice. Convenience wrapper for
// callers that already have the whole payload in memory (e.g. verifying a
// footer against a fully-read segment file).
func Of(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Writer wraps an io.Writer and transparently tees every write into a
// running Digest, the "buffered-update wrapper" spec.md asks for: callers
// write through it exactly as they would the underlying stream and read off
// the accumulated checksum at the end via Sum64.
type Writer struct {
	w      io.Writer
	digest *Digest
	count  int64
}

// NewWriter wraps w so that every byte written through the returned Writer
// is both forwarded to w and folded into the running checksum.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, digest: New()}
}

// Write forwards p to the underlying writer and updates the running
// checksum with exactly the bytes that were successfully written.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if n > 0 {
		_, _ = w.digest.Write(p[:n])
		w.count += int64(n)
	}

	return n, err
}

// Sum64 returns the checksum of everything written through w so far.
func (w *Writer) Sum64() uint64 {
	return w.digest.Sum64()
}

// Count returns the number of bytes written through w so far. Codecs use
// this to record absolute offsets as they stream out a segment file.
func (w *Writer) Count() int64 {
	return w.count
}
