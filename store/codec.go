// Package store provides the DataOutput/DataInput primitives every ltcore
// codec is layered on: sequential writes to an io.Writer with a running
// checksum, random-access reads over an in-memory byte slice, and the
// shared codec header/footer framing described in spec.md §6.
package store

import (
	"fmt"

	"github.com/gosegment/ltcore/checksum"
	"github.com/gosegment/ltcore/errs"
)

// CodecHeaderMagic opens every persisted artifact's header.
const CodecHeaderMagic uint32 = 0x3FD76C17

// CodecFooterMagic opens every persisted artifact's footer.
const CodecFooterMagic uint32 = 0xC02893E8

// FooterLength is the fixed size in bytes of a codec footer: magic(4) +
// algoID(4) + checksum(8).
const FooterLength = 4 + 4 + 8

// VerifyChecksum recomputes the checksum of buf[:len(buf)-8] (everything
// preceding the final stored checksum field) and compares it against the
// uint64 stored in the last 8 bytes of buf, little-endian. Callers hand it
// the full artifact bytes after reading the footer with DataInput.ReadFooter
// to confirm the file wasn't truncated or corrupted in transit.
func VerifyChecksum(buf []byte) error {
	if len(buf) < 8 {
		return fmt.Errorf("%w: artifact too short for a checksum footer", errs.ErrCorrupt)
	}

	body := buf[:len(buf)-8]
	tail := NewDataInput(buf[len(buf)-8:])

	stored, err := tail.ReadUint64()
	if err != nil {
		return err
	}

	if got := checksum.Of(body); got != stored {
		return fmt.Errorf("%w: checksum mismatch: stored %x, computed %x", errs.ErrCorrupt, stored, got)
	}

	return nil
}
