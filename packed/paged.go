package packed

import (
	"fmt"

	"github.com/gosegment/ltcore/errs"
)

// DefaultPageSize is the number of values held by one Paged page.
const DefaultPageSize = 1 << 16 // 65536

// Paged is a fixed-bit-width array split across multiple fixed-size pages,
// each an independent Mutable. This avoids the single huge contiguous
// allocation a Direct/Packed64 array of a segment-sized value count would
// require, and lets a merge append whole pages from a source segment
// without touching pages that didn't change.
type Paged struct {
	pages        []Mutable
	pageSize     int
	valueCount   int
	bitsPerValue int
}

// NewPaged creates a Paged array of valueCount values, each bitsPerValue
// bits wide, split into pages of pageSize values (the last page may be
// shorter).
func NewPaged(valueCount, bitsPerValue, pageSize int) (*Paged, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	numPages := (valueCount + pageSize - 1) / pageSize
	if numPages == 0 {
		numPages = 1
	}

	p := &Paged{
		pages:        make([]Mutable, numPages),
		pageSize:     pageSize,
		valueCount:   valueCount,
		bitsPerValue: bitsPerValue,
	}

	for i := range p.pages {
		length := pageSize
		if i == numPages-1 {
			length = valueCount - i*pageSize
			if length <= 0 {
				length = pageSize
			}
		}

		m, err := New(length, bitsPerValue)
		if err != nil {
			return nil, err
		}
		p.pages[i] = m
	}

	return p, nil
}

func (p *Paged) Size() int         { return p.valueCount }
func (p *Paged) BitsPerValue() int { return p.bitsPerValue }

func (p *Paged) locate(i int) (page, offset int) {
	return i / p.pageSize, i % p.pageSize
}

// Get returns the value at index i.
func (p *Paged) Get(i int) uint64 {
	checkIndex(i, p.valueCount)
	page, offset := p.locate(i)

	return p.pages[page].Get(offset)
}

// Set stores v at index i.
func (p *Paged) Set(i int, v uint64) {
	checkIndex(i, p.valueCount)
	page, offset := p.locate(i)
	p.pages[page].Set(offset, v)
}

// Fill sets every value in [from, to) to v.
func (p *Paged) Fill(from, to int, v uint64) {
	for i := from; i < to; i++ {
		p.Set(i, v)
	}
}

// Clear resets every value to 0.
func (p *Paged) Clear() {
	for _, page := range p.pages {
		page.Clear()
	}
}

// PageCount returns the number of pages backing this array.
func (p *Paged) PageCount() int { return len(p.pages) }

// Page returns the Mutable backing the given page index, so a merge can
// append a whole source page verbatim when its bit width already matches.
func (p *Paged) Page(i int) (Mutable, error) {
	if i < 0 || i >= len(p.pages) {
		return nil, fmt.Errorf("%w: page %d outside [0,%d)", errs.ErrIndexOutOfRange, i, len(p.pages))
	}

	return p.pages[i], nil
}

// BulkGet copies min(len(out), Size()-i) values starting at i into out. A
// request spanning a page boundary is served by the generic per-value
// fallback; one entirely within a page is forwarded to that page's own
// BulkGet.
func (p *Paged) BulkGet(i int, out []uint64) int {
	checkIndex(i, p.valueCount)
	page, offset := p.locate(i)
	if offset+len(out) <= p.pageSize {
		return p.pages[page].BulkGet(offset, out)
	}

	return bulkGet(p, i, out)
}

// BulkSet copies min(len(in), Size()-i) values from in starting at i,
// forwarding to the owning page's BulkSet when the range doesn't cross a
// page boundary.
func (p *Paged) BulkSet(i int, in []uint64) int {
	checkIndex(i, p.valueCount)
	page, offset := p.locate(i)
	if offset+len(in) <= p.pageSize {
		return p.pages[page].BulkSet(offset, in)
	}

	return bulkSet(p, i, in)
}

// Resize returns a new Paged array of newSize values at the same bit
// width and page size, with content copied from min(Size(),newSize)
// positions.
func (p *Paged) Resize(newSize int) Mutable {
	next, err := NewPaged(newSize, p.bitsPerValue, p.pageSize)
	if err != nil {
		panic(err)
	}

	n := p.valueCount
	if newSize < n {
		n = newSize
	}
	for i := 0; i < n; i++ {
		next.Set(i, p.Get(i))
	}

	return next
}
