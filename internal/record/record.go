// Package record extracts fortunes from a category's data buffer using its
// decoded offset table.
package record

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/fortune/internal/fortunetype"
	"github.com/meigma/fortune/internal/index"
	"github.com/meigma/fortune/internal/sizing"
)

// Padding is the length of the "\n<delim>\n" separator that trails every
// record in a data file.
const Padding = 3

// Category is a loaded category: its decoded index and the full content of
// its data file. A Category is immutable once built.
type Category struct {
	name    string
	header  index.Header
	offsets []uint32
	data    []byte
	digest  digest.Digest
}

// New builds a Category from a decoded index and the paired data bytes.
//
// The data slice is retained; callers must not modify it afterwards.
func New(name string, idx *index.Index, data []byte) *Category {
	return &Category{
		name:    name,
		header:  idx.Header,
		offsets: idx.Offsets,
		data:    data,
		digest:  digest.FromBytes(data),
	}
}

// Name returns the category name.
func (c *Category) Name() string {
	return c.name
}

// TotalRecords returns the record count declared by the index header.
func (c *Category) TotalRecords() uint32 {
	return c.header.NumRecords
}

// Header returns the decoded index header.
func (c *Category) Header() index.Header {
	return c.header
}

// Digest returns the digest of the data file content.
func (c *Category) Digest() digest.Digest {
	return c.digest
}

// Summary returns the public description of the category.
func (c *Category) Summary() fortunetype.Category {
	return fortunetype.Category{
		Name:         c.name,
		TotalRecords: c.header.NumRecords,
		Digest:       c.digest,
	}
}

// Extract returns the record at zero-based position i.
func (c *Category) Extract(i uint32) (fortunetype.Fortune, error) {
	if i >= c.header.NumRecords {
		return fortunetype.Fortune{}, fmt.Errorf("%w: record %d of category %s with %d record(s)",
			fortunetype.ErrOutOfRange, i, c.name, c.header.NumRecords)
	}

	payload, err := c.payload(i)
	if err != nil {
		return fortunetype.Fortune{}, err
	}
	if !utf8.Valid(payload) {
		return fortunetype.Fortune{}, fmt.Errorf("%w: record %d of category %s",
			fortunetype.ErrDecode, i, c.name)
	}

	return fortunetype.Fortune{
		Category: c.name,
		Number:   i + 1,
		Lines:    strings.Split(string(payload), "\n"),
	}, nil
}

// payload returns the bytes of record i with the trailing padding removed.
// The returned slice aliases the data buffer.
func (c *Category) payload(i uint32) ([]byte, error) {
	start := c.offsets[i]
	end := c.offsets[i+1]

	n := sizing.Span(start, end, Padding)
	if n < 0 {
		return nil, fmt.Errorf("%w: record %d of category %s spans offsets %d to %d",
			fortunetype.ErrInternalInconsistency, i, c.name, start, end)
	}
	if !sizing.Within(start, n, len(c.data)) {
		return nil, fmt.Errorf("%w: record %d of category %s ends at byte %d past data length %d",
			fortunetype.ErrOutOfRange, i, c.name, int64(start)+n, len(c.data))
	}
	return c.data[start : int64(start)+n], nil
}
