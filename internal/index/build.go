package index

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/meigma/fortune/internal/fortunetype"
	"github.com/meigma/fortune/internal/sizing"
)

// DefaultDelimiter is the conventional record delimiter of fortune files.
const DefaultDelimiter = '%'

// Errors returned by Build.
var (
	// ErrEmptyRecord is returned when two delimiter lines are adjacent or the
	// data starts with a delimiter line.
	ErrEmptyRecord = errors.New("fortune: empty record")

	// ErrUnterminatedRecord is returned when data ends without a delimiter line.
	ErrUnterminatedRecord = errors.New("fortune: unterminated record")
)

// Build scans a data file and returns the index describing its records.
//
// Every record, including the last, must be followed by a line holding only
// the delimiter. The longest and shortest lengths count the record text
// without the trailing "\n<delim>\n" padding.
func Build(data []byte, delim byte) (*Index, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: data file is %d bytes", fortunetype.ErrSizeOverflow, len(data))
	}

	idx := &Index{
		Header: Header{
			Version:   Version,
			Delimiter: delim,
		},
		Offsets: []uint32{0},
	}

	start := 0
	for line := 0; line < len(data); {
		nl := bytes.IndexByte(data[line:], '\n')
		if nl < 0 {
			break
		}
		next := line + nl + 1
		if nl == 1 && data[line] == delim {
			if line == start {
				return nil, fmt.Errorf("%w at offset %d", ErrEmptyRecord, start)
			}
			n, err := sizing.ToUint32(line-1-start, fortunetype.ErrSizeOverflow)
			if err != nil {
				return nil, err
			}
			off, err := sizing.ToUint32(next, fortunetype.ErrSizeOverflow)
			if err != nil {
				return nil, err
			}
			idx.observe(n)
			idx.Offsets = append(idx.Offsets, off)
			start = next
		}
		line = next
	}
	if start != len(data) {
		return nil, fmt.Errorf("%w at offset %d", ErrUnterminatedRecord, start)
	}
	return idx, nil
}

// observe folds a record length into the longest/shortest header fields.
func (idx *Index) observe(n uint32) {
	if idx.NumRecords == 0 || n > idx.LongestRecord {
		idx.LongestRecord = n
	}
	if idx.NumRecords == 0 || n < idx.ShortestRecord {
		idx.ShortestRecord = n
	}
	idx.NumRecords++
}
