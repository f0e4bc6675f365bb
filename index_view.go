package fortune

import (
	"iter"

	"github.com/meigma/fortune/internal/index"
)

// IndexView provides read-only access to a decoded index file.
//
// It exposes the header and offset table without requiring the data file,
// which is useful for inspecting a category before loading it.
type IndexView struct {
	idx       *index.Index
	indexData []byte
}

// NewIndexView decodes an index file.
//
// The provided data is retained by the IndexView; callers must not modify it
// after calling NewIndexView.
func NewIndexView(indexData []byte) (*IndexView, error) {
	idx, err := index.Decode(indexData)
	if err != nil {
		return nil, err
	}
	return &IndexView{
		idx:       idx,
		indexData: indexData,
	}, nil
}

// BuildIndex scans a data file whose records are each followed by a line
// holding only delim and returns the encoded index for it.
func BuildIndex(data []byte, delim byte) ([]byte, error) {
	idx, err := index.Build(data, delim)
	if err != nil {
		return nil, err
	}
	return idx.Encode(), nil
}

// Len returns the number of records.
func (v *IndexView) Len() int {
	return v.idx.Len()
}

// Version returns the index format version.
func (v *IndexView) Version() uint32 {
	return v.idx.Version
}

// Longest returns the length of the longest record.
func (v *IndexView) Longest() uint32 {
	return v.idx.LongestRecord
}

// Shortest returns the length of the shortest record.
func (v *IndexView) Shortest() uint32 {
	return v.idx.ShortestRecord
}

// Flags returns the header flag bits.
func (v *IndexView) Flags() uint32 {
	return v.idx.Flags
}

// FlagNames returns the names of the strfile flags set in the header:
// "random", "ordered" and "rotated".
func (v *IndexView) FlagNames() []string {
	return index.FlagNames(v.idx.Flags)
}

// Delimiter returns the record delimiter character.
func (v *IndexView) Delimiter() byte {
	return v.idx.Delimiter
}

// End returns the final offset, one past the end of the last record. For a
// well-formed index it equals the data file length.
func (v *IndexView) End() uint32 {
	return v.idx.Offsets[len(v.idx.Offsets)-1]
}

// Offsets returns an iterator over each record's number (0-based) and
// starting offset.
func (v *IndexView) Offsets() iter.Seq2[int, uint32] {
	return v.idx.All()
}

// CheckMonotonic returns ErrMalformedIndex if the offsets ever decrease.
func (v *IndexView) CheckMonotonic() error {
	return v.idx.CheckMonotonic()
}

// IndexData returns the raw index file.
func (v *IndexView) IndexData() []byte {
	return v.indexData
}
