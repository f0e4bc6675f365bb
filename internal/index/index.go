package index

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/meigma/fortune/internal/fortunetype"
	"github.com/meigma/fortune/internal/sizing"
)

// HeaderSize is the fixed width of an index header in bytes.
const HeaderSize = 24

// Version is the strfile format version written by Encode.
const Version = 2

// Header flag bits as defined by strfile.
const (
	FlagRandom  uint32 = 0x1
	FlagOrdered uint32 = 0x2
	FlagRotated uint32 = 0x4
)

var flagNames = []struct {
	bit  uint32
	name string
}{
	{FlagRandom, "random"},
	{FlagOrdered, "ordered"},
	{FlagRotated, "rotated"},
}

// FlagNames returns the names of the known bits set in flags, lowest bit
// first. Unknown bits are ignored.
func FlagNames(flags uint32) []string {
	var names []string
	for _, f := range flagNames {
		if flags&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	return names
}

// Header is the fixed-size prefix of an index file.
type Header struct {
	Version        uint32
	NumRecords     uint32
	LongestRecord  uint32
	ShortestRecord uint32
	Flags          uint32
	Delimiter      byte
}

// Index is a decoded index file.
//
// Offsets always holds exactly NumRecords+1 entries.
type Index struct {
	Header
	Offsets []uint32
}

// Decode parses an index file.
//
// It fails with ErrMalformedIndex when data cannot hold the header or the
// offset table it declares. Bytes after the table are ignored. Offsets are
// not checked for monotonicity; see CheckMonotonic.
func Decode(data []byte) (*Index, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header",
			fortunetype.ErrMalformedIndex, len(data), HeaderSize)
	}

	h := Header{
		Version:        binary.BigEndian.Uint32(data[0:4]),
		NumRecords:     binary.BigEndian.Uint32(data[4:8]),
		LongestRecord:  binary.BigEndian.Uint32(data[8:12]),
		ShortestRecord: binary.BigEndian.Uint32(data[12:16]),
		Flags:          binary.BigEndian.Uint32(data[16:20]),
		Delimiter:      data[20],
	}

	need, ok := sizing.TableBytes(HeaderSize, h.NumRecords)
	if !ok || len(data) < need {
		return nil, fmt.Errorf("%w: header declares %d records but only %d bytes are present",
			fortunetype.ErrMalformedIndex, h.NumRecords, len(data))
	}

	offsets := make([]uint32, int(h.NumRecords)+1)
	for i := range offsets {
		pos := HeaderSize + 4*i
		offsets[i] = binary.BigEndian.Uint32(data[pos : pos+4])
	}

	return &Index{Header: h, Offsets: offsets}, nil
}

// Len returns the number of records in the index.
func (idx *Index) Len() int {
	return int(idx.NumRecords)
}

// CheckMonotonic returns ErrMalformedIndex if any offset is smaller than the
// one before it.
func (idx *Index) CheckMonotonic() error {
	for i := 1; i < len(idx.Offsets); i++ {
		if idx.Offsets[i] < idx.Offsets[i-1] {
			return fmt.Errorf("%w: offset %d (%d) precedes offset %d (%d)",
				fortunetype.ErrMalformedIndex, i, idx.Offsets[i], i-1, idx.Offsets[i-1])
		}
	}
	return nil
}

// All returns an iterator over (record number, start offset) pairs,
// excluding the trailing end offset.
func (idx *Index) All() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for i := 0; i < idx.Len(); i++ {
			if !yield(i, idx.Offsets[i]) {
				return
			}
		}
	}
}

// Encode returns the binary form of the index.
//
// The record count written is len(Offsets)-1, regardless of NumRecords.
func (idx *Index) Encode() []byte {
	count := 0
	if len(idx.Offsets) > 0 {
		count = len(idx.Offsets) - 1
	}
	buf := make([]byte, HeaderSize+4*len(idx.Offsets))
	binary.BigEndian.PutUint32(buf[0:4], idx.Version)
	binary.BigEndian.PutUint32(buf[4:8], uint32(count)) //nolint:gosec // bounded by the offsets slice built from uint32 data
	binary.BigEndian.PutUint32(buf[8:12], idx.LongestRecord)
	binary.BigEndian.PutUint32(buf[12:16], idx.ShortestRecord)
	binary.BigEndian.PutUint32(buf[16:20], idx.Flags)
	buf[20] = idx.Delimiter
	for i, off := range idx.Offsets {
		pos := HeaderSize + 4*i
		binary.BigEndian.PutUint32(buf[pos:pos+4], off)
	}
	return buf
}
