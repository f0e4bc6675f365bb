package fortune

import (
	"github.com/meigma/fortune/internal/fortunetype"
	"github.com/meigma/fortune/internal/index"
)

// Sentinel errors re-exported from internal/fortunetype.
var (
	// ErrResourceNotFound is returned when a directory or file cannot be read
	// while loading. It aborts the whole load.
	ErrResourceNotFound = fortunetype.ErrResourceNotFound

	// ErrMalformedIndex is returned when an index file cannot be decoded.
	ErrMalformedIndex = fortunetype.ErrMalformedIndex

	// ErrUnknownCategory is returned when a category is not loaded.
	ErrUnknownCategory = fortunetype.ErrUnknownCategory

	// ErrInvalidArgument is returned for a fortune number below 1.
	ErrInvalidArgument = fortunetype.ErrInvalidArgument

	// ErrOutOfRange is returned when a fortune number exceeds the category
	// size or a record extends past the data file.
	ErrOutOfRange = fortunetype.ErrOutOfRange

	// ErrDecode is returned when a record is not valid UTF-8.
	ErrDecode = fortunetype.ErrDecode

	// ErrInternalInconsistency is returned when the offset table gives a
	// record a negative length.
	ErrInternalInconsistency = fortunetype.ErrInternalInconsistency

	// ErrDecompression is returned when a compressed resource cannot be decoded.
	ErrDecompression = fortunetype.ErrDecompression

	// ErrSizeOverflow is returned when a data file is too large to index.
	ErrSizeOverflow = fortunetype.ErrSizeOverflow
)

// Errors re-exported from internal/index.
var (
	// ErrEmptyRecord is returned by BuildIndex for a record with no text
	// between two delimiter lines.
	ErrEmptyRecord = index.ErrEmptyRecord

	// ErrUnterminatedRecord is returned by BuildIndex when the data does not
	// end with a delimiter line.
	ErrUnterminatedRecord = index.ErrUnterminatedRecord
)
