package fortunetype

import "errors"

// Sentinel errors for fortune operations.
var (
	// ErrResourceNotFound is returned when a directory or file cannot be read
	// during bootstrap.
	ErrResourceNotFound = errors.New("fortune: resource not found")

	// ErrMalformedIndex is returned when an index file cannot be decoded.
	ErrMalformedIndex = errors.New("fortune: malformed index")

	// ErrUnknownCategory is returned when a category is not loaded.
	ErrUnknownCategory = errors.New("fortune: unknown category")

	// ErrInvalidArgument is returned for a non-positive fortune number.
	ErrInvalidArgument = errors.New("fortune: invalid argument")

	// ErrOutOfRange is returned when a fortune number or byte range exceeds
	// what the category holds.
	ErrOutOfRange = errors.New("fortune: out of range")

	// ErrDecode is returned when a record is not valid UTF-8.
	ErrDecode = errors.New("fortune: invalid utf-8 in record")

	// ErrInternalInconsistency is returned when the offset table yields a
	// negative record length.
	ErrInternalInconsistency = errors.New("fortune: inconsistent offset table")

	// ErrDecompression is returned when a compressed resource cannot be decoded.
	ErrDecompression = errors.New("fortune: decompression failed")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("fortune: size overflow")
)
