// Package sizing provides overflow-safe arithmetic for index offsets and lengths.
package sizing

import "math"

// TableBytes returns the byte length of a header followed by count+1
// four-byte offsets. ok is false if the result does not fit in an int.
func TableBytes(headerSize int, count uint32) (n int, ok bool) {
	total := uint64(headerSize) + 4*(uint64(count)+1)
	if total > uint64(math.MaxInt) {
		return 0, false
	}
	return int(total), true
}

// Span returns end - start - padding as a signed value.
// The result is negative when the offsets are inconsistent.
func Span(start, end uint32, padding int64) int64 {
	return int64(end) - int64(start) - padding
}

// Within reports whether [start, start+length) lies inside a buffer of size.
func Within(start uint32, length int64, size int) bool {
	if length < 0 {
		return false
	}
	return int64(start)+length <= int64(size)
}

// ToUint32 converts a non-negative int to uint32, returning overflowErr if it doesn't fit.
func ToUint32(n int, overflowErr error) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, overflowErr
	}
	return uint32(n), nil
}
