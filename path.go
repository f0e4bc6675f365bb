package fortune

import (
	"slices"
	"strings"
)

// NormalizePath converts a slash-separated resource path to the form fs.FS
// expects:
//   - Leading and trailing slashes are dropped: "/fortune/" → "fortune"
//   - Empty and "." elements are dropped: "a//./b" → "a/b"
//   - The root becomes ".": "", "/" and "./" → "."
//
// ".." elements are kept, so fs.FS implementations reject them.
func NormalizePath(p string) string {
	parts := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	parts = slices.DeleteFunc(parts, func(s string) bool { return s == "." })
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}
