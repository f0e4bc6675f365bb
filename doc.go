// Package fortune serves short text records ("fortunes") grouped into
// categories.
//
// Each category is a pair of files under one directory:
//   - Data file (e.g. "art"): records separated by a line holding only a
//     delimiter character, conventionally '%'
//   - Index file (e.g. "art.dat"): a strfile index holding the record count
//     and a table of byte offsets into the data file
//
// A [Store] discovers every pair at load time through a [Provider], keeps the
// decoded categories in an immutable snapshot and answers lookups without
// further I/O:
//
//	s, err := fortune.Load(ctx, fortune.DirProvider("/usr/share/games"), "fortunes")
//	if err != nil {
//	    return err
//	}
//	f, err := s.Random()
//
// Stores are safe for concurrent use. [Store.Reload] rebuilds the snapshot
// from the same provider and swaps it in atomically.
package fortune
