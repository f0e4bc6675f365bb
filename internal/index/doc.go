// Package index decodes and encodes strfile index files.
//
// An index file starts with a 24-byte header followed by NumRecords+1
// big-endian uint32 offsets into the paired data file:
//
//	offset  size  field
//	0       4     version
//	4       4     record count
//	8       4     longest record length
//	12      4     shortest record length
//	16      4     flags
//	20      1     delimiter
//	21      3     padding
//	24      4*n   offsets (n = count+1)
//
// Offset i is where record i starts; offset count is one past the end of the
// last record.
package index
