// Package fortunetype holds the value types and sentinel errors shared by the
// fortune packages.
package fortunetype

import "github.com/opencontainers/go-digest"

// Fortune is a single record returned by a query.
type Fortune struct {
	// Category is the name of the category the record came from.
	Category string `json:"category"`

	// Number is the 1-based position of the record within its category.
	Number uint32 `json:"number"`

	// Lines is the record text split on newlines, padding removed.
	Lines []string `json:"lines"`
}

// Category summarizes a loaded category.
type Category struct {
	// Name is the index file name without its ".dat" suffix.
	Name string `json:"category"`

	// TotalRecords is the number of records declared by the index header.
	TotalRecords uint32 `json:"totalRecords"`

	// Digest identifies the content of the data file.
	Digest digest.Digest `json:"digest,omitempty"`
}
