package search

import "context"

// Candidate is one selectable search result. Domain records are reduced to
// this shape by a caller-supplied mapping; the search machinery never
// assumes a fixed record type.
type Candidate struct {
	ID       string
	Label    string
	Subtitle string
	ImageURL string
}

// Source produces candidates for a settled query. The scope carries the
// parent value of a dependent search ("" when the field is unscoped).
type Source func(ctx context.Context, query, scope string, limit int) ([]Candidate, error)
