package store

import "docmanagement/internal/domain/models"

// Accumulation says what a fetched page does to the loaded collection.
type Accumulation int

const (
	// Replace discards the loaded rows (reset, sort, refresh)
	Replace Accumulation = iota
	// Append adds the page after the loaded rows (load more)
	Append
)

func (a Accumulation) String() string {
	if a == Append {
		return "append"
	}
	return "replace"
}

// State is the store's view of one remote collection. Values are treated as
// immutable: the reducer always builds a new Entities slice.
type State[T models.Entity] struct {
	Entities      []T
	Entity        *T
	Loading       bool
	Updating      bool
	UpdateSuccess bool
	Links         models.Links
	TotalItems    int64
	Err           error
	ErrorMessage  string
	Generation    uint64
}

// Initial returns the empty state for the given generation
func Initial[T models.Entity](generation uint64) State[T] {
	return State[T]{
		Entities:   []T{},
		Generation: generation,
	}
}
