package store

import "docmanagement/internal/domain/models"

// Op names the store operation an action settles
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Action is anything the reducer understands. Every action except Reset
// carries the generation that was current when its request was issued.
type Action interface {
	generation() uint64
}

// Stamp records the generation an action belongs to
type Stamp struct {
	Generation uint64
}

func (s Stamp) generation() uint64 { return s.Generation }

// Reset clears the collection and starts a new generation
type Reset struct{}

func (Reset) generation() uint64 { return 0 }

// ListPending marks a page request in flight
type ListPending struct{ Stamp }

// ListFulfilled delivers a page
type ListFulfilled[T models.Entity] struct {
	Stamp
	Page   *models.Page[T]
	Policy Accumulation
}

// EntityPending marks a single-entity fetch in flight
type EntityPending struct{ Stamp }

// EntityFulfilled delivers a single entity
type EntityFulfilled[T models.Entity] struct {
	Stamp
	Entity T
}

// MutationPending marks a create, update or delete in flight
type MutationPending struct{ Stamp }

// MutationFulfilled delivers the stored version of a created or updated entity
type MutationFulfilled[T models.Entity] struct {
	Stamp
	Entity T
}

// DeleteFulfilled reports a completed delete
type DeleteFulfilled struct{ Stamp }

// Rejected reports a failed operation
type Rejected struct {
	Stamp
	Op  Op
	Err error
}
