package store

import (
	"errors"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
)

// Reduce applies a to s and returns the new state. It is pure: s is taken by
// value and the slices it holds are never written in place.
//
// Every action except Reset carries the generation that was current when its
// request was issued. Reset starts a new generation and returns the initial
// state for it. Any action whose generation differs from s.Generation
// therefore answers a request made before the last reset, and it is dropped
// whole: it does not clear Loading, set Err, or touch the loaded entities.
// Without this a slow page from before a sort change could land after the
// first page of the new order and be appended to it.
func Reduce[T models.Entity](s State[T], a Action) State[T] {
	if _, ok := a.(Reset); ok {
		return Initial[T](s.Generation + 1)
	}
	if a.generation() != s.Generation {
		return s
	}

	switch a := a.(type) {
	case ListPending:
		s.Err, s.ErrorMessage = nil, ""
		s.UpdateSuccess = false
		s.Loading = true

	case EntityPending:
		s.Err, s.ErrorMessage = nil, ""
		s.UpdateSuccess = false
		s.Loading = true

	case MutationPending:
		s.Err, s.ErrorMessage = nil, ""
		s.UpdateSuccess = false
		s.Updating = true

	case ListFulfilled[T]:
		s.Loading = false
		s.Entities = accumulate(s.Entities, a.Page.Items, a.Policy)
		s.Links = a.Page.Links
		if a.Page.Total >= 0 {
			s.TotalItems = a.Page.Total
		} else {
			s.TotalItems = int64(len(s.Entities))
		}

	case EntityFulfilled[T]:
		s.Loading = false
		entity := a.Entity
		s.Entity = &entity

	case MutationFulfilled[T]:
		s.Updating = false
		s.UpdateSuccess = true
		entity := a.Entity
		s.Entity = &entity

	case DeleteFulfilled:
		s.Updating = false
		s.UpdateSuccess = true
		s.Entity = nil

	case Rejected:
		s.Loading = false
		s.Updating = false
		s.UpdateSuccess = false
		s.Err = a.Err
		if a.Err != nil {
			s.ErrorMessage = a.Err.Error()
		}
		if a.Op == OpGet && errors.Is(a.Err, domain.ErrNotFound) {
			s.Entity = nil
		}
	}
	return s
}

// accumulate never writes into loaded, so earlier states stay intact.
func accumulate[T any](loaded, page []T, policy Accumulation) []T {
	if policy == Replace || len(loaded) == 0 {
		out := make([]T, len(page))
		copy(out, page)
		return out
	}
	out := make([]T, 0, len(loaded)+len(page))
	out = append(out, loaded...)
	return append(out, page...)
}
