package admin

import (
	"context"

	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"
)

// DetailController shows one entity
type DetailController[T models.Entity] struct {
	store *store.Store[T]
	id    int64
	ops   inflight
}

// NewDetailController creates a detail controller over st
func NewDetailController[T models.Entity](st *store.Store[T]) *DetailController[T] {
	return &DetailController[T]{store: st}
}

// Mount fetches entity id
func (c *DetailController[T]) Mount(ctx context.Context, id int64) {
	c.id = id
	c.ops.add(c.store.GetEntity(ctx, id))
}

// Entity returns the loaded entity, or nil while loading, after a failure,
// or when the store holds a different record.
func (c *DetailController[T]) Entity() *T {
	st := c.store.State()
	if st.Loading || st.Entity == nil {
		return nil
	}
	if id := (*st.Entity).EntityID(); id == nil || *id != c.id {
		return nil
	}
	return st.Entity
}

// Loading reports whether the fetch is in flight
func (c *DetailController[T]) Loading() bool {
	return c.store.State().Loading
}

// Err returns the fetch failure, if any
func (c *DetailController[T]) Err() error {
	return c.store.State().Err
}

// Wait blocks until the fetch has settled
func (c *DetailController[T]) Wait() {
	c.ops.wait()
}
