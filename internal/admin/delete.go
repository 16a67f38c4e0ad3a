package admin

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"
)

// DeleteController confirms and deletes one entity
type DeleteController[T models.Entity] struct {
	store  *store.Store[T]
	nav    Navigator
	entity string
	query  url.Values
	logger *slog.Logger

	mu          sync.Mutex
	id          int64
	loaded      bool
	unsubscribe func()

	ops inflight
}

// NewDeleteController creates a delete dialog for entity. query is the
// location's query string, restored when returning to the list.
func NewDeleteController[T models.Entity](st *store.Store[T], nav Navigator, entity string, query url.Values, logger *slog.Logger) *DeleteController[T] {
	return &DeleteController[T]{
		store:  st,
		nav:    nav,
		entity: entity,
		query:  query,
		logger: logger.With("delete", entity),
	}
}

// Mount fetches the entity for the prompt and marks the dialog loaded.
// A later successful delete navigates back to the list exactly once.
func (c *DeleteController[T]) Mount(ctx context.Context, id int64) {
	c.mu.Lock()
	c.id = id
	c.loaded = true
	c.mu.Unlock()

	c.unsubscribe = c.store.Subscribe(func(prev, next store.State[T]) {
		if prev.UpdateSuccess || !next.UpdateSuccess {
			return
		}
		c.mu.Lock()
		wasLoaded := c.loaded
		c.loaded = false
		c.mu.Unlock()

		if wasLoaded {
			c.logger.Debug("deleted, returning to list", "id", id)
			c.close()
		}
	})

	c.ops.add(c.store.GetEntity(ctx, id))
}

// Unmount detaches the dialog from the store
func (c *DeleteController[T]) Unmount() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Entity returns the record being deleted, nil while loading or when missing
func (c *DeleteController[T]) Entity() *T {
	st := c.store.State()
	if st.Loading || st.Entity == nil {
		return nil
	}
	return st.Entity
}

// Confirm issues the delete. On failure the dialog stays open and Err
// reports why.
func (c *DeleteController[T]) Confirm(ctx context.Context) {
	c.mu.Lock()
	id := c.id
	c.mu.Unlock()

	c.ops.add(c.store.DeleteEntity(ctx, id))
}

// Cancel closes the dialog without deleting
func (c *DeleteController[T]) Cancel() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
	c.close()
}

// Updating reports whether the delete is in flight
func (c *DeleteController[T]) Updating() bool {
	return c.store.State().Updating
}

// Err returns the last failure, if any
func (c *DeleteController[T]) Err() error {
	return c.store.State().Err
}

// Wait blocks until the fetch and the delete have settled
func (c *DeleteController[T]) Wait() {
	c.ops.wait()
}

func (c *DeleteController[T]) close() {
	c.nav.Navigate(ListLocation(c.entity, c.query))
}
