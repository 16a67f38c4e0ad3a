package admin

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"
)

// ListController drives a paginated, sortable, infinitely scrolled list of
// one entity type.
type ListController[T models.Entity] struct {
	store  *store.Store[T]
	entity string
	logger *slog.Logger

	mu          sync.Mutex
	pagination  PaginationState
	sorting     bool
	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()

	ops inflight
}

// NewListController creates a list controller whose pagination starts from
// query, or from page 1 of itemsPerPage rows sorted by id.
func NewListController[T models.Entity](st *store.Store[T], entity string, query url.Values, itemsPerPage int, logger *slog.Logger) *ListController[T] {
	return &ListController[T]{
		store:      st,
		entity:     entity,
		logger:     logger.With("list", entity),
		pagination: PaginationFromQuery(query, itemsPerPage),
	}
}

// Mount resets the store and loads page 0. While mounted, every successful
// create, update or delete on the store reloads the list the same way.
func (c *ListController[T]) Mount(ctx context.Context) {
	c.mu.Lock()
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.unsubscribe = c.store.Subscribe(func(prev, next store.State[T]) {
		if !prev.UpdateSuccess && next.UpdateSuccess {
			c.logger.Debug("entity changed, reloading")
			c.resetAll(c.mountContext())
		}
	})

	c.resetAll(c.mountContext())
}

// Unmount stops reacting to store changes and cancels in-flight requests
func (c *ListController[T]) Unmount() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
}

// Refresh discards loaded rows and reloads from page 1
func (c *ListController[T]) Refresh(ctx context.Context) {
	c.resetAll(ctx)
}

// LoadMore fetches the next page when the view has scrolled (scrollOffset > 0)
// and more pages exist. It reports whether a request was issued.
//
// The cursor only advances once the page has been appended. A rejected
// request leaves ActivePage where it was so the same page can be asked for
// again, and a reset while the request was in flight (sort, refresh,
// mutation elsewhere) owns the cursor from then on.
func (c *ListController[T]) LoadMore(ctx context.Context, scrollOffset int) bool {
	if scrollOffset <= 0 || !c.HasMore() || c.store.State().Loading {
		return false
	}

	c.mu.Lock()
	next := c.pagination
	next.ActivePage++
	req := next.PageRequest()
	c.mu.Unlock()

	generation := c.store.State().Generation
	c.ops.after(c.store.GetEntities(ctx, req, store.Append), func() {
		st := c.store.State()
		if st.Generation != generation || st.Err != nil {
			c.logger.Debug("page not appended, cursor kept", "page", req.Page)
			return
		}
		c.mu.Lock()
		c.pagination.ActivePage = next.ActivePage
		c.mu.Unlock()
	})
	return true
}

// Sort reloads the list ordered by column. Clicking the active column flips
// the direction; a new column starts ascending.
func (c *ListController[T]) Sort(ctx context.Context, column string) {
	c.store.Reset()

	c.mu.Lock()
	c.pagination = c.pagination.SortBy(column)
	c.sorting = true
	req := c.pagination.PageRequest()
	c.mu.Unlock()

	c.ops.after(c.store.GetEntities(ctx, req, store.Replace), func() {
		c.mu.Lock()
		c.sorting = false
		c.mu.Unlock()
	})
}

// resetAll clears the store before page 0 is requested so no earlier page
// can be appended after it.
func (c *ListController[T]) resetAll(ctx context.Context) {
	c.store.Reset()

	c.mu.Lock()
	c.pagination.ActivePage = 1
	req := c.pagination.PageRequest()
	c.mu.Unlock()

	c.ops.add(c.store.GetEntities(ctx, req, store.Replace))
}

func (c *ListController[T]) mountContext() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// HasMore reports whether the last response announced a page after the
// active one.
func (c *ListController[T]) HasMore() bool {
	links := c.store.State().Links

	c.mu.Lock()
	defer c.mu.Unlock()
	return links.HasNext && c.pagination.ActivePage-1 < links.Next
}

// Wait blocks until every request the controller issued has settled
func (c *ListController[T]) Wait() {
	c.ops.wait()
}

// Rows returns the loaded entities in display order
func (c *ListController[T]) Rows() []T {
	return c.store.State().Entities
}

// Loading reports whether a page request is in flight
func (c *ListController[T]) Loading() bool {
	return c.store.State().Loading
}

// Empty reports whether the empty-state indicator should show
func (c *ListController[T]) Empty() bool {
	st := c.store.State()
	return !st.Loading && len(st.Entities) == 0
}

// Err returns the last failure, if any
func (c *ListController[T]) Err() error {
	return c.store.State().Err
}

// TotalItems returns the collection size reported by the server
func (c *ListController[T]) TotalItems() int64 {
	return c.store.State().TotalItems
}

// Sorting reports whether a sort reload is pending
func (c *ListController[T]) Sorting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorting
}

// Pagination returns the current cursor
func (c *ListController[T]) Pagination() PaginationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Query round-trips the pagination into list query parameters
func (c *ListController[T]) Query() url.Values {
	return c.Pagination().Query()
}

// Location returns the list route for the current pagination
func (c *ListController[T]) Location() string {
	return ListLocation(c.entity, c.Query())
}
