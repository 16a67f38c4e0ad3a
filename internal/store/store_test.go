package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memResource serves folders 1..n. When gates has an entry for a page the
// list call waits on it.
type memResource struct {
	mu      sync.Mutex
	folders map[int64]models.Folder
	nextID  int64
	gates   map[int]chan struct{}
	calls   int
}

func newMemResource(n int) *memResource {
	r := &memResource{folders: map[int64]models.Folder{}, gates: map[int]chan struct{}{}}
	for i := 1; i <= n; i++ {
		r.nextID++
		r.folders[r.nextID] = models.Folder{ID: models.Int64Ptr(r.nextID), Title: fmt.Sprintf("folder %d", r.nextID)}
	}
	return r
}

func (r *memResource) List(ctx context.Context, req models.PageRequest) (*models.Page[models.Folder], error) {
	r.mu.Lock()
	gate := r.gates[req.Page]
	r.calls++
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	items := []models.Folder{}
	for id := int64(req.Page*req.Size + 1); id <= r.nextID && len(items) < req.Size; id++ {
		if f, ok := r.folders[id]; ok {
			items = append(items, f)
		}
	}
	total := int64(len(r.folders))
	return &models.Page[models.Folder]{
		Items: items, Page: req.Page, Size: req.Size, Total: total,
		Links: models.ComputeLinks(req.Page, req.Size, total),
	}, nil
}

func (r *memResource) Get(_ context.Context, id int64) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %d not found", id)}
	}
	return &f, nil
}

func (r *memResource) Create(_ context.Context, f models.Folder) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = models.Int64Ptr(r.nextID)
	r.folders[r.nextID] = f
	return &f, nil
}

func (r *memResource) Update(_ context.Context, f models.Folder) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.folders[*f.ID]; !ok {
		return nil, &domain.ValidationError{Message: "unknown folder"}
	}
	r.folders[*f.ID] = f
	return &f, nil
}

func (r *memResource) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.folders, id)
	return nil
}

func newTestStore(res Resource[models.Folder]) *Store[models.Folder] {
	return New[models.Folder]("folder", res, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation did not settle")
	}
}

func TestStore_GetEntitiesAppends(t *testing.T) {
	s := newTestStore(newMemResource(5))
	ctx := context.Background()

	wait(t, s.GetEntities(ctx, models.PageRequest{Page: 0, Size: 2}, Replace))
	wait(t, s.GetEntities(ctx, models.PageRequest{Page: 1, Size: 2}, Append))
	wait(t, s.GetEntities(ctx, models.PageRequest{Page: 2, Size: 2}, Append))

	st := s.State()
	require.Len(t, st.Entities, 5)
	for i, f := range st.Entities {
		assert.Equal(t, int64(i+1), *f.ID)
	}
	assert.False(t, st.Loading)
	assert.False(t, st.Links.HasNext)
	assert.Equal(t, int64(5), st.TotalItems)
}

func TestStore_StaleResponseAfterResetIsDropped(t *testing.T) {
	res := newMemResource(6)
	gate := make(chan struct{})
	res.gates[1] = gate
	s := newTestStore(res)
	ctx := context.Background()

	wait(t, s.GetEntities(ctx, models.PageRequest{Page: 0, Size: 2}, Replace))
	slow := s.GetEntities(ctx, models.PageRequest{Page: 1, Size: 2}, Append)

	s.Reset()
	wait(t, s.GetEntities(ctx, models.PageRequest{Page: 0, Size: 2}, Replace))

	close(gate)
	wait(t, slow)

	st := s.State()
	require.Len(t, st.Entities, 2)
	assert.Equal(t, int64(1), *st.Entities[0].ID)
	assert.Equal(t, int64(2), *st.Entities[1].ID)
	assert.False(t, st.Loading)
}

func TestStore_ResetClearsEverything(t *testing.T) {
	s := newTestStore(newMemResource(3))
	ctx := context.Background()

	wait(t, s.GetEntities(ctx, models.PageRequest{Size: 20}, Replace))
	wait(t, s.CreateEntity(ctx, models.Folder{Title: "new"}))
	require.True(t, s.State().UpdateSuccess)

	s.Reset()

	st := s.State()
	assert.Empty(t, st.Entities)
	assert.Nil(t, st.Entity)
	assert.False(t, st.UpdateSuccess)
}

func TestStore_GetEntityNotFound(t *testing.T) {
	s := newTestStore(newMemResource(1))
	ctx := context.Background()

	wait(t, s.GetEntity(ctx, 1))
	require.NotNil(t, s.State().Entity)

	wait(t, s.GetEntity(ctx, 42))
	st := s.State()
	assert.Nil(t, st.Entity)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(st.Err))
	assert.False(t, st.Loading)
}

func TestStore_UpdateWithoutIDRejectedLocally(t *testing.T) {
	res := newMemResource(0)
	s := newTestStore(res)

	wait(t, s.UpdateEntity(context.Background(), models.Folder{Title: "x"}))

	st := s.State()
	assert.ErrorIs(t, st.Err, domain.ErrValidation)
	assert.False(t, st.Updating)
	assert.False(t, st.UpdateSuccess)
}

func TestStore_DeleteEntity(t *testing.T) {
	s := newTestStore(newMemResource(3))
	ctx := context.Background()

	wait(t, s.GetEntity(ctx, 3))
	wait(t, s.DeleteEntity(ctx, 3))

	st := s.State()
	assert.Nil(t, st.Entity)
	assert.True(t, st.UpdateSuccess)
	assert.NoError(t, st.Err)
}

func TestStore_CreateEntity(t *testing.T) {
	s := newTestStore(newMemResource(2))

	wait(t, s.CreateEntity(context.Background(), models.Folder{Title: "Reports"}))

	st := s.State()
	require.NotNil(t, st.Entity)
	require.NotNil(t, st.Entity.ID)
	assert.Equal(t, int64(3), *st.Entity.ID)
	assert.Equal(t, "Reports", st.Entity.Title)
	assert.True(t, st.UpdateSuccess)
	assert.False(t, st.Updating)
}

func TestStore_SubscribersSeeOrderedTransitions(t *testing.T) {
	s := newTestStore(newMemResource(2))

	var mu sync.Mutex
	var seen []string
	unsubscribe := s.Subscribe(func(prev, next State[models.Folder]) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case !prev.Loading && next.Loading:
			seen = append(seen, "loading")
		case prev.Loading && !next.Loading:
			seen = append(seen, "loaded")
		}
	})

	wait(t, s.GetEntities(context.Background(), models.PageRequest{Size: 2}, Replace))
	unsubscribe()
	wait(t, s.GetEntities(context.Background(), models.PageRequest{Size: 2}, Replace))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"loading", "loaded"}, seen)
}

func TestStore_DispatchFromSubscriber(t *testing.T) {
	s := newTestStore(newMemResource(2))
	resets := 0
	s.Subscribe(func(prev, next State[models.Folder]) {
		if !prev.UpdateSuccess && next.UpdateSuccess {
			resets++
			s.Reset()
		}
	})

	wait(t, s.CreateEntity(context.Background(), models.Folder{Title: "x"}))

	st := s.State()
	assert.Equal(t, 1, resets)
	assert.False(t, st.UpdateSuccess)
	assert.Equal(t, uint64(1), st.Generation)
}
