package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeResource keeps entities ordered by id and records what was submitted
type fakeResource[T models.Entity] struct {
	mu        sync.Mutex
	items     []T
	nextID    int64
	withID    func(T, int64) T
	requests  []models.PageRequest
	created   []T
	updated   []T
	deleted   []int64
	updateErr error
	listErrs  []error // returned by successive List calls before they succeed
}

func newFakeResource[T models.Entity](withID func(T, int64) T, items ...T) *fakeResource[T] {
	r := &fakeResource[T]{withID: withID}
	for _, it := range items {
		r.items = append(r.items, it)
		if id := it.EntityID(); id != nil && *id > r.nextID {
			r.nextID = *id
		}
	}
	return r
}

func (r *fakeResource[T]) List(_ context.Context, req models.PageRequest) (*models.Page[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if len(r.listErrs) > 0 {
		err := r.listErrs[0]
		r.listErrs = r.listErrs[1:]
		return nil, err
	}

	ordered := slices.Clone(r.items)
	if len(req.Sort) > 0 && req.Sort[0].Order == models.DESC {
		slices.Reverse(ordered)
	}

	items := []T{}
	for i := req.Offset(); i < len(ordered) && len(items) < req.Size; i++ {
		items = append(items, ordered[i])
	}
	total := int64(len(ordered))
	return &models.Page[T]{
		Items: items, Page: req.Page, Size: req.Size, Total: total,
		Links: models.ComputeLinks(req.Page, req.Size, total),
	}, nil
}

func (r *fakeResource[T]) Get(_ context.Context, id int64) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if eid := it.EntityID(); eid != nil && *eid == id {
			return &it, nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("entity %d not found", id)}
}

func (r *fakeResource[T]) Create(_ context.Context, entity T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entity = r.withID(entity, r.nextID)
	r.created = append(r.created, entity)
	r.items = append(r.items, entity)
	return &entity, nil
}

func (r *fakeResource[T]) Update(_ context.Context, entity T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, entity)
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i, it := range r.items {
		if *it.EntityID() == *entity.EntityID() {
			r.items[i] = entity
		}
	}
	return &entity, nil
}

func (r *fakeResource[T]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	r.items = slices.DeleteFunc(r.items, func(it T) bool {
		return *it.EntityID() == id
	})
	return nil
}

func (r *fakeResource[T]) lastRequest() models.PageRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func folderWithID(f models.Folder, id int64) models.Folder {
	f.ID = models.Int64Ptr(id)
	return f
}

func documentWithID(d models.Document, id int64) models.Document {
	d.ID = models.Int64Ptr(id)
	return d
}

func numberedFolders(n int) []models.Folder {
	out := make([]models.Folder, n)
	for i := range out {
		out[i] = models.Folder{ID: models.Int64Ptr(int64(i + 1)), Title: fmt.Sprintf("folder %d", i+1)}
	}
	return out
}

func newFolderStore(res *fakeResource[models.Folder]) *store.Store[models.Folder] {
	return store.New[models.Folder](FolderEntity, res, discardLogger())
}

func newDocumentStore(res *fakeResource[models.Document]) *store.Store[models.Document] {
	return store.New[models.Document](DocumentEntity, res, discardLogger())
}

// recorder is a Navigator remembering every location
type recorder struct {
	mu        sync.Mutex
	locations []string
}

func (r *recorder) Navigate(location string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, location)
}

func (r *recorder) visited() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.locations)
}
