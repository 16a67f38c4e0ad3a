package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs fn inline and counts calls
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

type fakeFolderRepo struct {
	nextID  int64
	folders map[int64]models.Folder
	lastReq models.PageRequest
}

func newFakeFolderRepo(folders ...models.Folder) *fakeFolderRepo {
	r := &fakeFolderRepo{folders: map[int64]models.Folder{}}
	for _, f := range folders {
		r.folders[*f.ID] = f
		if *f.ID > r.nextID {
			r.nextID = *f.ID
		}
	}
	return r
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	r.nextID++
	id := r.nextID
	folder.ID = &id
	r.folders[id] = *folder
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id int64) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *fakeFolderRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.folders[id]
	return ok, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if _, ok := r.folders[*folder.ID]; !ok {
		return fmt.Errorf("folder %d: %w", *folder.ID, domain.ErrNotFound)
	}
	r.folders[*folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id int64) error {
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) List(_ context.Context, req models.PageRequest) ([]models.Folder, int64, error) {
	r.lastReq = req
	ids := make([]int64, 0, len(r.folders))
	for id := range r.folders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []models.Folder{}
	for i := req.Offset(); i < len(ids) && len(out) < req.Size; i++ {
		out = append(out, r.folders[ids[i]])
	}
	return out, int64(len(ids)), nil
}

type fakeDocumentRepo struct {
	nextID  int64
	docs    map[int64]models.Document
	folders *fakeFolderRepo
}

func newFakeDocumentRepo(folders *fakeFolderRepo) *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[int64]models.Document{}, folders: folders}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	r.nextID++
	id := r.nextID
	doc.ID = &id
	r.docs[id] = *doc
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	// Mimic the eager join
	if d.Folder != nil && d.Folder.ID != nil {
		f, err := r.folders.GetByID(ctx, *d.Folder.ID)
		if err == nil {
			d.Folder = f
		}
	}
	return &d, nil
}

func (r *fakeDocumentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.docs[id]
	return ok, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *models.Document) error {
	if _, ok := r.docs[*doc.ID]; !ok {
		return fmt.Errorf("document %d: %w", *doc.ID, domain.ErrNotFound)
	}
	r.docs[*doc.ID] = *doc
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id int64) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) List(_ context.Context, req models.PageRequest) ([]models.Document, int64, error) {
	out := []models.Document{}
	for id := int64(1); id <= r.nextID; id++ {
		if d, ok := r.docs[id]; ok {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}
