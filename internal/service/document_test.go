package service

import (
	"context"
	"testing"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService() (services.DocumentService, *fakeDocumentRepo) {
	folders := newFakeFolderRepo(models.Folder{ID: models.Int64Ptr(5), Title: "Reports"})
	docs := newFakeDocumentRepo(folders)
	return NewDocumentService(docs, folders, &fakeTxManager{}, DefaultPageLimits(), discardLogger()), docs
}

func TestDocumentService_CreateDocument(t *testing.T) {
	svc, _ := newTestDocumentService()

	created, err := svc.CreateDocument(context.Background(), &models.Document{
		Title:           "Invoice",
		Data:            []byte("%PDF-1.7"),
		DataContentType: "application/pdf",
		Folder:          &models.Folder{ID: models.Int64Ptr(5)},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, "Invoice", created.Title)
	assert.Equal(t, "application/pdf", created.DataContentType)
	require.NotNil(t, created.Folder)
	assert.Equal(t, "Reports", created.Folder.Title)
}

func TestDocumentService_CreateDocument_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  *models.Document
	}{
		{
			name: "missing data",
			doc:  &models.Document{Title: "Invoice", DataContentType: "application/pdf"},
		},
		{
			name: "missing content type",
			doc:  &models.Document{Title: "Invoice", Data: []byte("x")},
		},
		{
			name: "missing title",
			doc:  &models.Document{Data: []byte("x"), DataContentType: "text/plain"},
		},
		{
			name: "unknown folder",
			doc: &models.Document{
				Title: "Invoice", Data: []byte("x"), DataContentType: "text/plain",
				Folder: &models.Folder{ID: models.Int64Ptr(99)},
			},
		},
		{
			name: "folder without id",
			doc: &models.Document{
				Title: "Invoice", Data: []byte("x"), DataContentType: "text/plain",
				Folder: &models.Folder{Title: "Reports"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestDocumentService()
			_, err := svc.CreateDocument(context.Background(), tt.doc)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestDocumentService_PatchDocument(t *testing.T) {
	svc, repo := newTestDocumentService()
	ctx := context.Background()

	created, err := svc.CreateDocument(ctx, &models.Document{
		Title: "Invoice", Data: []byte("x"), DataContentType: "text/plain",
	})
	require.NoError(t, err)

	title := "Invoice 2024"
	patched, err := svc.PatchDocument(ctx, *created.ID, &services.DocumentPatch{
		ID:    created.ID,
		Title: &title,
	})
	require.NoError(t, err)
	assert.Equal(t, title, patched.Title)
	assert.Equal(t, []byte("x"), repo.docs[*created.ID].Data)

	_, err = svc.PatchDocument(ctx, 1234, &services.DocumentPatch{ID: models.Int64Ptr(1234)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
