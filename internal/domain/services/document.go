package services

import (
	"context"
	"time"

	"docmanagement/internal/domain/models"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument persists a new document; the document must not carry an ID
	CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error)

	// GetDocument retrieves a document with its folder
	GetDocument(ctx context.Context, id int64) (*models.Document, error)

	// UpdateDocument replaces an existing document; pathID must match the body ID
	UpdateDocument(ctx context.Context, pathID int64, doc *models.Document) (*models.Document, error)

	// PatchDocument overwrites only the fields present in patch
	PatchDocument(ctx context.Context, pathID int64, patch *DocumentPatch) (*models.Document, error)

	// DeleteDocument deletes a document; deleting a missing document succeeds
	DeleteDocument(ctx context.Context, id int64) error

	// ListDocuments returns one page of documents with their folders
	ListDocuments(ctx context.Context, req models.PageRequest) (*models.Page[models.Document], error)
}

// DocumentPatch is a partial document update. Nil fields are left untouched;
// the folder reference is not patchable.
type DocumentPatch struct {
	ID              *int64     `json:"id"`
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Data            []byte     `json:"data,omitempty"`
	DataContentType *string    `json:"dataContentType,omitempty"`
	Uploaded        *time.Time `json:"uploaded,omitempty"`
}
