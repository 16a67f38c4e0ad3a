package repositories

import (
	"context"

	"docmanagement/internal/domain/models"
)

// DocumentRepository defines data access operations for documents.
// Reads join the referenced folder.
type DocumentRepository interface {
	// Create inserts a document and assigns its ID
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID with its folder
	GetByID(ctx context.Context, id int64) (*models.Document, error)

	// Exists reports whether a document with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// Update overwrites every column of an existing document
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document; deleting a missing ID is not an error
	Delete(ctx context.Context, id int64) error

	// List returns one page of documents with their folders
	List(ctx context.Context, req models.PageRequest) ([]models.Document, int64, error)
}
