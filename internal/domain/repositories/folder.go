package repositories

import (
	"context"

	"docmanagement/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder and assigns its ID
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id int64) (*models.Folder, error)

	// Exists reports whether a folder with the ID exists
	Exists(ctx context.Context, id int64) (bool, error)

	// Update overwrites every column of an existing folder
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes a folder; deleting a missing ID is not an error
	Delete(ctx context.Context, id int64) error

	// List returns one page of folders
	List(ctx context.Context, req models.PageRequest) ([]models.Folder, int64, error)
}
