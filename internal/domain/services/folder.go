package services

import (
	"context"
	"time"

	"docmanagement/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder persists a new folder; the folder must not carry an ID
	CreateFolder(ctx context.Context, folder *models.Folder) (*models.Folder, error)

	// GetFolder retrieves a folder
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)

	// UpdateFolder replaces an existing folder; pathID must match the body ID
	UpdateFolder(ctx context.Context, pathID int64, folder *models.Folder) (*models.Folder, error)

	// PatchFolder overwrites only the fields present in patch
	PatchFolder(ctx context.Context, pathID int64, patch *FolderPatch) (*models.Folder, error)

	// DeleteFolder deletes a folder; deleting a missing folder succeeds
	DeleteFolder(ctx context.Context, id int64) error

	// ListFolders returns one page of folders
	ListFolders(ctx context.Context, req models.PageRequest) (*models.Page[models.Folder], error)
}

// FolderPatch is a partial folder update. Nil fields are left untouched.
type FolderPatch struct {
	ID          *int64     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
}
