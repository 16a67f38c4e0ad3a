package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, created)
		VALUES ($1, $2, $3)
		RETURNING id
	`, r.tables.Folders)

	var id int64
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Title,
		folder.Description,
		folder.Created,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	folder.ID = &id
	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.title, f.description, f.created
		FROM %s f
		WHERE f.id = $1
	`, r.tables.Folders)

	var folder models.Folder
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.Title,
		&folder.Description,
		&folder.Created,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Exists reports whether a folder with the ID exists
func (r *PostgresFolderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Folders)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check folder exists: %w", err)
	}
	return exists, nil
}

// Update overwrites title, description and created of an existing folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	if folder.ID == nil {
		return fmt.Errorf("%w: folder id is required", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, created = $3
		WHERE id = $4
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Title,
		folder.Description,
		folder.Created,
		*folder.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", *folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a folder. Documents still pointing at it block the delete.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		if violatesForeignKey(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder %d still contains documents", id),
				ResourceType: "folder",
				ResourceID:   strconv.FormatInt(id, 10),
			}
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.logger.Debug("delete of missing folder ignored", "id", id)
	}

	return nil
}

// List returns one page of folders and the total folder count
func (r *PostgresFolderRepository) List(ctx context.Context, req models.PageRequest) ([]models.Folder, int64, error) {
	orderBy, err := orderByClause(req.Sort, folderSortColumns, "f.id")
	if err != nil {
		return nil, 0, err
	}

	executor := GetExecutor(ctx, r.pool)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Folders)
	if err := executor.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count folders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT f.id, f.title, f.description, f.created
		FROM %s f
		%s
		LIMIT $1 OFFSET $2
	`, r.tables.Folders, orderBy)

	rows, err := executor.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.Title,
			&folder.Description,
			&folder.Created,
		); err != nil {
			return nil, 0, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, total, nil
}
