package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// selectDocument is the eager select shared by GetByID and List
func (r *PostgresDocumentRepository) selectDocument() string {
	return fmt.Sprintf(`
		SELECT d.id, d.title, d.description, d.data, d.data_content_type, d.uploaded,
		       f.id, f.title, f.description, f.created
		FROM %s d
		LEFT JOIN %s f ON f.id = d.folder_id
	`, r.tables.Documents, r.tables.Folders)
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, data, data_content_type, uploaded, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.tables.Documents)

	var id int64
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Title,
		doc.Description,
		doc.Data,
		doc.DataContentType,
		doc.Uploaded,
		doc.FolderID(),
	).Scan(&id)
	if err != nil {
		if violatesForeignKey(err) {
			return fmt.Errorf("%w: referenced folder does not exist", domain.ErrValidation)
		}
		return fmt.Errorf("create document: %w", err)
	}

	doc.ID = &id
	return nil
}

// GetByID retrieves a document by ID together with its folder
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := r.selectDocument() + ` WHERE d.id = $1`

	executor := GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// Exists reports whether a document with the ID exists
func (r *PostgresDocumentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Documents)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check document exists: %w", err)
	}
	return exists, nil
}

// Update overwrites every column of an existing document
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	if doc.ID == nil {
		return fmt.Errorf("%w: document id is required", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, data = $3, data_content_type = $4, uploaded = $5, folder_id = $6
		WHERE id = $7
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Title,
		doc.Description,
		doc.Data,
		doc.DataContentType,
		doc.Uploaded,
		doc.FolderID(),
		*doc.ID,
	)
	if err != nil {
		if violatesForeignKey(err) {
			return fmt.Errorf("%w: referenced folder does not exist", domain.ErrValidation)
		}
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", *doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.logger.Debug("delete of missing document ignored", "id", id)
	}

	return nil
}

// List returns one page of documents with their folders and the total count
func (r *PostgresDocumentRepository) List(ctx context.Context, req models.PageRequest) ([]models.Document, int64, error) {
	orderBy, err := orderByClause(req.Sort, documentSortColumns, "d.id")
	if err != nil {
		return nil, 0, err
	}

	executor := GetExecutor(ctx, r.pool)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Documents)
	if err := executor.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := r.selectDocument() + orderBy + ` LIMIT $1 OFFSET $2`

	rows, err := executor.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, total, nil
}

// scanDocument scans one row of selectDocument. The folder columns are all
// NULL for unfiled documents.
func scanDocument(row pgx.Row) (*models.Document, error) {
	var (
		doc         models.Document
		folderID    *int64
		folderTitle *string
		folderDesc  *string
		folderCtime *time.Time
	)

	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Description,
		&doc.Data,
		&doc.DataContentType,
		&doc.Uploaded,
		&folderID,
		&folderTitle,
		&folderDesc,
		&folderCtime,
	)
	if err != nil {
		return nil, err
	}

	if folderID != nil {
		doc.Folder = &models.Folder{
			ID:          folderID,
			Description: folderDesc,
			Created:     folderCtime,
		}
		if folderTitle != nil {
			doc.Folder.Title = *folderTitle
		}
	}

	return &doc, nil
}
