package service

import (
	"context"
	"fmt"
	"log/slog"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/repositories"
	"docmanagement/internal/domain/services"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	limits     PageLimits
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	limits PageLimits,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		limits:     limits,
		logger:     logger,
	}
}

// CreateDocument persists a new document
func (s *documentService) CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error) {
	if doc.ID != nil {
		return nil, fmt.Errorf("%w: a new document cannot already have an id", domain.ErrValidation)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var result *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.validateFolderRef(txCtx, doc); err != nil {
			return err
		}
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}
		// Re-read so the response embeds the full folder
		created, err := s.docRepo.GetByID(txCtx, *doc.ID)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", *result.ID,
		"title", result.Title,
		"content_type", result.DataContentType,
		"bytes", len(result.Data),
		"folder_id", result.FolderID(),
	)

	return result, nil
}

// GetDocument retrieves a document with its folder
func (s *documentService) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// UpdateDocument replaces an existing document
func (s *documentService) UpdateDocument(ctx context.Context, pathID int64, doc *models.Document) (*models.Document, error) {
	if err := checkPathID("document", pathID, doc.ID); err != nil {
		return nil, err
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var result *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		exists, err := s.docRepo.Exists(txCtx, pathID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: document %d not found", domain.ErrValidation, pathID)
		}
		if err := s.validateFolderRef(txCtx, doc); err != nil {
			return err
		}
		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}
		updated, err := s.docRepo.GetByID(txCtx, pathID)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated", "id", pathID, "folder_id", result.FolderID())
	return result, nil
}

// PatchDocument overwrites only the fields present in patch
func (s *documentService) PatchDocument(ctx context.Context, pathID int64, patch *services.DocumentPatch) (*models.Document, error) {
	if err := checkPathID("document", pathID, patch.ID); err != nil {
		return nil, err
	}

	var result *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		exists, err := s.docRepo.Exists(txCtx, pathID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: document %d not found", domain.ErrValidation, pathID)
		}

		doc, err := s.docRepo.GetByID(txCtx, pathID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			doc.Title = *patch.Title
		}
		if patch.Description != nil {
			doc.Description = patch.Description
		}
		if patch.Data != nil {
			doc.Data = patch.Data
		}
		if patch.DataContentType != nil {
			doc.DataContentType = *patch.DataContentType
		}
		if patch.Uploaded != nil {
			doc.Uploaded = patch.Uploaded
		}

		if err := validateDocument(doc); err != nil {
			return err
		}
		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}

		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document patched", "id", pathID)
	return result, nil
}

// DeleteDocument deletes a document
func (s *documentService) DeleteDocument(ctx context.Context, id int64) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

// ListDocuments returns one page of documents
func (s *documentService) ListDocuments(ctx context.Context, req models.PageRequest) (*models.Page[models.Document], error) {
	req, err := s.limits.normalize(req)
	if err != nil {
		return nil, err
	}

	docs, total, err := s.docRepo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("documents listed",
		"page", req.Page,
		"size", req.Size,
		"returned", len(docs),
		"total", total,
	)

	return newPage(req, docs, total), nil
}

// validateFolderRef rejects references to folders the server does not know.
// Only the folder ID is trusted; the embedded title is ignored.
func (s *documentService) validateFolderRef(ctx context.Context, doc *models.Document) error {
	if doc.Folder == nil {
		return nil
	}
	if doc.Folder.ID == nil {
		return fmt.Errorf("%w: folder reference has no id", domain.ErrValidation)
	}

	exists, err := s.folderRepo.Exists(ctx, *doc.Folder.ID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: folder %d does not exist", domain.ErrValidation, *doc.Folder.ID)
	}
	return nil
}
