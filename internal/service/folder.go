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

// folderService implements the FolderService interface
type folderService struct {
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	limits     PageLimits
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	limits PageLimits,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		txManager:  txManager,
		limits:     limits,
		logger:     logger,
	}
}

// CreateFolder persists a new folder
func (s *folderService) CreateFolder(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	if folder.ID != nil {
		return nil, fmt.Errorf("%w: a new folder cannot already have an id", domain.ErrValidation)
	}
	if err := validateFolder(folder); err != nil {
		return nil, err
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", *folder.ID,
		"title", folder.Title,
	)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// UpdateFolder replaces an existing folder
func (s *folderService) UpdateFolder(ctx context.Context, pathID int64, folder *models.Folder) (*models.Folder, error) {
	if err := checkPathID("folder", pathID, folder.ID); err != nil {
		return nil, err
	}
	if err := validateFolder(folder); err != nil {
		return nil, err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		exists, err := s.folderRepo.Exists(txCtx, pathID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: folder %d not found", domain.ErrValidation, pathID)
		}
		return s.folderRepo.Update(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated", "id", pathID)
	return folder, nil
}

// PatchFolder overwrites only the fields present in patch
func (s *folderService) PatchFolder(ctx context.Context, pathID int64, patch *services.FolderPatch) (*models.Folder, error) {
	if err := checkPathID("folder", pathID, patch.ID); err != nil {
		return nil, err
	}

	var result *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		exists, err := s.folderRepo.Exists(txCtx, pathID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: folder %d not found", domain.ErrValidation, pathID)
		}

		folder, err := s.folderRepo.GetByID(txCtx, pathID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			folder.Title = *patch.Title
		}
		if patch.Description != nil {
			folder.Description = patch.Description
		}
		if patch.Created != nil {
			folder.Created = patch.Created
		}

		if err := validateFolder(folder); err != nil {
			return err
		}
		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}

		result = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder patched", "id", pathID)
	return result, nil
}

// DeleteFolder deletes a folder
func (s *folderService) DeleteFolder(ctx context.Context, id int64) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id)
	return nil
}

// ListFolders returns one page of folders
func (s *folderService) ListFolders(ctx context.Context, req models.PageRequest) (*models.Page[models.Folder], error) {
	req, err := s.limits.normalize(req)
	if err != nil {
		return nil, err
	}

	folders, total, err := s.folderRepo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("folders listed",
		"page", req.Page,
		"size", req.Size,
		"returned", len(folders),
		"total", total,
	)

	return newPage(req, folders, total), nil
}
