package service

import (
	"fmt"

	"docmanagement/internal/config"
	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validateFolder checks the required folder fields
func validateFolder(folder *models.Folder) error {
	err := validation.ValidateStruct(folder,
		validation.Field(&folder.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateDocument checks the required document fields. The blob and its
// MIME type travel together.
func validateDocument(doc *models.Document) error {
	err := validation.ValidateStruct(doc,
		validation.Field(&doc.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&doc.Data, validation.Required),
		validation.Field(&doc.DataContentType,
			validation.Required,
			validation.Length(1, config.MaxContentTypeLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// checkPathID applies the id rules shared by PUT and PATCH
func checkPathID(entity string, pathID int64, bodyID *int64) error {
	if bodyID == nil {
		return fmt.Errorf("%w: invalid %s id: id is null", domain.ErrValidation, entity)
	}
	if *bodyID != pathID {
		return fmt.Errorf("%w: invalid %s id: path id %d does not match body id %d",
			domain.ErrValidation, entity, pathID, *bodyID)
	}
	return nil
}
