package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"docmanagement/internal/config"
	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FolderForm is the editable folder
type FolderForm struct {
	ID          string
	Title       string
	Description string
	Created     string
}

// Validate implements validation.Validatable
func (f *FolderForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
	)
}

// Set implements Form
func (f *FolderForm) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "created":
		f.Created = value
	default:
		return &domain.ValidationError{Message: fmt.Sprintf("folder has no field %q", field)}
	}
	return nil
}

// Fields implements Form
func (f *FolderForm) Fields() []FormField {
	return []FormField{
		{Name: "id", Value: f.ID},
		{Name: "title", Value: f.Title},
		{Name: "description", Value: f.Description},
		{Name: "created", Value: f.Created},
	}
}

// FolderMapper maps folders to and from FolderForm
type FolderMapper struct{}

// Defaults implements FormMapper
func (FolderMapper) Defaults(now time.Time, loc *time.Location) *FolderForm {
	return &FolderForm{Created: StartOfDay(now, loc)}
}

// ToForm implements FormMapper
func (FolderMapper) ToForm(folder models.Folder, loc *time.Location) *FolderForm {
	form := &FolderForm{
		Title:   folder.Title,
		Created: ToLocalInput(folder.Created, loc),
	}
	if folder.ID != nil {
		form.ID = strconv.FormatInt(*folder.ID, 10)
	}
	if folder.Description != nil {
		form.Description = *folder.Description
	}
	return form
}

// FromForm implements FormMapper
func (FolderMapper) FromForm(form *FolderForm, base *models.Folder, loc *time.Location) (models.Folder, error) {
	var folder models.Folder
	if base != nil {
		folder = *base
	}

	id, err := parseFormID("folder", form.ID)
	if err != nil {
		return folder, err
	}
	created, err := FromLocalInput("created", form.Created, loc)
	if err != nil {
		return folder, err
	}

	folder.ID = id
	folder.Title = form.Title
	folder.Description = models.StringPtr(form.Description)
	folder.Created = created
	return folder, nil
}

// parseFormID coerces a form id to int64. Empty means unpersisted.
func parseFormID(entity, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid %s id %q", entity, raw)}
	}
	return &id, nil
}
