package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"docmanagement/internal/config"
	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DocumentForm is the editable document. Folder holds the picked folder id.
type DocumentForm struct {
	ID              string
	Title           string
	Description     string
	Data            []byte
	DataContentType string
	Uploaded        string
	Folder          string
}

// Validate implements validation.Validatable
func (f *DocumentForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&f.Data, validation.Required),
		validation.Field(&f.DataContentType, validation.Required, validation.Length(1, config.MaxContentTypeLength)),
	)
}

// Set implements Form. The blob is set with SetBlob.
func (f *DocumentForm) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "uploaded":
		f.Uploaded = value
	case "folder":
		f.Folder = value
	default:
		return &domain.ValidationError{Message: fmt.Sprintf("document has no field %q", field)}
	}
	return nil
}

// SetBlob implements BlobForm
func (f *DocumentForm) SetBlob(data []byte, contentType string) {
	f.Data = data
	f.DataContentType = contentType
}

// Fields implements Form
func (f *DocumentForm) Fields() []FormField {
	data := ""
	if len(f.Data) > 0 {
		data = fmt.Sprintf("%s, %s", f.DataContentType, ByteSize(len(f.Data)))
	}
	return []FormField{
		{Name: "id", Value: f.ID},
		{Name: "title", Value: f.Title},
		{Name: "description", Value: f.Description},
		{Name: "data", Value: data},
		{Name: "uploaded", Value: f.Uploaded},
		{Name: "folder", Value: f.Folder},
	}
}

// DocumentMapper maps documents to and from DocumentForm. The folder picker
// is filled from the folder store, which it only ever reads from.
type DocumentMapper struct {
	folders  *store.Store[models.Folder]
	pageSize int
}

// NewDocumentMapper creates a mapper resolving folders against up to
// relationPageSize folders from folders.
func NewDocumentMapper(folders *store.Store[models.Folder], relationPageSize int) *DocumentMapper {
	return &DocumentMapper{folders: folders, pageSize: relationPageSize}
}

// LoadRelations implements RelationLoader
func (m *DocumentMapper) LoadRelations(ctx context.Context) <-chan struct{} {
	return m.folders.GetEntities(ctx, models.PageRequest{
		Page: 0,
		Size: m.pageSize,
		Sort: []models.Sort{{Field: DefaultSort, Order: models.ASC}},
	}, store.Replace)
}

// RelationsLoading implements RelationLoader
func (m *DocumentMapper) RelationsLoading() bool {
	return m.folders.State().Loading
}

// Folders returns the folders the picker offers
func (m *DocumentMapper) Folders() []models.Folder {
	return m.folders.State().Entities
}

// Defaults implements FormMapper
func (m *DocumentMapper) Defaults(now time.Time, loc *time.Location) *DocumentForm {
	return &DocumentForm{Uploaded: StartOfDay(now, loc)}
}

// ToForm implements FormMapper
func (m *DocumentMapper) ToForm(doc models.Document, loc *time.Location) *DocumentForm {
	form := &DocumentForm{
		Title:           doc.Title,
		Data:            doc.Data,
		DataContentType: doc.DataContentType,
		Uploaded:        ToLocalInput(doc.Uploaded, loc),
	}
	if doc.ID != nil {
		form.ID = strconv.FormatInt(*doc.ID, 10)
	}
	if doc.Description != nil {
		form.Description = *doc.Description
	}
	if id := doc.FolderID(); id != nil {
		form.Folder = strconv.FormatInt(*id, 10)
	}
	return form
}

// FromForm implements FormMapper
func (m *DocumentMapper) FromForm(form *DocumentForm, base *models.Document, loc *time.Location) (models.Document, error) {
	var doc models.Document
	if base != nil {
		doc = *base
	}

	id, err := parseFormID("document", form.ID)
	if err != nil {
		return doc, err
	}
	uploaded, err := FromLocalInput("uploaded", form.Uploaded, loc)
	if err != nil {
		return doc, err
	}
	folder, err := m.resolveFolder(form.Folder)
	if err != nil {
		return doc, err
	}

	doc.ID = id
	doc.Title = form.Title
	doc.Description = models.StringPtr(form.Description)
	doc.Data = form.Data
	doc.DataContentType = form.DataContentType
	doc.Uploaded = uploaded
	doc.Folder = folder
	return doc, nil
}

// resolveFolder looks the picked id up among the fetched folders. Empty
// means unfiled.
func (m *DocumentMapper) resolveFolder(raw string) (*models.Folder, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &domain.UnresolvedReferenceError{Field: "folder", ID: raw}
	}

	byID := make(map[int64]models.Folder, len(m.Folders()))
	for _, f := range m.Folders() {
		if f.ID != nil {
			byID[*f.ID] = f
		}
	}

	folder, ok := byID[id]
	if !ok {
		return nil, &domain.UnresolvedReferenceError{Field: "folder", ID: raw}
	}
	return &folder, nil
}

// ByteSize renders a payload size for display
func ByteSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d bytes", n)
	}
	div, exp := int64(unit), 0
	for v := int64(n) / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
