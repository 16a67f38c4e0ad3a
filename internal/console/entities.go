package console

import (
	"fmt"
	"strconv"
	"time"

	"docmanagement/internal/admin"
	"docmanagement/internal/domain/models"
)

// column is one list column. Sortable columns use name as the sort field.
type column[T models.Entity] struct {
	name     string
	sortable bool
	value    func(T, *time.Location) string
}

// entityInfo describes how one entity type is shown
type entityInfo[T models.Entity] struct {
	name    string
	plural  string
	columns []column[T]
}

func (e entityInfo[T]) sortable(name string) bool {
	for _, c := range e.columns {
		if c.name == name {
			return c.sortable
		}
	}
	return false
}

func (e entityInfo[T]) fields(entity T, loc *time.Location) []admin.FormField {
	out := make([]admin.FormField, len(e.columns))
	for i, c := range e.columns {
		out[i] = admin.FormField{Name: c.name, Value: c.value(entity, loc)}
	}
	return out
}

var folderInfo = entityInfo[models.Folder]{
	name:   admin.FolderEntity,
	plural: "Folders",
	columns: []column[models.Folder]{
		{name: "id", sortable: true, value: func(f models.Folder, _ *time.Location) string { return formatID(f.ID) }},
		{name: "title", sortable: true, value: func(f models.Folder, _ *time.Location) string { return f.Title }},
		{name: "description", sortable: true, value: func(f models.Folder, _ *time.Location) string { return deref(f.Description) }},
		{name: "created", sortable: true, value: func(f models.Folder, loc *time.Location) string {
			return admin.FormatTimestamp(f.Created, loc)
		}},
	},
}

var documentInfo = entityInfo[models.Document]{
	name:   admin.DocumentEntity,
	plural: "Documents",
	columns: []column[models.Document]{
		{name: "id", sortable: true, value: func(d models.Document, _ *time.Location) string { return formatID(d.ID) }},
		{name: "title", sortable: true, value: func(d models.Document, _ *time.Location) string { return d.Title }},
		{name: "description", sortable: true, value: func(d models.Document, _ *time.Location) string { return deref(d.Description) }},
		{name: "data", sortable: true, value: func(d models.Document, _ *time.Location) string {
			if len(d.Data) == 0 {
				return ""
			}
			return fmt.Sprintf("%s, %s", d.DataContentType, admin.ByteSize(len(d.Data)))
		}},
		{name: "uploaded", sortable: true, value: func(d models.Document, loc *time.Location) string {
			return admin.FormatTimestamp(d.Uploaded, loc)
		}},
		{name: "folder", value: func(d models.Document, _ *time.Location) string {
			if d.Folder == nil {
				return ""
			}
			if d.Folder.Title != "" {
				return d.Folder.Title
			}
			return formatID(d.Folder.ID)
		}},
	},
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
