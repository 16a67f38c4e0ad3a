package models

import (
	"time"
)

type Document struct {
	ID              *int64     `json:"id,omitempty" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     *string    `json:"description,omitempty" db:"description"`
	Data            []byte     `json:"data,omitempty" db:"data"` // base64 on the wire
	DataContentType string     `json:"dataContentType,omitempty" db:"data_content_type"`
	Uploaded        *time.Time `json:"uploaded,omitempty" db:"uploaded"`
	Folder          *Folder    `json:"folder,omitempty"` // nil = unfiled
}

// EntityID implements Entity
func (d Document) EntityID() *int64 { return d.ID }

// FolderID returns the id of the referenced folder, or nil when unfiled.
func (d Document) FolderID() *int64 {
	if d.Folder == nil {
		return nil
	}
	return d.Folder.ID
}
