package models

import (
	"time"
)

// Folder groups documents. A folder owns nothing: documents only point at it.
type Folder struct {
	ID          *int64     `json:"id,omitempty" db:"id"` // nil until persisted
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Created     *time.Time `json:"created,omitempty" db:"created"`
}

// EntityID implements Entity
func (f Folder) EntityID() *int64 { return f.ID }
