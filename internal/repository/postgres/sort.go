package postgres

import (
	"fmt"
	"strings"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
)

// folderSortColumns maps API sort fields to folder columns
var folderSortColumns = map[string]string{
	"id":          "f.id",
	"title":       "f.title",
	"description": "f.description",
	"created":     "f.created",
}

// documentSortColumns maps API sort fields to document columns
var documentSortColumns = map[string]string{
	"id":          "d.id",
	"title":       "d.title",
	"description": "d.description",
	"data":        "d.data",
	"uploaded":    "d.uploaded",
}

// orderByClause renders an ORDER BY for sorts using only whitelisted columns.
// idColumn is appended as a tie-break so pages never overlap.
func orderByClause(sorts []models.Sort, columns map[string]string, idColumn string) (string, error) {
	parts := make([]string, 0, len(sorts)+1)
	hasID := false

	for _, s := range sorts {
		column, ok := columns[s.Field]
		if !ok {
			return "", fmt.Errorf("%w: cannot sort by %q", domain.ErrValidation, s.Field)
		}
		dir := "ASC"
		if s.Order == models.DESC {
			dir = "DESC"
		}
		// NULLs sort like the smallest value, matching ascending id order
		nulls := "NULLS FIRST"
		if dir == "DESC" {
			nulls = "NULLS LAST"
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", column, dir, nulls))
		if column == idColumn {
			hasID = true
		}
	}

	if !hasID {
		parts = append(parts, idColumn+" ASC")
	}

	return "ORDER BY " + strings.Join(parts, ", "), nil
}
