package service

import (
	"fmt"
	"math"

	"docmanagement/internal/config"
	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
)

// PageLimits bounds list requests
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPageLimits returns the limits from config.limits
func DefaultPageLimits() PageLimits {
	return PageLimits{DefaultSize: config.DefaultPageSize, MaxSize: config.MaxPageSize}
}

// normalize clamps a page request into the limits. A page whose row offset
// does not fit in an int is rejected rather than wrapped into a negative OFFSET.
func (l PageLimits) normalize(req models.PageRequest) (models.PageRequest, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size <= 0 {
		req.Size = l.DefaultSize
	}
	if l.MaxSize > 0 && req.Size > l.MaxSize {
		req.Size = l.MaxSize
	}
	if req.Size > 0 && req.Page > math.MaxInt/req.Size {
		return req, &domain.ValidationError{Message: fmt.Sprintf("page %d is out of range for size %d", req.Page, req.Size)}
	}
	return req, nil
}

// newPage assembles a page response with its navigation links
func newPage[T any](req models.PageRequest, items []T, total int64) *models.Page[T] {
	return &models.Page[T]{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
		Links: models.ComputeLinks(req.Page, req.Size, total),
	}
}
