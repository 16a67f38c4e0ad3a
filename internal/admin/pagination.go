package admin

import (
	"net/url"
	"strconv"

	"docmanagement/internal/domain/models"
)

// DefaultSort is the column lists start sorted by
const DefaultSort = "id"

// PaginationState is the list view's cursor. ActivePage is one-based; the
// resource is asked for ActivePage-1.
type PaginationState struct {
	ActivePage   int
	ItemsPerPage int
	Sort         string
	Order        models.Order
}

// PaginationFromQuery reads page, size and sort=field,order from the list
// location, falling back to page 1 of itemsPerPage rows sorted by id ascending.
func PaginationFromQuery(q url.Values, itemsPerPage int) PaginationState {
	p := PaginationState{
		ActivePage:   1,
		ItemsPerPage: itemsPerPage,
		Sort:         DefaultSort,
		Order:        models.ASC,
	}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.ActivePage = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 0 {
		p.ItemsPerPage = v
	}
	if raw := q.Get("sort"); raw != "" {
		if s, err := models.ParseSort(raw); err == nil {
			p.Sort, p.Order = s.Field, s.Order
		}
	}
	return p
}

// Query renders the state into list query parameters
func (p PaginationState) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.ActivePage))
	q.Set("size", strconv.Itoa(p.ItemsPerPage))
	q.Set("sort", models.Sort{Field: p.Sort, Order: p.Order}.String())
	return q
}

// PageRequest is the request for the active page
func (p PaginationState) PageRequest() models.PageRequest {
	return models.PageRequest{
		Page: p.ActivePage - 1,
		Size: p.ItemsPerPage,
		Sort: []models.Sort{{Field: p.Sort, Order: p.Order}},
	}
}

// SortBy returns the state after clicking column: the same column flips the
// order, a new column starts ascending. Either way paging restarts at 1.
func (p PaginationState) SortBy(column string) PaginationState {
	if column == p.Sort {
		p.Order = p.Order.Toggle()
	} else {
		p.Sort = column
		p.Order = models.ASC
	}
	p.ActivePage = 1
	return p
}
