package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Order is a sort direction.
type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Toggle returns the opposite direction.
func (o Order) Toggle() Order {
	if o == ASC {
		return DESC
	}
	return ASC
}

// ParseOrder parses a direction case-insensitively; anything else is ASC.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(DESC)) {
		return DESC
	}
	return ASC
}

// Sort is one sort key.
type Sort struct {
	Field string
	Order Order
}

// String renders the wire form "field,order".
func (s Sort) String() string {
	return fmt.Sprintf("%s,%s", s.Field, s.Order)
}

// ParseSort parses the wire form "field,order" (order optional).
func ParseSort(s string) (Sort, error) {
	field, order, _ := strings.Cut(s, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return Sort{}, fmt.Errorf("empty sort field in %q", s)
	}
	return Sort{Field: field, Order: ParseOrder(order)}, nil
}

// PageRequest selects a zero-based page of a collection.
type PageRequest struct {
	Page int
	Size int
	Sort []Sort
}

// Offset returns the row offset of the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Links is pagination metadata. Indices are zero-based page numbers and are
// only meaningful when the matching Has flag is set.
type Links struct {
	First   int  `json:"first"`
	Prev    int  `json:"prev"`
	Next    int  `json:"next"`
	Last    int  `json:"last"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// ComputeLinks derives pagination links for page of size over total rows.
func ComputeLinks(page, size int, total int64) Links {
	last := 0
	if size > 0 && total > 0 {
		last = int((total - 1) / int64(size))
	}
	l := Links{First: 0, Last: last}
	if page > 0 {
		l.HasPrev = true
		l.Prev = page - 1
	}
	if page < last {
		l.HasNext = true
		l.Next = page + 1
	}
	return l
}

// Page is one bounded, ordered slice of a collection.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
	Links Links
}

// ParseTotal parses an X-Total-Count style header value; empty means unknown (-1).
func ParseTotal(v string) (int64, error) {
	if v == "" {
		return -1, nil
	}
	return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
}
