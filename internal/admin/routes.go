package admin

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"docmanagement/internal/domain"
)

// Entity route prefixes
const (
	FolderEntity   = "folder"
	DocumentEntity = "document"
)

// View is the kind of screen a route opens
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewCreate
	ViewEdit
	ViewDelete
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	case ViewCreate:
		return "create"
	case ViewEdit:
		return "edit"
	case ViewDelete:
		return "delete"
	default:
		return "list"
	}
}

// Route is a parsed navigational location such as /folder/7/edit?page=2
type Route struct {
	Entity string
	View   View
	ID     int64 // zero for list and create
	Query  url.Values
}

// ParseRoute parses a location. Recognised forms are /<entity>,
// /<entity>/new, /<entity>/{id}, /<entity>/{id}/edit and /<entity>/{id}/delete.
func ParseRoute(location string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return Route{}, &domain.ValidationError{Message: fmt.Sprintf("invalid location %q", location)}
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	r := Route{Entity: parts[0], Query: u.Query()}
	if r.Entity != FolderEntity && r.Entity != DocumentEntity {
		return Route{}, &domain.NotFoundError{Message: fmt.Sprintf("no route for %q", u.Path)}
	}

	switch {
	case len(parts) == 1:
		r.View = ViewList
		return r, nil
	case len(parts) == 2 && parts[1] == "new":
		r.View = ViewCreate
		return r, nil
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return Route{}, &domain.ValidationError{Message: fmt.Sprintf("invalid %s id %q", r.Entity, parts[1])}
	}
	r.ID = id

	switch {
	case len(parts) == 2:
		r.View = ViewDetail
	case len(parts) == 3 && parts[2] == "edit":
		r.View = ViewEdit
	case len(parts) == 3 && parts[2] == "delete":
		r.View = ViewDelete
	default:
		return Route{}, &domain.NotFoundError{Message: fmt.Sprintf("no route for %q", u.Path)}
	}
	return r, nil
}

// String renders the route back into a location
func (r Route) String() string {
	var path string
	switch r.View {
	case ViewList:
		path = "/" + r.Entity
	case ViewCreate:
		path = "/" + r.Entity + "/new"
	case ViewDetail:
		path = fmt.Sprintf("/%s/%d", r.Entity, r.ID)
	case ViewEdit:
		path = fmt.Sprintf("/%s/%d/edit", r.Entity, r.ID)
	case ViewDelete:
		path = fmt.Sprintf("/%s/%d/delete", r.Entity, r.ID)
	}
	if len(r.Query) > 0 {
		path += "?" + r.Query.Encode()
	}
	return path
}

// ListLocation returns the list route of entity carrying query
func ListLocation(entity string, query url.Values) string {
	return Route{Entity: entity, View: ViewList, Query: query}.String()
}

// Navigator moves the user to another location
type Navigator interface {
	Navigate(location string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(location string)

// Navigate implements Navigator
func (f NavigatorFunc) Navigate(location string) { f(location) }
