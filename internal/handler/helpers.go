package handler

import (
	"errors"
	"net/http"
	"strconv"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var maxBytesErr *http.MaxBytesError
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &maxBytesErr):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]any{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parsePageRequest reads page, size and the repeatable sort parameter.
// Missing values are left zero for the service to default.
func parsePageRequest(r *http.Request) (models.PageRequest, error) {
	var req models.PageRequest
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return req, &domain.ValidationError{Message: "invalid page: " + v}
		}
		req.Page = page
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return req, &domain.ValidationError{Message: "invalid size: " + v}
		}
		req.Size = size
	}
	for _, v := range q["sort"] {
		s, err := models.ParseSort(v)
		if err != nil {
			return req, &domain.ValidationError{Message: err.Error()}
		}
		req.Sort = append(req.Sort, s)
	}
	return req, nil
}

// idString renders an entity id for alert headers and Location
func idString(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
