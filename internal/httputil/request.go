package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"docmanagement/internal/config"
	"docmanagement/internal/domain"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at config.MaxRequestBodyBytes since documents carry
// their blob inline.
//
// A body over the cap comes back as the *http.MaxBytesError itself so the
// caller can answer 413; anything else that fails to decode is a
// *domain.ValidationError.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return &domain.ValidationError{Message: fmt.Sprintf("invalid request body: %v", err)}
	}

	return nil
}

// PathID parses the {id} path value as a positive int64
func PathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, fmt.Errorf("id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
