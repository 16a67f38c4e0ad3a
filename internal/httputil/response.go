package httputil

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
)

// Alert headers carry the i18n key and parameter of the notification the
// admin console shows after a mutation.
const (
	AlertHeader       = "X-Docmanagement-Alert"
	AlertParamsHeader = "X-Docmanagement-Params"
)

const problemContentType = "application/problem+json"

// problemTypes maps statuses to RFC 7807 type URIs; others use about:blank
var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1",
	http.StatusNotFound:              "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4",
	http.StatusConflict:              "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.8",
	http.StatusRequestEntityTooLarge: "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.11",
	http.StatusInternalServerError:   "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1",
	http.StatusBadGateway:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.3",
	http.StatusServiceUnavailable:    "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.4",
}

// RespondJSON marshals data before writing headers so an encoding failure
// still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, "application/json", payload)
}

// ProblemDetail is an RFC 7807 problem. Extra members are flattened into
// the top-level object.
type ProblemDetail struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Extra    map[string]any `json:"-"`
}

// MarshalJSON implements json.Marshaler
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+5)
	maps.Copy(m, p.Extra)
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	return json.Marshal(m)
}

// RespondError writes an RFC 7807 problem for status
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes an RFC 7807 problem carrying extra members,
// e.g. the id of the resource a conflict is about.
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]any) {
	typ, ok := problemTypes[status]
	if !ok {
		typ = "about:blank"
	}
	payload, err := json.Marshal(ProblemDetail{
		Type:   typ,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Extra:  extras,
	})
	if err != nil {
		write(w, http.StatusInternalServerError, "text/plain", []byte("internal server error"))
		return
	}
	write(w, status, problemContentType, payload)
}

// SetAlert sets the alert headers, e.g. "docManagementApp.folder.created"
// with the entity id as parameter.
func SetAlert(w http.ResponseWriter, appName, entity, action, param string) {
	w.Header().Set(AlertHeader, fmt.Sprintf("%s.%s.%s", appName, entity, action))
	w.Header().Set(AlertParamsHeader, url.QueryEscape(param))
}

func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
