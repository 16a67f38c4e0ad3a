package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/httputil"

	"github.com/google/uuid"
)

// DefaultTimeout is the default HTTP timeout for resource requests
const DefaultTimeout = 30 * time.Second

// Resource is a typed client for one REST collection, e.g. /api/folders.
type Resource[T models.Entity] struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewResource creates a client for the collection at baseURL + path.
func NewResource[T models.Entity](baseURL, path string, httpClient *http.Client, logger *slog.Logger) *Resource[T] {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Resource[T]{
		baseURL:    strings.TrimRight(baseURL, "/") + path,
		httpClient: httpClient,
		logger:     logger,
	}
}

// URL returns the collection URL
func (c *Resource[T]) URL() string {
	return c.baseURL
}

// List fetches one page. When the server sends no Link header a further page
// is assumed to exist iff this one came back full.
func (c *Resource[T]) List(ctx context.Context, req models.PageRequest) (*models.Page[T], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	if req.Size > 0 {
		q.Set("size", strconv.Itoa(req.Size))
	}
	for _, s := range req.Sort {
		q.Add("sort", s.String())
	}

	var items []T
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil, &items)
	if err != nil {
		return nil, err
	}

	total, err := models.ParseTotal(resp.Header.Get(httputil.TotalCountHeader))
	if err != nil {
		return nil, fmt.Errorf("invalid %s header: %w", httputil.TotalCountHeader, err)
	}

	var links models.Links
	if header := resp.Header.Get(httputil.LinkHeader); header != "" {
		links, err = httputil.ParseLinkHeader(header)
		if err != nil {
			return nil, fmt.Errorf("invalid %s header: %w", httputil.LinkHeader, err)
		}
	} else if req.Size > 0 && len(items) >= req.Size {
		links = models.Links{Next: req.Page + 1, HasNext: true}
	}

	if items == nil {
		items = []T{}
	}
	return &models.Page[T]{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
		Links: links,
	}, nil
}

// Get fetches one entity
func (c *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var entity T
	if _, err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create posts a new entity and returns the stored version
func (c *Resource[T]) Create(ctx context.Context, entity T) (*T, error) {
	var created T
	if _, err := c.do(ctx, http.MethodPost, c.baseURL, entity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces an entity (PUT). The entity must carry its id.
func (c *Resource[T]) Update(ctx context.Context, entity T) (*T, error) {
	id := entity.EntityID()
	if id == nil {
		return nil, &domain.ValidationError{Message: "cannot update an entity without id"}
	}
	var updated T
	if _, err := c.do(ctx, http.MethodPut, c.itemURL(*id), entity, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Patch sends a partial update (PATCH); nil fields in patch are left alone
// by the server.
func (c *Resource[T]) Patch(ctx context.Context, id int64, patch any) (*T, error) {
	var patched T
	if _, err := c.do(ctx, http.MethodPatch, c.itemURL(id), patch, &patched); err != nil {
		return nil, err
	}
	return &patched, nil
}

// Delete removes an entity. Deleting an id that is already gone succeeds.
//
// The server already answers 204 for a missing id, but a proxy or an older
// server may still say 404. Either way the entity is absent afterwards, and
// the list view that issued the delete reloads and would otherwise show an
// error for a row that has disappeared.
func (c *Resource[T]) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (c *Resource[T]) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// do executes one request and decodes a 2xx body into out (when non-nil).
// Failures come back as domain errors.
func (c *Resource[T]) do(ctx context.Context, method, target string, body, out any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(httputil.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("request failed",
			"method", method,
			"url", target,
			"request_id", requestID,
			"error", err,
		)
		return nil, &domain.NetworkError{Message: fmt.Sprintf("%s %s: %v", method, target, err)}
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("failed to read response: %v", err), Status: resp.StatusCode}
	}

	c.logger.Debug("request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return resp, nil
}

// problem is the subset of an RFC 7807 body the console shows
type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// classify maps a non-2xx response onto the domain error taxonomy
func classify(status int, body []byte) error {
	message := http.StatusText(status)
	var p problem
	if json.Unmarshal(body, &p) == nil {
		switch {
		case p.Detail != "":
			message = p.Detail
		case p.Title != "":
			message = p.Title
		}
	}

	switch {
	case status == http.StatusNotFound:
		return &domain.NotFoundError{Message: message}
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return &domain.ValidationError{Message: message}
	case status >= http.StatusInternalServerError:
		return &domain.NetworkError{Message: message, Status: status}
	default:
		return fmt.Errorf("unexpected status %d: %s", status, message)
	}
}
