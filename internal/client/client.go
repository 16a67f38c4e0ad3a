package client

import (
	"log/slog"
	"net/http"
	"time"

	"docmanagement/internal/domain/models"
)

// Client bundles the resources the admin console works with
type Client struct {
	Folders   *Resource[models.Folder]
	Documents *Resource[models.Document]
}

// New creates resource clients rooted at apiBaseURL (e.g. http://localhost:8080)
func New(apiBaseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		Folders:   NewResource[models.Folder](apiBaseURL, "/api/folders", httpClient, logger),
		Documents: NewResource[models.Document](apiBaseURL, "/api/documents", httpClient, logger),
	}
}
