package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docmanagement/internal/config"
	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/services"
	"docmanagement/internal/httputil"
)

type stubFolderService struct {
	folders  map[int64]models.Folder
	lastList models.PageRequest
	deleteFn func(id int64) error
}

func (s *stubFolderService) CreateFolder(_ context.Context, f *models.Folder) (*models.Folder, error) {
	if f.ID != nil {
		return nil, &domain.ValidationError{Message: "a new folder cannot already have an id"}
	}
	f.ID = models.Int64Ptr(int64(len(s.folders) + 1))
	s.folders[*f.ID] = *f
	return f, nil
}

func (s *stubFolderService) GetFolder(_ context.Context, id int64) (*models.Folder, error) {
	f, ok := s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (s *stubFolderService) UpdateFolder(_ context.Context, pathID int64, f *models.Folder) (*models.Folder, error) {
	if f.ID == nil || *f.ID != pathID {
		return nil, fmt.Errorf("%w: invalid id", domain.ErrValidation)
	}
	s.folders[pathID] = *f
	return f, nil
}

func (s *stubFolderService) PatchFolder(_ context.Context, pathID int64, p *services.FolderPatch) (*models.Folder, error) {
	f := s.folders[pathID]
	if p.Title != nil {
		f.Title = *p.Title
	}
	return &f, nil
}

func (s *stubFolderService) DeleteFolder(_ context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(id)
	}
	delete(s.folders, id)
	return nil
}

func (s *stubFolderService) ListFolders(_ context.Context, req models.PageRequest) (*models.Page[models.Folder], error) {
	s.lastList = req
	if req.Size == 0 {
		req.Size = 20
	}
	items := []models.Folder{}
	for id := int64(1); id <= int64(len(s.folders)); id++ {
		items = append(items, s.folders[id])
	}
	total := int64(45)
	return &models.Page[models.Folder]{
		Items: items, Page: req.Page, Size: req.Size, Total: total,
		Links: models.ComputeLinks(req.Page, req.Size, total),
	}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestMux(svc *stubFolderService) *http.ServeMux {
	return newMux(svc, newStubDocumentService())
}

func newMux(folders services.FolderService, documents services.DocumentService) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	RegisterRoutes(mux,
		NewFolderHandler(folders, "docManagementApp", logger),
		NewDocumentHandler(documents, "docManagementApp", logger),
		NewHealthHandler(okPinger{}, logger),
	)
	return mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestFolderHandler_List(t *testing.T) {
	svc := &stubFolderService{folders: map[int64]models.Folder{
		1: {ID: models.Int64Ptr(1), Title: "Reports"},
	}}
	rec := serve(newTestMux(svc), http.MethodGet, "/api/folders?page=1&size=20&sort=title,desc", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get(httputil.TotalCountHeader); got != "45" {
		t.Errorf("X-Total-Count = %q", got)
	}
	links, err := httputil.ParseLinkHeader(rec.Header().Get(httputil.LinkHeader))
	if err != nil {
		t.Fatal(err)
	}
	if !links.HasNext || links.Next != 2 || !links.HasPrev || links.Prev != 0 {
		t.Errorf("links = %+v", links)
	}
	want := models.PageRequest{Page: 1, Size: 20, Sort: []models.Sort{{Field: "title", Order: models.DESC}}}
	if fmt.Sprint(svc.lastList) != fmt.Sprint(want) {
		t.Errorf("page request = %+v, want %+v", svc.lastList, want)
	}

	var items []models.Folder
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "Reports" {
		t.Errorf("items = %+v", items)
	}
}

func TestFolderHandler_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		deleteErr  error
		wantStatus int
	}{
		{name: "bad page", method: http.MethodGet, target: "/api/folders?page=-1", wantStatus: http.StatusBadRequest},
		{name: "bad size", method: http.MethodGet, target: "/api/folders?size=zero", wantStatus: http.StatusBadRequest},
		{name: "get existing", method: http.MethodGet, target: "/api/folders/1", wantStatus: http.StatusOK},
		{name: "get missing", method: http.MethodGet, target: "/api/folders/99", wantStatus: http.StatusNotFound},
		{name: "get bad id", method: http.MethodGet, target: "/api/folders/abc", wantStatus: http.StatusBadRequest},
		{name: "create", method: http.MethodPost, target: "/api/folders", body: `{"title":"New"}`, wantStatus: http.StatusCreated},
		{name: "create with id", method: http.MethodPost, target: "/api/folders", body: `{"id":4,"title":"New"}`, wantStatus: http.StatusBadRequest},
		{name: "create bad json", method: http.MethodPost, target: "/api/folders", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "update mismatched", method: http.MethodPut, target: "/api/folders/1", body: `{"id":2,"title":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "update", method: http.MethodPut, target: "/api/folders/1", body: `{"id":1,"title":"x"}`, wantStatus: http.StatusOK},
		{name: "patch", method: http.MethodPatch, target: "/api/folders/1", body: `{"id":1,"title":"y"}`, wantStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, target: "/api/folders/1", wantStatus: http.StatusNoContent},
		{
			name: "delete referenced", method: http.MethodDelete, target: "/api/folders/1",
			deleteErr:  &domain.ConflictError{Message: "folder 1 still has documents", ResourceType: "folder", ResourceID: "1"},
			wantStatus: http.StatusConflict,
		},
		{name: "health", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubFolderService{folders: map[int64]models.Folder{
				1: {ID: models.Int64Ptr(1), Title: "Reports"},
			}}
			if tt.deleteErr != nil {
				svc.deleteFn = func(int64) error { return tt.deleteErr }
			}

			rec := serve(newTestMux(svc), tt.method, tt.target, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body)
			}
		})
	}
}

func TestFolderHandler_CreateSetsHeaders(t *testing.T) {
	svc := &stubFolderService{folders: map[int64]models.Folder{}}
	rec := serve(newTestMux(svc), http.MethodPost, "/api/folders", `{"title":"Reports"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/api/folders/1" {
		t.Errorf("Location = %q", got)
	}
	if got := rec.Header().Get(httputil.AlertHeader); got != "docManagementApp.folder.created" {
		t.Errorf("alert = %q", got)
	}
	if got := rec.Header().Get(httputil.AlertParamsHeader); got != "1" {
		t.Errorf("alert params = %q", got)
	}
}

func TestFolderHandler_BodyTooLarge(t *testing.T) {
	svc := &stubFolderService{folders: map[int64]models.Folder{}}
	body := `{"title":"` + strings.Repeat("a", config.MaxRequestBodyBytes) + `"}`

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		target := "/api/folders"
		if method != http.MethodPost {
			target += "/1"
		}
		rec := serve(newTestMux(svc), method, target, body)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("%s status = %d, want 413", method, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("%s content type = %q", method, ct)
		}
	}
	if len(svc.folders) != 0 {
		t.Errorf("oversized body reached the service: %+v", svc.folders)
	}
}
