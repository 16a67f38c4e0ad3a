package handler

import (
	"log/slog"
	"net/http"

	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/services"
	"docmanagement/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	documentService services.DocumentService
	appName       string
	logger        *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService services.DocumentService, appName string, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		appName:       appName,
		logger:        logger,
	}
}

// ListDocuments returns one page of documents with their folders
// GET /api/documents?page=&size=&sort=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r)
	if err != nil {
		handleError(w, err)
		return
	}

	page, err := h.documentService.ListDocuments(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetPaginationHeaders(w, r.URL, page)
	httputil.RespondJSON(w, http.StatusOK, page.Items)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// CreateDocument creates a new document
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := httputil.ParseJSON(w, r, &doc); err != nil {
		handleError(w, err)
		return
	}

	created, err := h.documentService.CreateDocument(r.Context(), &doc)
	if err != nil {
		handleError(w, err)
		return
	}

	id := idString(created.ID)
	w.Header().Set("Location", "/api/documents/"+id)
	httputil.SetAlert(w, h.appName, "document", "created", id)
	httputil.RespondJSON(w, http.StatusCreated, created)
}

// UpdateDocument replaces a document
// PUT /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var doc models.Document
	if err := httputil.ParseJSON(w, r, &doc); err != nil {
		handleError(w, err)
		return
	}

	updated, err := h.documentService.UpdateDocument(r.Context(), id, &doc)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetAlert(w, h.appName, "document", "updated", idString(updated.ID))
	httputil.RespondJSON(w, http.StatusOK, updated)
}

// PatchDocument partially updates a document
// PATCH /api/documents/{id}
func (h *DocumentHandler) PatchDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch services.DocumentPatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		handleError(w, err)
		return
	}

	patched, err := h.documentService.PatchDocument(r.Context(), id, &patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetAlert(w, h.appName, "document", "updated", idString(patched.ID))
	httputil.RespondJSON(w, http.StatusOK, patched)
}

// DeleteDocument deletes a document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.SetAlert(w, h.appName, "document", "deleted", idString(&id))
	w.WriteHeader(http.StatusNoContent)
}
