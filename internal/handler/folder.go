package handler

import (
	"log/slog"
	"net/http"

	"docmanagement/internal/domain/models"
	"docmanagement/internal/domain/services"
	"docmanagement/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	appName       string
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, appName string, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		appName:       appName,
		logger:        logger,
	}
}

// ListFolders returns one page of folders
// GET /api/folders?page=&size=&sort=
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r)
	if err != nil {
		handleError(w, err)
		return
	}

	page, err := h.folderService.ListFolders(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetPaginationHeaders(w, r.URL, page)
	httputil.RespondJSON(w, http.StatusOK, page.Items)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var folder models.Folder
	if err := httputil.ParseJSON(w, r, &folder); err != nil {
		handleError(w, err)
		return
	}

	created, err := h.folderService.CreateFolder(r.Context(), &folder)
	if err != nil {
		handleError(w, err)
		return
	}

	id := idString(created.ID)
	w.Header().Set("Location", "/api/folders/"+id)
	httputil.SetAlert(w, h.appName, "folder", "created", id)
	httputil.RespondJSON(w, http.StatusCreated, created)
}

// UpdateFolder replaces a folder
// PUT /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var folder models.Folder
	if err := httputil.ParseJSON(w, r, &folder); err != nil {
		handleError(w, err)
		return
	}

	updated, err := h.folderService.UpdateFolder(r.Context(), id, &folder)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetAlert(w, h.appName, "folder", "updated", idString(updated.ID))
	httputil.RespondJSON(w, http.StatusOK, updated)
}

// PatchFolder partially updates a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) PatchFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch services.FolderPatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		handleError(w, err)
		return
	}

	patched, err := h.folderService.PatchFolder(r.Context(), id, &patch)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.SetAlert(w, h.appName, "folder", "updated", idString(patched.ID))
	httputil.RespondJSON(w, http.StatusOK, patched)
}

// DeleteFolder deletes a folder
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.SetAlert(w, h.appName, "folder", "deleted", idString(&id))
	w.WriteHeader(http.StatusNoContent)
}
