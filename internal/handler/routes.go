package handler

import "net/http"

// RegisterRoutes mounts the folder and document resources on mux
func RegisterRoutes(mux *http.ServeMux, folders *FolderHandler, documents *DocumentHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health", health.HealthCheck)

	mux.HandleFunc("GET /api/folders", folders.ListFolders)
	mux.HandleFunc("POST /api/folders", folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folders.GetFolder)
	mux.HandleFunc("PUT /api/folders/{id}", folders.UpdateFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folders.PatchFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folders.DeleteFolder)

	mux.HandleFunc("GET /api/documents", documents.ListDocuments)
	mux.HandleFunc("POST /api/documents", documents.CreateDocument)
	mux.HandleFunc("GET /api/documents/{id}", documents.GetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", documents.UpdateDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", documents.PatchDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", documents.DeleteDocument)
}
