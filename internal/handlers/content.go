package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"notebookhub/internal/contextutil"
	"notebookhub/internal/service"
)

// ContentHandler serves file trees, file content, working-tree state and archives.
type ContentHandler struct {
	notebooks service.NotebookService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(notebooks service.NotebookService) *ContentHandler {
	return &ContentHandler{notebooks: notebooks}
}

// SaveFileRequest is the HTTP request payload for saving a working file.
type SaveFileRequest struct {
	Content *string `json:"content"`
}

// Tree returns the file tree of ?ref= (default branch when empty).
func (h *ContentHandler) Tree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tree, err := h.notebooks.GetFileTree(ctx, chi.URLParam(r, "notebookID"), r.URL.Query().Get("ref"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get file tree")
		return
	}
	writeJSON(ctx, w, http.StatusOK, TreeResponse{Ref: tree.Ref, Tree: tree.Nodes})
}

// GetFile returns a file's content at ?ref=, or from the working tree.
func (h *ContentHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := filePath(w, r)
	if !ok {
		return
	}

	fc, err := h.notebooks.GetFileContent(ctx, chi.URLParam(r, "notebookID"), p, r.URL.Query().Get("ref"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to read file")
		return
	}
	writeJSON(ctx, w, http.StatusOK, FileResponse{
		Path:    fc.Path,
		Ref:     fc.Ref,
		Working: fc.Working,
		Title:   fc.Title,
		Content: fc.Content,
	})
}

// SaveFile writes a file to the working tree of ?branch= without committing.
func (h *ContentHandler) SaveFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	p, ok := filePath(w, r)
	if !ok {
		return
	}

	var req SaveFileRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := h.notebooks.SaveWorkingFile(ctx, service.SaveFileRequest{
		NotebookID: chi.URLParam(r, "notebookID"),
		Branch:     r.URL.Query().Get("branch"),
		Path:       p,
		Content:    req.Content,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to save file")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toStatusResponse(status))
}

// Status returns the checked-out branch and its uncommitted paths.
func (h *ContentHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := h.notebooks.GetStatus(ctx, chi.URLParam(r, "notebookID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get status")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toStatusResponse(status))
}

// Archive returns a zstd-compressed tarball of ?ref=.
func (h *ContentHandler) Archive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notebookID := chi.URLParam(r, "notebookID")

	// Buffered so that a failure can still be reported as a JSON error.
	var buf bytes.Buffer
	if err := h.notebooks.ExportArchive(ctx, notebookID, r.URL.Query().Get("ref"), &buf); err != nil {
		handleServiceError(w, ctx, err, "Failed to export archive")
		return
	}

	w.Header().Set("Content-Type", "application/zstd")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", notebookID+".tar.zst"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write archive", "error", err)
	}
}

// filePath extracts the wildcard file path from the URL.
func filePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || p == "" {
		writeError(w, http.StatusBadRequest, "Invalid file path")
		return "", false
	}
	return p, true
}
