package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"notebookhub/internal/contextutil"
	"notebookhub/internal/service"
)

// NotebookHandler handles notebook lifecycle requests.
type NotebookHandler struct {
	notebooks service.NotebookService
}

// NewNotebookHandler creates a new NotebookHandler.
func NewNotebookHandler(notebooks service.NotebookService) *NotebookHandler {
	return &NotebookHandler{notebooks: notebooks}
}

// CreateNotebookRequest is the HTTP request payload for creating a notebook.
type CreateNotebookRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// List lists the caller's notebooks.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	nbs, err := h.notebooks.ListNotebooks(ctx, userID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list notebooks")
		return
	}

	resp := make([]NotebookResponse, len(nbs))
	for i := range nbs {
		resp[i] = toNotebookResponse(&nbs[i])
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create creates a notebook owned by the caller.
func (h *NotebookHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req CreateNotebookRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	nb, err := h.notebooks.CreateNotebook(ctx, service.CreateNotebookRequest{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create notebook")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toNotebookResponse(nb))
}

// Get returns a notebook.
func (h *NotebookHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nb, err := h.notebooks.GetNotebook(ctx, chi.URLParam(r, "notebookID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get notebook")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNotebookResponse(nb))
}

// Delete deletes a notebook and its repository.
func (h *NotebookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.notebooks.DeleteNotebook(ctx, chi.URLParam(r, "notebookID")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete notebook")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reconcile repairs the notebook's index from its repository.
func (h *NotebookHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.notebooks.Reconcile(ctx, chi.URLParam(r, "notebookID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to reconcile notebook")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ReconcileResponse{
		NotebookID:      report.NotebookID,
		BranchesCreated: report.BranchesCreated,
		BranchesUpdated: report.BranchesUpdated,
		CommitsInserted: report.CommitsInserted,
	})
}
