package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"notebookhub/internal/contextutil"
	"notebookhub/internal/service"
)

// BranchHandler handles branch requests.
type BranchHandler struct {
	notebooks service.NotebookService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(notebooks service.NotebookService) *BranchHandler {
	return &BranchHandler{notebooks: notebooks}
}

// CreateBranchRequest is the HTTP request payload for creating a branch.
type CreateBranchRequest struct {
	Name        string `json:"name"`
	From        string `json:"from"`
	Description string `json:"description"`
}

// List lists a notebook's branches, default branch first.
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	branches, err := h.notebooks.ListBranches(ctx, chi.URLParam(r, "notebookID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list branches")
		return
	}

	resp := make([]BranchResponse, len(branches))
	for i := range branches {
		resp[i] = toBranchResponse(&branches[i])
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create creates a branch from another branch's head.
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req CreateBranchRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	branch, err := h.notebooks.CreateBranch(ctx, service.CreateBranchRequest{
		NotebookID:  chi.URLParam(r, "notebookID"),
		Name:        req.Name,
		From:        req.From,
		Description: req.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create branch")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toBranchResponse(branch))
}

// Delete deletes a non-default branch.
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.notebooks.DeleteBranch(ctx, chi.URLParam(r, "notebookID"), chi.URLParam(r, "branch"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to delete branch")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout switches the notebook's working tree to a branch.
func (h *BranchHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := h.notebooks.CheckoutBranch(ctx, chi.URLParam(r, "notebookID"), chi.URLParam(r, "branch"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to check out branch")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toStatusResponse(status))
}
