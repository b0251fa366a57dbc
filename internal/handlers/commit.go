package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"notebookhub/internal/contextutil"
	"notebookhub/internal/service"
)

// CommitHandler handles commit requests.
type CommitHandler struct {
	notebooks service.NotebookService
}

// NewCommitHandler creates a new CommitHandler.
func NewCommitHandler(notebooks service.NotebookService) *CommitHandler {
	return &CommitHandler{notebooks: notebooks}
}

// FileRequest is one file of a commit. Content is required; a missing field
// is distinguished from an empty file.
type FileRequest struct {
	Path    string  `json:"path"`
	Content *string `json:"content"`
}

// CreateCommitRequest is the HTTP request payload for creating a commit.
type CreateCommitRequest struct {
	Branch      string        `json:"branch"`
	Message     string        `json:"message"`
	Description string        `json:"description"`
	Files       []FileRequest `json:"files"`
}

// List lists commits newest first.
func (h *CommitHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	commits, err := h.notebooks.GetCommits(ctx, service.ListCommitsRequest{
		NotebookID: chi.URLParam(r, "notebookID"),
		Branch:     q.Get("branch"),
		Limit:      limit,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list commits")
		return
	}

	resp := make([]CommitResponse, len(commits))
	for i := range commits {
		resp[i] = toCommitResponse(&commits[i])
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create commits files to a branch as the caller.
func (h *CommitHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req CreateCommitRequest
	if err := decodeJSON(r, w, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	files := make([]service.FileInput, len(req.Files))
	for i, f := range req.Files {
		files[i] = service.FileInput{Path: f.Path, Content: f.Content}
	}

	commit, err := h.notebooks.CreateCommit(ctx, service.CreateCommitRequest{
		NotebookID:  chi.URLParam(r, "notebookID"),
		Branch:      req.Branch,
		Message:     req.Message,
		Description: req.Description,
		AuthorID:    userID,
		Files:       files,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create commit")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toCommitResponse(commit))
}

// Get returns a single commit.
func (h *CommitHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	commit, err := h.notebooks.GetCommit(ctx, chi.URLParam(r, "notebookID"), chi.URLParam(r, "hash"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get commit")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toCommitResponse(commit))
}

// Diff returns a commit with its unified diff split per file.
func (h *CommitHandler) Diff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	diff, err := h.notebooks.GetCommitDiff(ctx, chi.URLParam(r, "notebookID"), chi.URLParam(r, "hash"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get commit diff")
		return
	}

	files := make([]FileChangeResponse, len(diff.Files))
	for i, f := range diff.Files {
		files[i] = FileChangeResponse{Path: f.Path, Additions: f.Additions, Deletions: f.Deletions, Diff: f.Diff}
	}
	writeJSON(ctx, w, http.StatusOK, CommitDiffResponse{
		Commit: toCommitResponse(&diff.Commit),
		Diff:   diff.Diff,
		Files:  files,
	})
}
