package handlers

import (
	"time"

	"notebookhub/internal/service"
	"notebookhub/internal/treediff"
)

// NotebookResponse is the JSON form of a notebook.
type NotebookResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsPublic      bool      `json:"is_public"`
	DefaultBranch string    `json:"default_branch"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BranchResponse is the JSON form of a branch.
type BranchResponse struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IsDefault      bool      `json:"is_default"`
	LastCommitHash string    `json:"last_commit_hash,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthorResponse is the identity recorded on a commit.
type AuthorResponse struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileChangeResponse is the per-file summary of a commit.
type FileChangeResponse struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Diff      string `json:"diff,omitempty"`
}

// CommitResponse is the JSON form of a commit.
type CommitResponse struct {
	Hash         string               `json:"hash"`
	ParentHash   string               `json:"parent_hash,omitempty"`
	Message      string               `json:"message"`
	Description  string               `json:"description,omitempty"`
	Author       AuthorResponse       `json:"author"`
	Branch       string               `json:"branch"`
	FilesChanged []FileChangeResponse `json:"files_changed"`
	Additions    int                  `json:"additions"`
	Deletions    int                  `json:"deletions"`
	CreatedAt    time.Time            `json:"created_at"`
}

// CommitDiffResponse is a commit with its unified diff.
type CommitDiffResponse struct {
	Commit CommitResponse       `json:"commit"`
	Diff   string               `json:"diff"`
	Files  []FileChangeResponse `json:"files"`
}

// TreeResponse is the file tree of a ref.
type TreeResponse struct {
	Ref  string           `json:"ref"`
	Tree []*treediff.Node `json:"tree"`
}

// FileResponse is a file's content.
type FileResponse struct {
	Path    string `json:"path"`
	Ref     string `json:"ref,omitempty"`
	Working bool   `json:"working"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// StatusResponse is the working-tree state of a notebook.
type StatusResponse struct {
	Branch  string   `json:"branch"`
	Changed []string `json:"changed"`
}

// ReconcileResponse summarizes index repairs.
type ReconcileResponse struct {
	NotebookID      string `json:"notebook_id"`
	BranchesCreated int    `json:"branches_created"`
	BranchesUpdated int    `json:"branches_updated"`
	CommitsInserted int    `json:"commits_inserted"`
}

func toNotebookResponse(nb *service.Notebook) NotebookResponse {
	return NotebookResponse{
		ID:            nb.ID,
		OwnerID:       nb.OwnerID,
		Name:          nb.Name,
		Description:   nb.Description,
		IsPublic:      nb.IsPublic,
		DefaultBranch: nb.DefaultBranch,
		CreatedAt:     nb.CreatedAt,
		UpdatedAt:     nb.UpdatedAt,
	}
}

func toBranchResponse(b *service.Branch) BranchResponse {
	return BranchResponse{
		Name:           b.Name,
		Description:    b.Description,
		IsDefault:      b.IsDefault,
		LastCommitHash: b.LastCommitHash,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
	}
}

func toCommitResponse(c *service.Commit) CommitResponse {
	files := make([]FileChangeResponse, len(c.FilesChanged))
	for i, f := range c.FilesChanged {
		files[i] = FileChangeResponse{Path: f.Path, Additions: f.Additions, Deletions: f.Deletions}
	}
	return CommitResponse{
		Hash:         c.Hash,
		ParentHash:   c.ParentHash,
		Message:      c.Message,
		Description:  c.Description,
		Author:       AuthorResponse{ID: c.Author.ID, Name: c.Author.Name, Email: c.Author.Email},
		Branch:       c.Branch,
		FilesChanged: files,
		Additions:    c.Additions,
		Deletions:    c.Deletions,
		CreatedAt:    c.CreatedAt,
	}
}

func toStatusResponse(s *service.Status) StatusResponse {
	changed := s.Changed
	if changed == nil {
		changed = []string{}
	}
	return StatusResponse{Branch: s.Branch, Changed: changed}
}
