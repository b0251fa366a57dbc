package service

import (
	"time"

	"notebookhub/internal/storage"
	"notebookhub/internal/treediff"
)

// Notebook is a versioned collection of text files.
type Notebook struct {
	ID            string
	OwnerID       string
	Name          string
	Description   string
	IsPublic      bool
	DefaultBranch string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Branch is a named line of history within a notebook.
type Branch struct {
	Name           string
	Description    string
	IsDefault      bool
	LastCommitHash string
	CreatedBy      string
	CreatedAt      time.Time
}

// Author is the display identity recorded on a commit.
type Author struct {
	ID    string
	Name  string
	Email string
}

// FileChange is the per-file change summary of a commit.
type FileChange struct {
	Path      string
	Additions int
	Deletions int
}

// Commit is one recorded versioning operation.
type Commit struct {
	Hash         string
	ParentHash   string
	Message      string
	Description  string
	Author       Author
	Branch       string
	FilesChanged []FileChange
	Additions    int
	Deletions    int
	CreatedAt    time.Time
}

// FileDiff is the diff segment of one file in a commit.
type FileDiff struct {
	Path      string
	Additions int
	Deletions int
	Diff      string
}

// CommitDiff is a commit together with its raw and per-file diff.
type CommitDiff struct {
	Commit Commit
	Diff   string
	Files  []FileDiff
}

// FileTree is the hierarchical file listing of a ref.
type FileTree struct {
	Ref   string
	Nodes []*treediff.Node
}

// FileContent is a file read from a ref or the working tree.
type FileContent struct {
	Path    string
	Ref     string
	Working bool // Read from the working tree rather than history
	Content string
	Title   string // Markdown files only
}

// Status is the working-tree state of a notebook.
type Status struct {
	Branch  string
	Changed []string
}

// ReconcileReport summarizes the index repairs made by Reconcile.
type ReconcileReport struct {
	NotebookID      string
	BranchesCreated int
	BranchesUpdated int
	CommitsInserted int
}

// CreateNotebookRequest represents a notebook creation request.
type CreateNotebookRequest struct {
	OwnerID     string
	Name        string
	Description string
	IsPublic    bool
}

// FileInput is a file to commit. A nil Content means the content was not provided.
type FileInput struct {
	Path    string
	Content *string
}

// CreateCommitRequest represents a commit request. An empty Branch targets
// the default branch.
type CreateCommitRequest struct {
	NotebookID  string
	Branch      string
	Message     string
	Description string
	AuthorID    string
	Files       []FileInput
}

// ListCommitsRequest selects commits. Limit is clamped to the configured bounds.
type ListCommitsRequest struct {
	NotebookID string
	Branch     string
	Limit      int
}

// CreateBranchRequest represents a branch creation request. An empty From
// branches off the default branch.
type CreateBranchRequest struct {
	NotebookID  string
	Name        string
	From        string
	Description string
	CreatedBy   string
}

// SaveFileRequest writes a file to the working tree of Branch without committing.
type SaveFileRequest struct {
	NotebookID string
	Branch     string
	Path       string
	Content    *string
}

func toBranch(r storage.BranchRecord) Branch {
	return Branch{
		Name:           r.Name,
		Description:    r.Description,
		IsDefault:      r.IsDefault,
		LastCommitHash: r.LastCommitHash,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
	}
}

func toCommit(r storage.CommitRecord) Commit {
	files := make([]FileChange, len(r.Files))
	for i, f := range r.Files {
		files[i] = FileChange{Path: f.Path, Additions: f.Additions, Deletions: f.Deletions}
	}
	return Commit{
		Hash:         r.Hash,
		ParentHash:   r.ParentHash,
		Message:      r.Message,
		Description:  r.Description,
		Author:       Author{ID: r.AuthorID, Name: r.AuthorName, Email: r.AuthorEmail},
		Branch:       r.BranchName,
		FilesChanged: files,
		Additions:    r.Additions,
		Deletions:    r.Deletions,
		CreatedAt:    r.CreatedAt,
	}
}
