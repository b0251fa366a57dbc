package storage

import "time"

// UserRecord is a caller identity mirrored from the upstream authenticator.
type UserRecord struct {
	ID          string
	Handle      string
	DisplayName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NotebookRecord represents a notebook in the database.
type NotebookRecord struct {
	ID           string // UUID
	OwnerID      string
	Name         string
	Description  string
	IsPublic     bool
	RepoLocation string // Opaque repository key, stable for the notebook's lifetime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BranchRecord mirrors a branch ref in a notebook's repository.
type BranchRecord struct {
	ID             string // UUID
	NotebookID     string
	Name           string
	Description    string
	IsDefault      bool
	LastCommitHash string // Empty until the first commit lands on the branch
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CommitRecord is an append-only record of one commit.
type CommitRecord struct {
	ID          int64
	NotebookID  string
	Hash        string
	Message     string
	Description string
	AuthorID    string
	AuthorName  string
	AuthorEmail string
	BranchName  string // Branch at time of creation; not a foreign key
	ParentHash  string // Empty for the first commit in a repository
	Additions   int
	Deletions   int
	Files       []FileChangeRecord
	CreatedAt   time.Time
}

// FileChangeRecord is the per-file change summary of a commit.
type FileChangeRecord struct {
	Path      string
	Additions int
	Deletions int
}

// CommitFilter selects commits for listing.
type CommitFilter struct {
	NotebookID string
	BranchName string // Optional
	Limit      int
}
