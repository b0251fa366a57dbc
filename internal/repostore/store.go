// Package repostore keeps one git repository per notebook and exposes the
// versioning primitives the service layer builds on.
package repostore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks notebookhub/internal/repostore Store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// EmptyTreeRef is git's well-known empty tree. Passing it as the "from" side of
// Diff renders every file of the "to" side as an addition.
const EmptyTreeRef = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

var (
	ErrNoCommitsYet       = errors.New("repository has no commits yet")
	ErrSourceNotFound     = errors.New("source ref not found")
	ErrBranchExists       = errors.New("branch already exists")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrNothingToCommit    = errors.New("nothing to commit")
	ErrFileNotFound       = errors.New("file not found")
	ErrRefNotFound        = errors.New("ref not found")
	ErrNotBootstrapped    = errors.New("repository not bootstrapped")
	ErrLastBranch         = errors.New("cannot delete the last branch")
	ErrBranchCheckedOut   = errors.New("branch is checked out")
	ErrUncommittedChanges = errors.New("working tree has uncommitted changes")
	ErrInvalidPath        = errors.New("invalid file path")
	ErrInvalidLocation    = errors.New("invalid repository location")
	ErrStorageUnavailable = errors.New("repository storage unavailable")
)

// storageErr marks err as a storage failure while keeping the cause inspectable.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// File is a path/content pair destined for the working tree.
type File struct {
	Path    string
	Content []byte
}

// Signature identifies the author of a commit.
type Signature struct {
	Name  string
	Email string
}

// CommitResult describes a commit created by Store.Commit.
type CommitResult struct {
	Hash       string
	ParentHash string // Empty for the first commit
	When       time.Time
}

// StatusResult is the working-tree state of a repository.
type StatusResult struct {
	Branch  string
	Changed []string
}

// BranchHead is a branch name with the hash it points at.
type BranchHead struct {
	Name string
	Hash string
}

// LogEntry is one commit in a branch's history.
type LogEntry struct {
	Hash        string
	ParentHash  string
	Message     string
	AuthorName  string
	AuthorEmail string
	When        time.Time
	Paths       []string // Paths changed relative to the first parent
	System      bool     // Authored by the system identity
}

// Store manages the repository behind each notebook. Locations are opaque keys;
// the mapping to storage is owned by the implementation.
type Store interface {
	// Bootstrap initializes the repository at location. Idempotent.
	Bootstrap(ctx context.Context, location string) error
	// IsBootstrapped reports whether a repository exists at location.
	IsBootstrapped(ctx context.Context, location string) (bool, error)
	// HasCommits reports whether any branch points at a commit.
	HasCommits(ctx context.Context, location string) (bool, error)

	// CreateBranch creates name at the commit from resolves to and returns its hash.
	CreateBranch(ctx context.Context, location, name, from string) (string, error)
	// Checkout switches the working tree to name. No-op on an empty repository.
	Checkout(ctx context.Context, location, name string) error
	// CurrentBranch returns the checked-out branch, which may not have commits yet.
	CurrentBranch(ctx context.Context, location string) (string, error)
	// DeleteBranch removes the branch ref.
	DeleteBranch(ctx context.Context, location, name string) error
	// Branches lists branches and their heads.
	Branches(ctx context.Context, location string) ([]BranchHead, error)

	// WriteWorkingFiles writes files to the working tree without staging them.
	WriteWorkingFiles(ctx context.Context, location string, files []File) error
	// Commit writes, stages and commits exactly files on the checked-out branch.
	Commit(ctx context.Context, location string, files []File, message string, author Signature) (*CommitResult, error)

	// Diff returns unified diff text between two refs.
	Diff(ctx context.Context, location, from, to string) (string, error)
	// FileTree lists the file paths present at ref. Empty when there are no commits.
	FileTree(ctx context.Context, location, ref string) ([]string, error)
	// ReadFile returns a file's content at ref. An empty ref or "HEAD" reads the
	// working tree first.
	ReadFile(ctx context.Context, location, path, ref string) ([]byte, error)
	// Status reports uncommitted paths and the checked-out branch.
	Status(ctx context.Context, location string) (*StatusResult, error)
	// Log lists a branch's history, newest first.
	Log(ctx context.Context, location, branch string) ([]LogEntry, error)

	// Archive writes a zstd-compressed tar of the tree at ref to w.
	Archive(ctx context.Context, location, ref string, w io.Writer) error
	// Remove deletes the repository.
	Remove(ctx context.Context, location string) error
}
