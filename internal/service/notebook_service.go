package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notebook_service.go -package=mocks notebookhub/internal/service NotebookService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"notebookhub/internal/contextutil"
	"notebookhub/internal/repostore"
	"notebookhub/internal/storage"
)

// NotebookService coordinates the repository store and the metadata index.
// The repository is the source of truth: content is always written before the
// index records that describe it.
type NotebookService interface {
	CreateNotebook(ctx context.Context, req CreateNotebookRequest) (*Notebook, error)
	GetNotebook(ctx context.Context, notebookID string) (*Notebook, error)
	ListNotebooks(ctx context.Context, ownerID string) ([]Notebook, error)
	DeleteNotebook(ctx context.Context, notebookID string) error

	CreateCommit(ctx context.Context, req CreateCommitRequest) (*Commit, error)
	GetCommits(ctx context.Context, req ListCommitsRequest) ([]Commit, error)
	GetCommit(ctx context.Context, notebookID, hash string) (*Commit, error)
	GetCommitDiff(ctx context.Context, notebookID, hash string) (*CommitDiff, error)

	CreateBranch(ctx context.Context, req CreateBranchRequest) (*Branch, error)
	ListBranches(ctx context.Context, notebookID string) ([]Branch, error)
	DeleteBranch(ctx context.Context, notebookID, name string) error
	CheckoutBranch(ctx context.Context, notebookID, name string) (*Status, error)

	GetFileTree(ctx context.Context, notebookID, ref string) (*FileTree, error)
	GetFileContent(ctx context.Context, notebookID, path, ref string) (*FileContent, error)
	GetStatus(ctx context.Context, notebookID string) (*Status, error)
	SaveWorkingFile(ctx context.Context, req SaveFileRequest) (*Status, error)
	ExportArchive(ctx context.Context, notebookID, ref string, w io.Writer) error

	// Reconcile repairs the index from repository history.
	Reconcile(ctx context.Context, notebookID string) (*ReconcileReport, error)
}

// Options configures the notebook service.
type Options struct {
	DefaultBranch     string
	SystemAuthorEmail string
	CommitListLimit   int
	CommitListMax     int
}

// Stores groups the metadata index stores.
type Stores struct {
	Notebooks storage.NotebookStore
	Branches  storage.BranchStore
	Commits   storage.CommitStore
	Users     storage.UserStore
}

// notebookService implements NotebookService.
type notebookService struct {
	notebooks storage.NotebookStore
	branches  storage.BranchStore
	commits   storage.CommitStore
	users     storage.UserStore
	repos     repostore.Store
	locks     *locationLocks
	opts      Options
}

// NewNotebookService creates a new NotebookService.
func NewNotebookService(stores Stores, repos repostore.Store, opts Options) NotebookService {
	if opts.DefaultBranch == "" {
		opts.DefaultBranch = "main"
	}
	if opts.CommitListLimit <= 0 {
		opts.CommitListLimit = 50
	}
	if opts.CommitListMax < opts.CommitListLimit {
		opts.CommitListMax = opts.CommitListLimit
	}
	return &notebookService{
		notebooks: stores.Notebooks,
		branches:  stores.Branches,
		commits:   stores.Commits,
		users:     stores.Users,
		repos:     repos,
		locks:     newLocationLocks(),
		opts:      opts,
	}
}

func (s *notebookService) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

// CreateNotebook persists the notebook, bootstraps its repository and records
// the default branch. A failure after the notebook record exists removes
// whatever was created so the request can be retried.
func (s *notebookService) CreateNotebook(ctx context.Context, req CreateNotebookRequest) (*Notebook, error) {
	logger := s.getLogger(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if req.OwnerID == "" {
		return nil, &ValidationError{Field: "owner", Message: "is required"}
	}

	id := uuid.New().String()
	rec := &storage.NotebookRecord{
		ID:           id,
		OwnerID:      req.OwnerID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		IsPublic:     req.IsPublic,
		RepoLocation: id,
	}
	if err := s.notebooks.Create(ctx, rec); err != nil {
		return nil, s.indexError(ctx, "create notebook", err)
	}

	unlock := s.locks.Lock(rec.RepoLocation)
	defer unlock()

	rollback := func() {
		if err := s.repos.Remove(ctx, rec.RepoLocation); err != nil {
			logger.ErrorContext(ctx, "rollback: failed to remove repository", "notebook_id", id, "error", err)
		}
		if err := s.notebooks.Delete(ctx, id); err != nil {
			logger.ErrorContext(ctx, "rollback: failed to delete notebook record", "notebook_id", id, "error", err)
		}
	}

	if err := s.repos.Bootstrap(ctx, rec.RepoLocation); err != nil {
		rollback()
		return nil, s.storeError(ctx, rec, "bootstrap", err)
	}

	branch := &storage.BranchRecord{
		NotebookID: id,
		Name:       s.opts.DefaultBranch,
		IsDefault:  true,
		CreatedBy:  req.OwnerID,
	}
	// A seeded repository already has history on the default branch.
	heads, err := s.repos.Branches(ctx, rec.RepoLocation)
	if err != nil {
		rollback()
		return nil, s.storeError(ctx, rec, "list branches", err)
	}
	for _, h := range heads {
		if h.Name == s.opts.DefaultBranch {
			branch.LastCommitHash = h.Hash
		}
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		rollback()
		return nil, s.indexError(ctx, "create default branch", err)
	}

	logger.InfoContext(ctx, "notebook created", "notebook_id", id, "owner", req.OwnerID)
	nb := toNotebook(rec, branch.Name)
	return &nb, nil
}

// GetNotebook gets a notebook by ID.
func (s *notebookService) GetNotebook(ctx context.Context, notebookID string) (*Notebook, error) {
	rec, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	def, err := s.defaultBranch(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	nb := toNotebook(rec, def.Name)
	return &nb, nil
}

// ListNotebooks lists the owner's notebooks.
func (s *notebookService) ListNotebooks(ctx context.Context, ownerID string) ([]Notebook, error) {
	if ownerID == "" {
		return nil, &ValidationError{Field: "owner", Message: "is required"}
	}
	recs, err := s.notebooks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.indexError(ctx, "list notebooks", err)
	}

	out := make([]Notebook, 0, len(recs))
	for i := range recs {
		name := s.opts.DefaultBranch
		if def, err := s.branches.GetDefault(ctx, recs[i].ID); err == nil {
			name = def.Name
		}
		out = append(out, toNotebook(&recs[i], name))
	}
	return out, nil
}

// DeleteNotebook removes the index records, then reclaims the repository.
func (s *notebookService) DeleteNotebook(ctx context.Context, notebookID string) error {
	rec, err := s.notebook(ctx, notebookID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(rec.RepoLocation)
	defer unlock()

	if err := s.notebooks.Delete(ctx, rec.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: notebook %s", ErrNotFound, notebookID)
		}
		return s.indexError(ctx, "delete notebook", err)
	}
	if err := s.repos.Remove(ctx, rec.RepoLocation); err != nil {
		return s.storeError(ctx, rec, "remove repository", err)
	}

	s.getLogger(ctx).InfoContext(ctx, "notebook deleted", "notebook_id", rec.ID)
	return nil
}

func toNotebook(rec *storage.NotebookRecord, defaultBranch string) Notebook {
	return Notebook{
		ID:            rec.ID,
		OwnerID:       rec.OwnerID,
		Name:          rec.Name,
		Description:   rec.Description,
		IsPublic:      rec.IsPublic,
		DefaultBranch: defaultBranch,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

// notebook resolves a notebook record.
func (s *notebookService) notebook(ctx context.Context, id string) (*storage.NotebookRecord, error) {
	if id == "" {
		return nil, &ValidationError{Field: "notebook", Message: "is required"}
	}
	rec, err := s.notebooks.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: notebook %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, s.indexError(ctx, "get notebook", err)
	}
	return rec, nil
}

// branch resolves a branch record.
func (s *notebookService) branch(ctx context.Context, notebookID, name string) (*storage.BranchRecord, error) {
	rec, err := s.branches.GetByName(ctx, notebookID, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: branch %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, s.indexError(ctx, "get branch", err)
	}
	return rec, nil
}

func (s *notebookService) defaultBranch(ctx context.Context, notebookID string) (*storage.BranchRecord, error) {
	rec, err := s.branches.GetDefault(ctx, notebookID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: default branch of notebook %s", ErrNotFound, notebookID)
	}
	if err != nil {
		return nil, s.indexError(ctx, "get default branch", err)
	}
	return rec, nil
}

// ensureBootstrapped bootstraps the repository if an earlier operation did
// not. Callers hold the location lock.
func (s *notebookService) ensureBootstrapped(ctx context.Context, nb *storage.NotebookRecord) error {
	ok, err := s.repos.IsBootstrapped(ctx, nb.RepoLocation)
	if err != nil {
		return s.storeError(ctx, nb, "stat repository", err)
	}
	if ok {
		return nil
	}
	s.getLogger(ctx).WarnContext(ctx, "repository missing, bootstrapping", "notebook_id", nb.ID)
	if err := s.repos.Bootstrap(ctx, nb.RepoLocation); err != nil {
		return s.storeError(ctx, nb, "bootstrap", err)
	}
	return nil
}

// storeError translates repository errors into the service taxonomy. Storage
// failures are logged with their location and surfaced without details.
func (s *notebookService) storeError(ctx context.Context, nb *storage.NotebookRecord, op string, err error) error {
	switch {
	case errors.Is(err, repostore.ErrNoCommitsYet):
		return fmt.Errorf("%w: notebook has no commits yet", ErrNoCommitsYet)
	case errors.Is(err, repostore.ErrNothingToCommit):
		return fmt.Errorf("%w: content is identical to the current state", ErrNothingToCommit)
	case errors.Is(err, repostore.ErrFileNotFound):
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, pe.Path)
		}
		return ErrFileNotFound
	case errors.Is(err, repostore.ErrRefNotFound), errors.Is(err, repostore.ErrSourceNotFound),
		errors.Is(err, repostore.ErrBranchNotFound):
		return fmt.Errorf("%w: ref", ErrNotFound)
	case errors.Is(err, repostore.ErrBranchExists):
		return fmt.Errorf("%w: branch", ErrAlreadyExists)
	case errors.Is(err, repostore.ErrUncommittedChanges):
		return fmt.Errorf("%w: the checked-out branch has uncommitted changes", ErrConflict)
	case errors.Is(err, repostore.ErrBranchCheckedOut), errors.Is(err, repostore.ErrLastBranch):
		return fmt.Errorf("%w: %s", ErrConflict, err.Error())
	case errors.Is(err, repostore.ErrInvalidPath):
		return &ValidationError{Field: "path", Message: "is not a valid notebook path"}
	}

	s.getLogger(ctx).ErrorContext(ctx, "repository operation failed",
		"notebook_id", nb.ID, "location", nb.RepoLocation, "op", op, "error", err)
	return WrapError(ErrStorageUnavailable, op)
}

// indexError translates metadata index failures.
func (s *notebookService) indexError(ctx context.Context, op string, err error) error {
	if errors.Is(err, storage.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, op)
	}
	s.getLogger(ctx).ErrorContext(ctx, "index operation failed", "op", op, "error", err)
	return WrapError(ErrStorageUnavailable, op)
}
