package service

import (
	"context"
	"errors"
	"fmt"

	"notebookhub/internal/repostore"
	"notebookhub/internal/storage"
)

// CreateBranch creates a branch at the head of From (or the default branch).
// The notebook must have at least one commit.
func (s *notebookService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*Branch, error) {
	if err := validateBranchName("name", req.Name); err != nil {
		return nil, err
	}
	if req.From != "" {
		if err := validateBranchName("from", req.From); err != nil {
			return nil, err
		}
	}

	nb, err := s.notebook(ctx, req.NotebookID)
	if err != nil {
		return nil, err
	}

	if _, err := s.branches.GetByName(ctx, nb.ID, req.Name); err == nil {
		return nil, fmt.Errorf("%w: branch %q", ErrAlreadyExists, req.Name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, s.indexError(ctx, "get branch", err)
	}

	def, err := s.defaultBranch(ctx, nb.ID)
	if err != nil {
		return nil, err
	}
	source := def
	if req.From != "" && req.From != def.Name {
		if source, err = s.branch(ctx, nb.ID, req.From); err != nil {
			return nil, err
		}
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if err := s.ensureBootstrapped(ctx, nb); err != nil {
		return nil, err
	}
	has, err := s.repos.HasCommits(ctx, nb.RepoLocation)
	if err != nil {
		return nil, s.storeError(ctx, nb, "inspect history", err)
	}
	if !has {
		return nil, fmt.Errorf("%w: make a first commit on %q before creating branches", ErrNoCommitsYet, def.Name)
	}

	hash, err := s.repos.CreateBranch(ctx, nb.RepoLocation, req.Name, source.Name)
	if err != nil {
		if errors.Is(err, repostore.ErrSourceNotFound) {
			return nil, fmt.Errorf("%w: branch %q has no commits", ErrNotFound, source.Name)
		}
		return nil, s.storeError(ctx, nb, "create branch", err)
	}

	rec := &storage.BranchRecord{
		NotebookID:     nb.ID,
		Name:           req.Name,
		Description:    req.Description,
		LastCommitHash: hash,
		CreatedBy:      req.CreatedBy,
	}
	if err := s.branches.Create(ctx, rec); err != nil {
		return nil, s.indexError(ctx, "create branch", err)
	}

	s.getLogger(ctx).InfoContext(ctx, "branch created",
		"notebook_id", nb.ID, "branch", req.Name, "from", source.Name, "hash", hash)
	b := toBranch(*rec)
	return &b, nil
}

// ListBranches lists branches with the default branch first.
func (s *notebookService) ListBranches(ctx context.Context, notebookID string) ([]Branch, error) {
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	recs, err := s.branches.ListByNotebook(ctx, nb.ID)
	if err != nil {
		return nil, s.indexError(ctx, "list branches", err)
	}
	out := make([]Branch, len(recs))
	for i, r := range recs {
		out[i] = toBranch(r)
	}
	return out, nil
}

// DeleteBranch removes a non-default branch. Commits made on it stay in the
// index under the branch name.
func (s *notebookService) DeleteBranch(ctx context.Context, notebookID, name string) error {
	if err := validateBranchName("name", name); err != nil {
		return err
	}
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return err
	}
	rec, err := s.branch(ctx, nb.ID, name)
	if err != nil {
		return err
	}
	if rec.IsDefault {
		return &ValidationError{Field: "name", Message: "the default branch cannot be deleted"}
	}
	def, err := s.defaultBranch(ctx, nb.ID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if ok, err := s.repos.IsBootstrapped(ctx, nb.RepoLocation); err != nil {
		return s.storeError(ctx, nb, "stat repository", err)
	} else if ok {
		current, err := s.repos.CurrentBranch(ctx, nb.RepoLocation)
		if err != nil {
			return s.storeError(ctx, nb, "current branch", err)
		}
		if current == name {
			if err := s.checkout(ctx, nb, def.Name); err != nil {
				return err
			}
		}
		err = s.repos.DeleteBranch(ctx, nb.RepoLocation, name)
		if err != nil && !errors.Is(err, repostore.ErrBranchNotFound) {
			return s.storeError(ctx, nb, "delete branch", err)
		}
	}

	if err := s.branches.Delete(ctx, nb.ID, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: branch %q", ErrNotFound, name)
		}
		return s.indexError(ctx, "delete branch", err)
	}

	s.getLogger(ctx).InfoContext(ctx, "branch deleted", "notebook_id", nb.ID, "branch", name)
	return nil
}

// CheckoutBranch switches the working tree to a branch.
func (s *notebookService) CheckoutBranch(ctx context.Context, notebookID, name string) (*Status, error) {
	if err := validateBranchName("name", name); err != nil {
		return nil, err
	}
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.branch(ctx, nb.ID, name); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if err := s.ensureBootstrapped(ctx, nb); err != nil {
		return nil, err
	}
	if err := s.checkout(ctx, nb, name); err != nil {
		return nil, err
	}
	return s.status(ctx, nb)
}
