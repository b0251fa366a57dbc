package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notebookhub/internal/repostore"
	"notebookhub/internal/storage"
	"notebookhub/internal/treediff"
)

// CreateCommit writes and commits the given files on a branch, then records
// the commit in the index. The repository is written first; if the index
// write fails afterwards the repository is ahead and Reconcile repairs it.
func (s *notebookService) CreateCommit(ctx context.Context, req CreateCommitRequest) (*Commit, error) {
	logger := s.getLogger(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, &ValidationError{Field: "message", Message: "is required"}
	}
	if req.AuthorID == "" {
		return nil, &ValidationError{Field: "author", Message: "is required"}
	}
	files, changes, err := prepareFiles(req.Files)
	if err != nil {
		return nil, err
	}

	nb, err := s.notebook(ctx, req.NotebookID)
	if err != nil {
		return nil, err
	}
	var branch *storage.BranchRecord
	if req.Branch == "" {
		branch, err = s.defaultBranch(ctx, nb.ID)
	} else {
		if err := validateBranchName("branch", req.Branch); err != nil {
			return nil, err
		}
		branch, err = s.branch(ctx, nb.ID, req.Branch)
	}
	if err != nil {
		return nil, err
	}

	author := s.identity(ctx, req.AuthorID)

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if err := s.ensureBootstrapped(ctx, nb); err != nil {
		return nil, err
	}
	if err := s.checkout(ctx, nb, branch.Name); err != nil {
		return nil, err
	}

	result, err := s.repos.Commit(ctx, nb.RepoLocation, files, commitMessage(message, req.Description), repostore.Signature{
		Name:  author.Name,
		Email: author.Email,
	})
	if err != nil {
		return nil, s.storeError(ctx, nb, "commit", err)
	}

	rec := &storage.CommitRecord{
		NotebookID:  nb.ID,
		Hash:        result.Hash,
		Message:     message,
		Description: req.Description,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		BranchName:  branch.Name,
		ParentHash:  result.ParentHash,
		Files:       make([]storage.FileChangeRecord, len(changes)),
		CreatedAt:   result.When,
	}
	for i, c := range changes {
		rec.Files[i] = storage.FileChangeRecord{Path: c.Path, Additions: c.Additions, Deletions: c.Deletions}
		rec.Additions += c.Additions
		rec.Deletions += c.Deletions
	}

	if err := s.commits.Create(ctx, rec); err != nil {
		logger.ErrorContext(ctx, "repository ahead of index: commit not recorded",
			"notebook_id", nb.ID, "branch", branch.Name, "hash", result.Hash, "error", err)
		return nil, WrapError(ErrStorageUnavailable, "record commit")
	}
	if err := s.branches.UpdateLastCommit(ctx, nb.ID, branch.Name, result.Hash); err != nil {
		logger.ErrorContext(ctx, "repository ahead of index: branch head not updated",
			"notebook_id", nb.ID, "branch", branch.Name, "hash", result.Hash, "error", err)
		return nil, WrapError(ErrStorageUnavailable, "update branch head")
	}

	logger.InfoContext(ctx, "commit created",
		"notebook_id", nb.ID, "branch", branch.Name, "hash", result.Hash, "files", len(files))
	commit := toCommit(*rec)
	return &commit, nil
}

// GetCommits lists commits newest first, optionally restricted to a branch.
// Commits made on since-deleted branches remain listable by name.
func (s *notebookService) GetCommits(ctx context.Context, req ListCommitsRequest) ([]Commit, error) {
	nb, err := s.notebook(ctx, req.NotebookID)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = s.opts.CommitListLimit
	case limit > s.opts.CommitListMax:
		limit = s.opts.CommitListMax
	}

	recs, err := s.commits.List(ctx, storage.CommitFilter{
		NotebookID: nb.ID,
		BranchName: req.Branch,
		Limit:      limit,
	})
	if err != nil {
		return nil, s.indexError(ctx, "list commits", err)
	}

	out := make([]Commit, len(recs))
	for i, r := range recs {
		out[i] = toCommit(r)
	}
	return out, nil
}

// GetCommit returns a single commit from the index.
func (s *notebookService) GetCommit(ctx context.Context, notebookID, hash string) (*Commit, error) {
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	rec, err := s.commitRecord(ctx, nb.ID, hash)
	if err != nil {
		return nil, err
	}
	c := toCommit(*rec)
	return &c, nil
}

// GetCommitDiff returns the commit with its raw diff split per changed file.
func (s *notebookService) GetCommitDiff(ctx context.Context, notebookID, hash string) (*CommitDiff, error) {
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	rec, err := s.commitRecord(ctx, nb.ID, hash)
	if err != nil {
		return nil, err
	}

	from := rec.ParentHash
	if from == "" {
		from = repostore.EmptyTreeRef
	}
	raw, err := s.repos.Diff(ctx, nb.RepoLocation, from, rec.Hash)
	if err != nil {
		return nil, s.storeError(ctx, nb, "diff", err)
	}

	segments := treediff.SplitDiffByFile(raw)
	files := make([]FileDiff, len(rec.Files))
	for i, f := range rec.Files {
		files[i] = FileDiff{
			Path:      f.Path,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Diff:      segments[f.Path],
		}
	}

	return &CommitDiff{Commit: toCommit(*rec), Diff: raw, Files: files}, nil
}

func (s *notebookService) commitRecord(ctx context.Context, notebookID, hash string) (*storage.CommitRecord, error) {
	if hash == "" {
		return nil, &ValidationError{Field: "hash", Message: "is required"}
	}
	rec, err := s.commits.GetByHash(ctx, notebookID, hash)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: commit %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, s.indexError(ctx, "get commit", err)
	}
	return rec, nil
}

// identity resolves the display name and email recorded on a commit. Unknown
// users are recorded under their ID.
func (s *notebookService) identity(ctx context.Context, userID string) Author {
	author := Author{ID: userID, Name: userID, Email: s.fallbackEmail(userID)}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.getLogger(ctx).WarnContext(ctx, "failed to resolve author", "user_id", userID, "error", err)
		}
		return author
	}

	switch {
	case u.DisplayName != "":
		author.Name = u.DisplayName
	case u.Handle != "":
		author.Name = u.Handle
	}
	switch {
	case u.Email != "":
		author.Email = u.Email
	case u.Handle != "":
		author.Email = s.fallbackEmail(u.Handle)
	}
	return author
}

// fallbackEmail builds a synthetic address in the system identity's domain.
func (s *notebookService) fallbackEmail(local string) string {
	domain := "notebooks.local"
	if i := strings.LastIndex(s.opts.SystemAuthorEmail, "@"); i >= 0 && i < len(s.opts.SystemAuthorEmail)-1 {
		domain = s.opts.SystemAuthorEmail[i+1:]
	}
	return local + "@" + domain
}

// checkout switches the working tree to branch. Callers hold the location lock.
func (s *notebookService) checkout(ctx context.Context, nb *storage.NotebookRecord, branch string) error {
	has, err := s.repos.HasCommits(ctx, nb.RepoLocation)
	if err != nil {
		return s.storeError(ctx, nb, "inspect history", err)
	}
	if !has {
		return nil
	}
	if err := s.repos.Checkout(ctx, nb.RepoLocation, branch); err != nil {
		return s.storeError(ctx, nb, "checkout", err)
	}
	return nil
}

func commitMessage(message, description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return message
	}
	return message + "\n\n" + description
}
