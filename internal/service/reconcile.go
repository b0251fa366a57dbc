package service

import (
	"context"
	"errors"
	"strings"

	"notebookhub/internal/repostore"
	"notebookhub/internal/storage"
	"notebookhub/internal/treediff"
)

// Reconcile brings the index back in line with the repository after a partial
// failure. Branch records are created or moved to the repository heads and
// commits missing from the index are inserted, oldest first. Commits by the
// system identity are skipped. Recovered commits carry no author ID.
func (s *notebookService) Reconcile(ctx context.Context, notebookID string) (*ReconcileReport, error) {
	logger := s.getLogger(ctx)

	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	def, err := s.defaultBranch(ctx, nb.ID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	report := &ReconcileReport{NotebookID: nb.ID}

	ok, err := s.repos.IsBootstrapped(ctx, nb.RepoLocation)
	if err != nil {
		return nil, s.storeError(ctx, nb, "stat repository", err)
	}
	if !ok {
		return report, nil
	}

	heads, err := s.repos.Branches(ctx, nb.RepoLocation)
	if err != nil {
		return nil, s.storeError(ctx, nb, "list branches", err)
	}
	// Default branch first so shared history is attributed to it.
	for i, h := range heads {
		if h.Name == def.Name && i > 0 {
			heads[0], heads[i] = heads[i], heads[0]
			break
		}
	}

	for _, head := range heads {
		if err := s.reconcileBranch(ctx, nb, head, report); err != nil {
			return nil, err
		}
		if err := s.reconcileCommits(ctx, nb, head.Name, report); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, "notebook reconciled",
		"notebook_id", nb.ID,
		"branches_created", report.BranchesCreated,
		"branches_updated", report.BranchesUpdated,
		"commits_inserted", report.CommitsInserted)
	return report, nil
}

func (s *notebookService) reconcileBranch(ctx context.Context, nb *storage.NotebookRecord, head repostore.BranchHead, report *ReconcileReport) error {
	rec, err := s.branches.GetByName(ctx, nb.ID, head.Name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		rec = &storage.BranchRecord{
			NotebookID:     nb.ID,
			Name:           head.Name,
			LastCommitHash: head.Hash,
			CreatedBy:      nb.OwnerID,
		}
		if err := s.branches.Create(ctx, rec); err != nil {
			return s.indexError(ctx, "create branch", err)
		}
		report.BranchesCreated++
	case err != nil:
		return s.indexError(ctx, "get branch", err)
	case rec.LastCommitHash != head.Hash:
		if err := s.branches.UpdateLastCommit(ctx, nb.ID, head.Name, head.Hash); err != nil {
			return s.indexError(ctx, "update branch head", err)
		}
		report.BranchesUpdated++
	}
	return nil
}

func (s *notebookService) reconcileCommits(ctx context.Context, nb *storage.NotebookRecord, branch string, report *ReconcileReport) error {
	entries, err := s.repos.Log(ctx, nb.RepoLocation, branch)
	if err != nil {
		return s.storeError(ctx, nb, "log", err)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.System {
			continue
		}
		if _, err := s.commits.GetByHash(ctx, nb.ID, e.Hash); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return s.indexError(ctx, "get commit", err)
		}

		message, description, _ := strings.Cut(strings.TrimSpace(e.Message), "\n\n")
		rec := &storage.CommitRecord{
			NotebookID:  nb.ID,
			Hash:        e.Hash,
			Message:     strings.TrimSpace(message),
			Description: strings.TrimSpace(description),
			AuthorName:  e.AuthorName,
			AuthorEmail: e.AuthorEmail,
			BranchName:  branch,
			ParentHash:  e.ParentHash,
			CreatedAt:   e.When,
		}
		for _, p := range e.Paths {
			additions := 0
			// Deleted paths have no content at this commit.
			if content, err := s.repos.ReadFile(ctx, nb.RepoLocation, p, e.Hash); err == nil {
				additions = treediff.CountLines(string(content))
			}
			rec.Files = append(rec.Files, storage.FileChangeRecord{Path: p, Additions: additions})
			rec.Additions += additions
		}

		if err := s.commits.Create(ctx, rec); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				continue
			}
			return s.indexError(ctx, "record commit", err)
		}
		report.CommitsInserted++
	}
	return nil
}
