package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"notebookhub/internal/repostore"
	"notebookhub/internal/storage"
	"notebookhub/internal/treediff"
)

// GetFileTree returns the hierarchical file listing of ref. An empty ref
// means the default branch.
func (s *notebookService) GetFileTree(ctx context.Context, notebookID, ref string) (*FileTree, error) {
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		def, err := s.defaultBranch(ctx, nb.ID)
		if err != nil {
			return nil, err
		}
		ref = def.Name
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if err := s.ensureBootstrapped(ctx, nb); err != nil {
		return nil, err
	}
	paths, err := s.repos.FileTree(ctx, nb.RepoLocation, ref)
	if err != nil {
		if errors.Is(err, repostore.ErrRefNotFound) {
			return nil, fmt.Errorf("%w: ref %q", ErrNotFound, ref)
		}
		return nil, s.storeError(ctx, nb, "file tree", err)
	}

	return &FileTree{Ref: ref, Nodes: treediff.BuildTree(paths)}, nil
}

// GetFileContent reads a file. An empty ref, or the checked-out branch's
// name, reads the working tree so uncommitted saves are visible.
func (s *notebookService) GetFileContent(ctx context.Context, notebookID, p, ref string) (*FileContent, error) {
	clean, err := validatePath("path", p)
	if err != nil {
		return nil, err
	}
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	working := ref == ""
	if !working {
		if current, err := s.repos.CurrentBranch(ctx, nb.RepoLocation); err == nil && current == ref {
			working = true
		}
	}
	readRef := ref
	if working {
		readRef = ""
	}

	content, err := s.repos.ReadFile(ctx, nb.RepoLocation, clean, readRef)
	if err != nil {
		switch {
		case errors.Is(err, repostore.ErrFileNotFound), errors.Is(err, repostore.ErrNotBootstrapped),
			errors.Is(err, repostore.ErrNoCommitsYet):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, clean)
		case errors.Is(err, repostore.ErrRefNotFound):
			return nil, fmt.Errorf("%w: ref %q", ErrNotFound, ref)
		}
		return nil, s.storeError(ctx, nb, "read file", err)
	}

	fc := &FileContent{
		Path:    clean,
		Ref:     ref,
		Working: working,
		Content: string(content),
	}
	if isMarkdown(clean) {
		fc.Title = markdownTitle(content, path.Base(clean))
	}
	return fc, nil
}

// GetStatus reports the checked-out branch and its uncommitted paths.
func (s *notebookService) GetStatus(ctx context.Context, notebookID string) (*Status, error) {
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	ok, err := s.repos.IsBootstrapped(ctx, nb.RepoLocation)
	if err != nil {
		return nil, s.storeError(ctx, nb, "stat repository", err)
	}
	if !ok {
		def, err := s.defaultBranch(ctx, nb.ID)
		if err != nil {
			return nil, err
		}
		return &Status{Branch: def.Name, Changed: []string{}}, nil
	}
	return s.status(ctx, nb)
}

// SaveWorkingFile writes a file to the branch's working tree without committing.
func (s *notebookService) SaveWorkingFile(ctx context.Context, req SaveFileRequest) (*Status, error) {
	clean, err := validatePath("path", req.Path)
	if err != nil {
		return nil, err
	}
	if req.Content == nil {
		return nil, &ValidationError{Field: "content", Message: "is required"}
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

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if err := s.ensureBootstrapped(ctx, nb); err != nil {
		return nil, err
	}
	if err := s.checkout(ctx, nb, branch.Name); err != nil {
		return nil, err
	}
	files := []repostore.File{{Path: clean, Content: []byte(*req.Content)}}
	if err := s.repos.WriteWorkingFiles(ctx, nb.RepoLocation, files); err != nil {
		return nil, s.storeError(ctx, nb, "write working file", err)
	}
	return s.status(ctx, nb)
}

// ExportArchive streams a compressed tar of ref. An empty ref means the
// default branch.
func (s *notebookService) ExportArchive(ctx context.Context, notebookID, ref string, w io.Writer) error {
	nb, err := s.notebook(ctx, notebookID)
	if err != nil {
		return err
	}
	if ref == "" {
		def, err := s.defaultBranch(ctx, nb.ID)
		if err != nil {
			return err
		}
		ref = def.Name
	}

	unlock := s.locks.Lock(nb.RepoLocation)
	defer unlock()

	if err := s.ensureBootstrapped(ctx, nb); err != nil {
		return err
	}
	has, err := s.repos.HasCommits(ctx, nb.RepoLocation)
	if err != nil {
		return s.storeError(ctx, nb, "inspect history", err)
	}
	if !has {
		return fmt.Errorf("%w: nothing to export", ErrNoCommitsYet)
	}

	if err := s.repos.Archive(ctx, nb.RepoLocation, ref, w); err != nil {
		if errors.Is(err, repostore.ErrRefNotFound) {
			return fmt.Errorf("%w: ref %q", ErrNotFound, ref)
		}
		return s.storeError(ctx, nb, "archive", err)
	}
	return nil
}

// status reads working-tree state. Callers hold the location lock.
func (s *notebookService) status(ctx context.Context, nb *storage.NotebookRecord) (*Status, error) {
	st, err := s.repos.Status(ctx, nb.RepoLocation)
	if err != nil {
		return nil, s.storeError(ctx, nb, "status", err)
	}
	changed := st.Changed
	if changed == nil {
		changed = []string{}
	}
	return &Status{Branch: st.Branch, Changed: changed}, nil
}
