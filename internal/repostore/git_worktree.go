package repostore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"notebookhub/internal/contextutil"
)

// WriteWorkingFiles writes files into the working tree of the checked-out branch.
func (s *GitStore) WriteWorkingFiles(ctx context.Context, location string, files []File) error {
	repo, err := s.open(location)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return storageErr("worktree", err)
	}
	_, err = writeFiles(wt, files)
	return err
}

func writeFiles(wt *git.Worktree, files []File) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := CleanPath(f.Path)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	for i, f := range files {
		if err := util.WriteFile(wt.Filesystem, paths[i], f.Content, 0o644); err != nil {
			return nil, storageErr("write file", err)
		}
	}
	return paths, nil
}

// Commit writes files, stages exactly their paths and commits them on the
// checked-out branch with author as both author and committer.
func (s *GitStore) Commit(ctx context.Context, location string, files []File, message string, author Signature) (*CommitResult, error) {
	repo, err := s.open(location)
	if err != nil {
		return nil, err
	}
	res, err := s.commit(ctx, repo, files, message, author)
	if err != nil {
		return nil, err
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "committed",
		"location", location, "hash", res.Hash, "parent", res.ParentHash, "files", len(files))
	return res, nil
}

func (s *GitStore) commit(ctx context.Context, repo *git.Repository, files []File, message string, author Signature) (*CommitResult, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, storageErr("worktree", err)
	}

	paths, err := writeFiles(wt, files)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return nil, storageErr("stage", err)
		}
	}

	status, err := wt.Status()
	if err != nil {
		return nil, storageErr("status", err)
	}
	staged := false
	for _, p := range paths {
		if fs, ok := status[p]; ok && fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			staged = true
			break
		}
	}
	if !staged {
		return nil, ErrNothingToCommit
	}

	var parent string
	head, err := repo.Head()
	switch {
	case err == nil:
		parent = head.Hash().String()
	case !errors.Is(err, plumbing.ErrReferenceNotFound):
		return nil, storageErr("resolve HEAD", err)
	}

	sig := &object.Signature{Name: author.Name, Email: author.Email, When: s.opts.Now().Truncate(time.Second)}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if errors.Is(err, git.ErrEmptyCommit) {
		return nil, ErrNothingToCommit
	}
	if err != nil {
		return nil, storageErr("commit", err)
	}

	return &CommitResult{Hash: hash.String(), ParentHash: parent, When: sig.When}, nil
}

// Status lists paths that differ from the checked-out commit, untracked files included.
func (s *GitStore) Status(ctx context.Context, location string) (*StatusResult, error) {
	repo, err := s.open(location)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, storageErr("worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, storageErr("status", err)
	}

	changed := []string{}
	for p, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		changed = append(changed, p)
	}
	sort.Strings(changed)

	branch, err := currentBranch(repo)
	if err != nil {
		return nil, err
	}
	return &StatusResult{Branch: branch, Changed: changed}, nil
}
