package repostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Diff renders the changes between from and to as unified diff text.
// An empty from or EmptyTreeRef diffs against the empty tree.
func (s *GitStore) Diff(ctx context.Context, location, from, to string) (string, error) {
	repo, err := s.open(location)
	if err != nil {
		return "", err
	}

	toCommit, err := resolveCommit(repo, to)
	if err != nil {
		return "", err
	}
	toTree, err := toCommit.Tree()
	if err != nil {
		return "", storageErr("read tree", err)
	}

	var fromTree *object.Tree
	if from != "" && from != EmptyTreeRef {
		fromCommit, err := resolveCommit(repo, from)
		if err != nil {
			return "", err
		}
		if fromTree, err = fromCommit.Tree(); err != nil {
			return "", storageErr("read tree", err)
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, nil)
	if err != nil {
		return "", storageErr("diff", err)
	}
	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return "", storageErr("diff", err)
	}
	return patch.String(), nil
}

// FileTree lists the files at ref in git tree order.
func (s *GitStore) FileTree(ctx context.Context, location, ref string) ([]string, error) {
	repo, err := s.open(location)
	if err != nil {
		return nil, err
	}

	has, err := hasCommits(repo)
	if err != nil {
		return nil, err
	}
	if !has {
		return []string{}, nil
	}

	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, storageErr("read tree", err)
	}

	paths := []string{}
	err = tree.Files().ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, storageErr("walk tree", err)
	}
	return paths, nil
}

// ReadFile reads path at ref. The working tip ("" or "HEAD") is read from
// disk first so unsaved-to-history edits are visible, falling back to the
// HEAD snapshot.
func (s *GitStore) ReadFile(ctx context.Context, location, path, ref string) ([]byte, error) {
	clean, err := CleanPath(path)
	if err != nil {
		return nil, err
	}
	repo, err := s.open(location)
	if err != nil {
		return nil, err
	}

	if ref == "" || ref == "HEAD" {
		wt, err := repo.Worktree()
		if err != nil {
			return nil, storageErr("worktree", err)
		}
		f, err := wt.Filesystem.Open(clean)
		if err == nil {
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return nil, storageErr("read file", err)
			}
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, storageErr("read file", err)
		}
	}

	commit, err := resolveCommit(repo, ref)
	if errors.Is(err, ErrNoCommitsYet) {
		return nil, &fs.PathError{Op: "read", Path: clean, Err: ErrFileNotFound}
	}
	if err != nil {
		return nil, err
	}

	file, err := commit.File(clean)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, &fs.PathError{Op: "read", Path: clean, Err: ErrFileNotFound}
	}
	if err != nil {
		return nil, storageErr("read file", err)
	}
	content, err := file.Contents()
	if err != nil {
		return nil, storageErr("read file", err)
	}
	return []byte(content), nil
}

// Log walks branch history from its head, newest first.
func (s *GitStore) Log(ctx context.Context, location, branch string) ([]LogEntry, error) {
	repo, err := s.open(location)
	if err != nil {
		return nil, err
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, branch)
	}

	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, storageErr("log", err)
	}
	defer iter.Close()

	entries := []LogEntry{}
	err = iter.ForEach(func(c *object.Commit) error {
		paths, err := changedPaths(ctx, c)
		if err != nil {
			return err
		}
		entry := LogEntry{
			Hash:        c.Hash.String(),
			Message:     c.Message,
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			When:        c.Author.When,
			Paths:       paths,
			System:      c.Author.Email == s.opts.System.Email,
		}
		if c.NumParents() > 0 {
			entry.ParentHash = c.ParentHashes[0].String()
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, storageErr("log", err)
	}
	return entries, nil
}

// changedPaths lists paths changed by c relative to its first parent.
func changedPaths(ctx context.Context, c *object.Commit) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, nil)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(changes))
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		paths = append(paths, name)
	}
	return paths, nil
}
