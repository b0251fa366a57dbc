package repostore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"notebookhub/internal/contextutil"
)

const placeholderFile = ".keep"

// Options configures a GitStore.
type Options struct {
	DefaultBranch string
	// System is the identity used for bootstrap commits and repository config.
	System Signature
	// SeedCommit makes Bootstrap commit a placeholder file so the default
	// branch has history from the start.
	SeedCommit bool
	// Now stamps commits. Defaults to time.Now.
	Now func() time.Time
}

// GitStore implements Store with one non-bare git repository per location.
// It does no locking of its own; callers serialize mutations per location.
type GitStore struct {
	locator Locator
	opts    Options
}

// NewGitStore creates a GitStore.
func NewGitStore(locator Locator, opts Options) *GitStore {
	if opts.DefaultBranch == "" {
		opts.DefaultBranch = "main"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GitStore{locator: locator, opts: opts}
}

func (s *GitStore) dir(location string) (string, error) {
	return s.locator.Dir(location)
}

// open opens an existing repository.
func (s *GitStore) open(location string) (*git.Repository, error) {
	dir, err := s.dir(location)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ErrNotBootstrapped
	}
	if err != nil {
		return nil, storageErr("open", err)
	}
	return repo, nil
}

// Bootstrap initializes the repository, sets the system identity in its
// config and, when enabled, makes the seed commit. Running it again finishes
// any step a previous run did not complete.
func (s *GitStore) Bootstrap(ctx context.Context, location string) error {
	logger := contextutil.LoggerFromContext(ctx)

	dir, err := s.dir(location)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storageErr("bootstrap", err)
	}

	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(s.opts.DefaultBranch),
		},
	})
	switch {
	case errors.Is(err, git.ErrRepositoryAlreadyExists):
		if repo, err = git.PlainOpen(dir); err != nil {
			return storageErr("bootstrap", err)
		}
	case err != nil:
		return storageErr("bootstrap", err)
	default:
		logger.DebugContext(ctx, "initialized repository", "location", location)
	}

	cfg, err := repo.Config()
	if err != nil {
		return storageErr("bootstrap", err)
	}
	if cfg.User.Name != s.opts.System.Name || cfg.User.Email != s.opts.System.Email {
		cfg.User.Name = s.opts.System.Name
		cfg.User.Email = s.opts.System.Email
		if err := repo.SetConfig(cfg); err != nil {
			return storageErr("bootstrap", err)
		}
	}

	if !s.opts.SeedCommit {
		return nil
	}
	has, err := hasCommits(repo)
	if err != nil || has {
		return err
	}
	res, err := s.commit(ctx, repo, []File{{Path: placeholderFile}}, "Initialize notebook", s.opts.System)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "seed commit created", "location", location, "hash", res.Hash)
	return nil
}

// IsBootstrapped checks for the repository's git directory.
func (s *GitStore) IsBootstrapped(ctx context.Context, location string) (bool, error) {
	dir, err := s.dir(location)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(dir, git.GitDirName))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("stat", err)
	}
	return info.IsDir(), nil
}

// HasCommits reports whether any branch exists. Branches only exist once
// they point at a commit.
func (s *GitStore) HasCommits(ctx context.Context, location string) (bool, error) {
	repo, err := s.open(location)
	if err != nil {
		return false, err
	}
	return hasCommits(repo)
}

func hasCommits(repo *git.Repository) (bool, error) {
	iter, err := repo.Branches()
	if err != nil {
		return false, storageErr("list branches", err)
	}
	found := false
	err = iter.ForEach(func(*plumbing.Reference) error {
		found = true
		return storer.ErrStop
	})
	if err != nil {
		return false, storageErr("list branches", err)
	}
	return found, nil
}

// CreateBranch points a new branch at the commit from resolves to.
func (s *GitStore) CreateBranch(ctx context.Context, location, name, from string) (string, error) {
	repo, err := s.open(location)
	if err != nil {
		return "", err
	}

	has, err := hasCommits(repo)
	if err != nil {
		return "", err
	}
	if !has {
		return "", ErrNoCommitsYet
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, false); err == nil {
		return "", fmt.Errorf("%w: %s", ErrBranchExists, name)
	}

	commit, err := resolveCommit(repo, from)
	if errors.Is(err, ErrRefNotFound) || errors.Is(err, ErrNoCommitsYet) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, from)
	}
	if err != nil {
		return "", err
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(refName, commit.Hash)); err != nil {
		return "", storageErr("create branch", err)
	}
	return commit.Hash.String(), nil
}

// Checkout switches the working tree to name. It refuses to leave a branch
// with uncommitted edits, including saved files that were never committed.
func (s *GitStore) Checkout(ctx context.Context, location, name string) error {
	repo, err := s.open(location)
	if err != nil {
		return err
	}

	has, err := hasCommits(repo)
	if err != nil {
		return err
	}
	if !has {
		return nil
	}

	current, err := currentBranch(repo)
	if err != nil {
		return err
	}
	if current == name {
		return nil
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, false); err != nil {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return storageErr("checkout", err)
	}
	status, err := wt.Status()
	if err != nil {
		return storageErr("checkout", err)
	}
	if !status.IsClean() {
		return fmt.Errorf("%w on branch %s", ErrUncommittedChanges, current)
	}

	err = wt.Checkout(&git.CheckoutOptions{Branch: refName})
	if errors.Is(err, git.ErrUnstagedChanges) {
		return fmt.Errorf("%w on branch %s", ErrUncommittedChanges, current)
	}
	if err != nil {
		return storageErr("checkout", err)
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "checked out branch",
		"location", location, "from", current, "to", name)
	return nil
}

// CurrentBranch returns the branch HEAD points at.
func (s *GitStore) CurrentBranch(ctx context.Context, location string) (string, error) {
	repo, err := s.open(location)
	if err != nil {
		return "", err
	}
	return currentBranch(repo)
}

func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", storageErr("read HEAD", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", storageErr("read HEAD", errors.New("HEAD is detached"))
	}
	return head.Target().Short(), nil
}

// DeleteBranch removes a branch ref. The checked-out branch and the last
// remaining branch cannot be deleted.
func (s *GitStore) DeleteBranch(ctx context.Context, location, name string) error {
	repo, err := s.open(location)
	if err != nil {
		return err
	}

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, false); err != nil {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	heads, err := listBranches(repo)
	if err != nil {
		return err
	}
	if len(heads) <= 1 {
		return ErrLastBranch
	}

	current, err := currentBranch(repo)
	if err != nil {
		return err
	}
	if current == name {
		return fmt.Errorf("%w: %s", ErrBranchCheckedOut, name)
	}

	if err := repo.Storer.RemoveReference(refName); err != nil {
		return storageErr("delete branch", err)
	}
	return nil
}

// Branches lists all branches sorted by name.
func (s *GitStore) Branches(ctx context.Context, location string) ([]BranchHead, error) {
	repo, err := s.open(location)
	if err != nil {
		return nil, err
	}
	return listBranches(repo)
}

func listBranches(repo *git.Repository) ([]BranchHead, error) {
	iter, err := repo.Branches()
	if err != nil {
		return nil, storageErr("list branches", err)
	}
	heads := []BranchHead{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		heads = append(heads, BranchHead{Name: ref.Name().Short(), Hash: ref.Hash().String()})
		return nil
	})
	if err != nil {
		return nil, storageErr("list branches", err)
	}
	sort.Slice(heads, func(i, j int) bool { return heads[i].Name < heads[j].Name })
	return heads, nil
}

// resolveCommit resolves "", "HEAD", a branch name or a revision to a commit.
func resolveCommit(repo *git.Repository, ref string) (*object.Commit, error) {
	var hash plumbing.Hash
	switch {
	case ref == "" || ref == "HEAD":
		head, err := repo.Head()
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommitsYet
		}
		if err != nil {
			return nil, storageErr("resolve HEAD", err)
		}
		hash = head.Hash()
	default:
		if r, err := repo.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
			hash = r.Hash()
			break
		}
		h, err := repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRefNotFound, ref)
		}
		hash = *h
	}

	commit, err := repo.CommitObject(hash)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRefNotFound, ref)
	}
	if err != nil {
		return nil, storageErr("read commit", err)
	}
	return commit, nil
}

// Remove deletes the repository and its shard directory when left empty.
func (s *GitStore) Remove(ctx context.Context, location string) error {
	dir, err := s.dir(location)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return storageErr("remove", err)
	}
	_ = os.Remove(filepath.Dir(dir))
	return nil
}
