package repostore

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/klauspost/compress/zstd"
)

var system = Signature{Name: "Notebook Bot", Email: "bot@notebooks.local"}
var alice = Signature{Name: "Alice", Email: "alice@example.com"}

func newTestStore(t *testing.T, seed bool) *GitStore {
	t.Helper()
	return NewGitStore(NewShardedLocator(t.TempDir()), Options{
		DefaultBranch: "main",
		System:        system,
		SeedCommit:    seed,
	})
}

func bootstrap(t *testing.T, s *GitStore, loc string) {
	t.Helper()
	if err := s.Bootstrap(context.Background(), loc); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
}

func mustCommit(t *testing.T, s *GitStore, loc, path, content, msg string) *CommitResult {
	t.Helper()
	res, err := s.Commit(context.Background(), loc, []File{{Path: path, Content: []byte(content)}}, msg, alice)
	if err != nil {
		t.Fatalf("Commit(%s) error = %v", msg, err)
	}
	return res
}

func TestGitStore_Bootstrap(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)

	ok, err := s.IsBootstrapped(ctx, "nb1")
	if err != nil || ok {
		t.Fatalf("IsBootstrapped() before = %v, %v; want false, nil", ok, err)
	}
	if _, err := s.HasCommits(ctx, "nb1"); !errors.Is(err, ErrNotBootstrapped) {
		t.Errorf("HasCommits() before bootstrap error = %v, want ErrNotBootstrapped", err)
	}

	bootstrap(t, s, "nb1")
	bootstrap(t, s, "nb1")

	ok, err = s.IsBootstrapped(ctx, "nb1")
	if err != nil || !ok {
		t.Fatalf("IsBootstrapped() after = %v, %v; want true, nil", ok, err)
	}

	has, err := s.HasCommits(ctx, "nb1")
	if err != nil || has {
		t.Errorf("HasCommits() = %v, %v; want false without a seed commit", has, err)
	}

	branch, err := s.CurrentBranch(ctx, "nb1")
	if err != nil || branch != "main" {
		t.Errorf("CurrentBranch() = %q, %v; want main", branch, err)
	}

	dir, _ := s.locator.Dir("nb1")
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen() error = %v", err)
	}
	cfg, err := repo.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User.Name != system.Name || cfg.User.Email != system.Email {
		t.Errorf("repository identity = %s <%s>, want system identity", cfg.User.Name, cfg.User.Email)
	}

	tree, err := s.FileTree(ctx, "nb1", "")
	if err != nil || len(tree) != 0 {
		t.Errorf("FileTree() on empty repository = %v, %v; want empty, nil", tree, err)
	}
}

func TestGitStore_BootstrapSeedCommit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, true)
	bootstrap(t, s, "nb1")
	bootstrap(t, s, "nb1")

	has, err := s.HasCommits(ctx, "nb1")
	if err != nil || !has {
		t.Fatalf("HasCommits() = %v, %v; want true", has, err)
	}

	entries, err := s.Log(ctx, "nb1", "main")
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Log() returned %d entries, want exactly one seed commit", len(entries))
	}
	if !entries[0].System || entries[0].ParentHash != "" {
		t.Errorf("seed entry = %+v, want system commit without parent", entries[0])
	}

	tree, _ := s.FileTree(ctx, "nb1", "main")
	if len(tree) != 1 || tree[0] != placeholderFile {
		t.Errorf("FileTree() = %v, want [%s]", tree, placeholderFile)
	}
}

func TestGitStore_CommitChain(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")

	first := mustCommit(t, s, "nb1", "notes.md", "# Hi", "first")
	if first.ParentHash != "" {
		t.Errorf("first commit parent = %q, want none", first.ParentHash)
	}
	second := mustCommit(t, s, "nb1", "notes.md", "# Hi\nmore", "second")
	if second.ParentHash != first.Hash {
		t.Errorf("second commit parent = %q, want %q", second.ParentHash, first.Hash)
	}

	_, err := s.Commit(ctx, "nb1", []File{{Path: "notes.md", Content: []byte("# Hi\nmore")}}, "again", alice)
	if !errors.Is(err, ErrNothingToCommit) {
		t.Errorf("Commit() identical content error = %v, want ErrNothingToCommit", err)
	}

	entries, err := s.Log(ctx, "nb1", "main")
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Log() returned %d entries, want 2", len(entries))
	}
	if entries[0].Hash != second.Hash || entries[0].AuthorEmail != alice.Email || entries[0].System {
		t.Errorf("Log()[0] = %+v", entries[0])
	}
	if len(entries[1].Paths) != 1 || entries[1].Paths[0] != "notes.md" {
		t.Errorf("Log()[1].Paths = %v, want [notes.md]", entries[1].Paths)
	}
}

func TestGitStore_CommitStagesOnlyGivenPaths(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")
	mustCommit(t, s, "nb1", "a.md", "a", "a")

	if err := s.WriteWorkingFiles(ctx, "nb1", []File{{Path: "draft/b.md", Content: []byte("draft")}}); err != nil {
		t.Fatalf("WriteWorkingFiles() error = %v", err)
	}
	res := mustCommit(t, s, "nb1", "c.md", "c", "c")

	diff, err := s.Diff(ctx, "nb1", res.ParentHash, res.Hash)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if strings.Contains(diff, "draft/b.md") {
		t.Errorf("commit picked up an unstaged working file:\n%s", diff)
	}

	status, err := s.Status(ctx, "nb1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Branch != "main" || len(status.Changed) != 1 || status.Changed[0] != "draft/b.md" {
		t.Errorf("Status() = %+v, want draft/b.md pending on main", status)
	}
}

func TestGitStore_Branches(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")

	if _, err := s.CreateBranch(ctx, "nb1", "exp", "main"); !errors.Is(err, ErrNoCommitsYet) {
		t.Fatalf("CreateBranch() on empty repository error = %v, want ErrNoCommitsYet", err)
	}
	if err := s.Checkout(ctx, "nb1", "anything"); err != nil {
		t.Errorf("Checkout() on empty repository error = %v, want nil", err)
	}

	h1 := mustCommit(t, s, "nb1", "notes.md", "# Hi", "first")

	hash, err := s.CreateBranch(ctx, "nb1", "exp", "main")
	if err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	if hash != h1.Hash {
		t.Errorf("CreateBranch() hash = %s, want %s", hash, h1.Hash)
	}
	if _, err := s.CreateBranch(ctx, "nb1", "exp", "main"); !errors.Is(err, ErrBranchExists) {
		t.Errorf("CreateBranch() duplicate error = %v, want ErrBranchExists", err)
	}
	if _, err := s.CreateBranch(ctx, "nb1", "other", "nope"); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("CreateBranch() bad source error = %v, want ErrSourceNotFound", err)
	}

	if err := s.Checkout(ctx, "nb1", "exp"); err != nil {
		t.Fatalf("Checkout(exp) error = %v", err)
	}
	h2 := mustCommit(t, s, "nb1", "notes.md", "# Hi\nmore", "second")
	if h2.ParentHash != h1.Hash {
		t.Errorf("commit on exp parent = %s, want %s", h2.ParentHash, h1.Hash)
	}

	// main is unaffected by exp
	content, err := s.ReadFile(ctx, "nb1", "notes.md", "main")
	if err != nil || string(content) != "# Hi" {
		t.Errorf("ReadFile(main) = %q, %v; want %q", content, err, "# Hi")
	}
	content, err = s.ReadFile(ctx, "nb1", "notes.md", "")
	if err != nil || string(content) != "# Hi\nmore" {
		t.Errorf("ReadFile(working) = %q, %v", content, err)
	}

	heads, err := s.Branches(ctx, "nb1")
	if err != nil || len(heads) != 2 {
		t.Fatalf("Branches() = %v, %v", heads, err)
	}
	if heads[0].Name != "exp" || heads[0].Hash != h2.Hash || heads[1].Name != "main" || heads[1].Hash != h1.Hash {
		t.Errorf("Branches() = %+v", heads)
	}

	if err := s.DeleteBranch(ctx, "nb1", "exp"); !errors.Is(err, ErrBranchCheckedOut) {
		t.Errorf("DeleteBranch(checked out) error = %v, want ErrBranchCheckedOut", err)
	}
	if err := s.Checkout(ctx, "nb1", "main"); err != nil {
		t.Fatalf("Checkout(main) error = %v", err)
	}
	if err := s.DeleteBranch(ctx, "nb1", "exp"); err != nil {
		t.Fatalf("DeleteBranch(exp) error = %v", err)
	}
	if err := s.DeleteBranch(ctx, "nb1", "exp"); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("DeleteBranch(missing) error = %v, want ErrBranchNotFound", err)
	}
	if err := s.DeleteBranch(ctx, "nb1", "main"); !errors.Is(err, ErrLastBranch) {
		t.Errorf("DeleteBranch(last) error = %v, want ErrLastBranch", err)
	}
	if err := s.Checkout(ctx, "nb1", "ghost"); !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("Checkout(ghost) error = %v, want ErrBranchNotFound", err)
	}
}

func TestGitStore_CheckoutRefusesUncommittedChanges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")
	mustCommit(t, s, "nb1", "notes.md", "v1", "first")
	if _, err := s.CreateBranch(ctx, "nb1", "exp", "main"); err != nil {
		t.Fatal(err)
	}

	if err := s.WriteWorkingFiles(ctx, "nb1", []File{{Path: "notes.md", Content: []byte("edited")}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Checkout(ctx, "nb1", "exp"); !errors.Is(err, ErrUncommittedChanges) {
		t.Errorf("Checkout() with edits error = %v, want ErrUncommittedChanges", err)
	}
	// same branch is always fine
	if err := s.Checkout(ctx, "nb1", "main"); err != nil {
		t.Errorf("Checkout(current) error = %v", err)
	}
}

func TestGitStore_CheckoutRefusesNewWorkingFiles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")
	mustCommit(t, s, "nb1", "notes.md", "v1", "first")
	if _, err := s.CreateBranch(ctx, "nb1", "exp", "main"); err != nil {
		t.Fatal(err)
	}

	if err := s.WriteWorkingFiles(ctx, "nb1", []File{{Path: "draft.md", Content: []byte("draft")}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Checkout(ctx, "nb1", "exp"); !errors.Is(err, ErrUncommittedChanges) {
		t.Errorf("Checkout() with a new file error = %v, want ErrUncommittedChanges", err)
	}

	data, err := s.ReadFile(ctx, "nb1", "draft.md", "")
	if err != nil || string(data) != "draft" {
		t.Errorf("ReadFile(draft.md) = %q, %v; want the saved draft", data, err)
	}
	branch, err := s.CurrentBranch(ctx, "nb1")
	if err != nil || branch != "main" {
		t.Errorf("CurrentBranch() = %q, %v; want main", branch, err)
	}
}

func TestGitStore_CommitTimes(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 500, time.UTC)
	s := NewGitStore(NewShardedLocator(t.TempDir()), Options{
		DefaultBranch: "main",
		System:        system,
		Now:           func() time.Time { return base },
	})
	bootstrap(t, s, "nb1")
	res := mustCommit(t, s, "nb1", "a.md", "a", "first")

	if !res.When.Equal(base.Truncate(time.Second)) {
		t.Errorf("When = %v, want %v", res.When, base.Truncate(time.Second))
	}
	log, err := s.Log(context.Background(), "nb1", "main")
	if err != nil || len(log) != 1 {
		t.Fatalf("Log() = %v, %v", log, err)
	}
	if !log[0].When.Equal(res.When) {
		t.Errorf("Log() When = %v, want %v", log[0].When, res.When)
	}
}

func TestGitStore_DiffAndRead(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")

	first, err := s.Commit(ctx, "nb1", []File{
		{Path: "notes.md", Content: []byte("# Hi")},
		{Path: "week1/a.md", Content: []byte("a\nb\n")},
	}, "first", alice)
	if err != nil {
		t.Fatal(err)
	}

	diff, err := s.Diff(ctx, "nb1", EmptyTreeRef, first.Hash)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	for _, want := range []string{"diff --git a/notes.md b/notes.md", "diff --git a/week1/a.md b/week1/a.md", "+# Hi", "+b"} {
		if !strings.Contains(diff, want) {
			t.Errorf("Diff() missing %q:\n%s", want, diff)
		}
	}
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			t.Errorf("first-commit diff should be additions only, got %q", line)
		}
	}

	if _, err := s.Diff(ctx, "nb1", EmptyTreeRef, "deadbeef"); !errors.Is(err, ErrRefNotFound) {
		t.Errorf("Diff() unknown ref error = %v, want ErrRefNotFound", err)
	}

	_, err = s.ReadFile(ctx, "nb1", "missing.md", "")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want ErrFileNotFound", err)
	}
	var pe *fs.PathError
	if !errors.As(err, &pe) || pe.Path != "missing.md" {
		t.Errorf("ReadFile(missing) error = %v, want path missing.md", err)
	}
	if _, err := s.ReadFile(ctx, "nb1", "../escape", ""); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("ReadFile(escape) error = %v, want ErrInvalidPath", err)
	}

	tree, err := s.FileTree(ctx, "nb1", first.Hash)
	if err != nil || len(tree) != 2 {
		t.Errorf("FileTree(hash) = %v, %v", tree, err)
	}
	if _, err := s.FileTree(ctx, "nb1", "nope"); !errors.Is(err, ErrRefNotFound) {
		t.Errorf("FileTree(nope) error = %v, want ErrRefNotFound", err)
	}
}

func TestGitStore_ArchiveAndRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, false)
	bootstrap(t, s, "nb1")
	mustCommit(t, s, "nb1", "docs/readme.md", "hello", "first")

	var buf bytes.Buffer
	if err := s.Archive(ctx, "nb1", "main", &buf); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	dec, err := zstd.NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	tr := tar.NewReader(dec)
	hdr, err := tr.Next()
	if err != nil {
		t.Fatalf("tar Next() error = %v", err)
	}
	if hdr.Name != "docs/readme.md" {
		t.Errorf("archive entry = %q, want docs/readme.md", hdr.Name)
	}
	body, _ := io.ReadAll(tr)
	if string(body) != "hello" {
		t.Errorf("archive content = %q, want hello", body)
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Errorf("archive has extra entries: %v", err)
	}

	if err := s.Remove(ctx, "nb1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	ok, err := s.IsBootstrapped(ctx, "nb1")
	if err != nil || ok {
		t.Errorf("IsBootstrapped() after Remove = %v, %v", ok, err)
	}
}
