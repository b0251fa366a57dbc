package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCommitRepo_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	nb := createNotebook(t, NewNotebookRepo(db), "alice", "nb")
	repo := NewCommitRepo(db)
	ctx := context.Background()

	c := &CommitRecord{
		NotebookID:  nb.ID,
		Hash:        "h1",
		Message:     "first",
		AuthorID:    "alice",
		AuthorName:  "Alice",
		AuthorEmail: "alice@example.com",
		BranchName:  "main",
		Additions:   3,
		Files: []FileChangeRecord{
			{Path: "b.md", Additions: 2},
			{Path: "a.md", Additions: 1},
		},
	}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.ID == 0 {
		t.Error("Create() did not set ID")
	}

	got, err := repo.GetByHash(ctx, nb.ID, "h1")
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if got.ParentHash != "" {
		t.Errorf("ParentHash = %q, want empty", got.ParentHash)
	}
	if len(got.Files) != 2 || got.Files[0].Path != "b.md" || got.Files[1].Path != "a.md" {
		t.Errorf("Files = %+v, want insertion order preserved", got.Files)
	}
	if got.AuthorName != "Alice" || got.Additions != 3 {
		t.Errorf("GetByHash() = %+v", got)
	}

	err = repo.Create(ctx, &CommitRecord{NotebookID: nb.ID, Hash: "h1", Message: "again", BranchName: "main"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create() duplicate hash error = %v, want ErrDuplicate", err)
	}

	_, err = repo.GetByHash(ctx, nb.ID, "missing")
	assertNotFound(t, err)
}

func TestCommitRepo_List(t *testing.T) {
	db := openTestDB(t)
	nb := createNotebook(t, NewNotebookRepo(db), "alice", "nb")
	repo := NewCommitRepo(db)
	ctx := context.Background()

	parent := ""
	for i := 1; i <= 5; i++ {
		branch := "main"
		if i%2 == 0 {
			branch = "exp"
		}
		hash := fmt.Sprintf("h%d", i)
		if err := repo.Create(ctx, &CommitRecord{
			NotebookID: nb.ID, Hash: hash, ParentHash: parent, Message: hash,
			BranchName: branch, Files: []FileChangeRecord{{Path: hash + ".md", Additions: 1}},
		}); err != nil {
			t.Fatalf("Create(%s) error = %v", hash, err)
		}
		parent = hash
	}

	tests := []struct {
		name   string
		filter CommitFilter
		want   []string
	}{
		{name: "all newest first", filter: CommitFilter{NotebookID: nb.ID}, want: []string{"h5", "h4", "h3", "h2", "h1"}},
		{name: "limit", filter: CommitFilter{NotebookID: nb.ID, Limit: 2}, want: []string{"h5", "h4"}},
		{name: "branch filter", filter: CommitFilter{NotebookID: nb.ID, BranchName: "exp"}, want: []string{"h4", "h2"}},
		{name: "other notebook", filter: CommitFilter{NotebookID: "other"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d commits, want %d", len(got), len(tt.want))
			}
			for i, c := range got {
				if c.Hash != tt.want[i] {
					t.Errorf("List()[%d] = %s, want %s", i, c.Hash, tt.want[i])
				}
				if len(c.Files) != 1 || c.Files[0].Path != c.Hash+".md" {
					t.Errorf("List()[%d].Files = %+v", i, c.Files)
				}
			}
		})
	}
}

func TestCommitRepo_ListOrdersByCommitTime(t *testing.T) {
	db := openTestDB(t)
	nb := createNotebook(t, NewNotebookRepo(db), "alice", "nb")
	repo := NewCommitRepo(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	// h2 is recorded last, as when a missed commit is recovered later.
	inserts := []struct {
		hash string
		at   time.Time
	}{
		{"h1", base},
		{"h3", base.Add(2 * time.Minute)},
		{"h2", base.Add(time.Minute)},
		{"h4", base.Add(2*time.Minute + 500*time.Millisecond)},
	}
	for _, in := range inserts {
		if err := repo.Create(ctx, &CommitRecord{
			NotebookID: nb.ID, Hash: in.hash, Message: in.hash, BranchName: "main", CreatedAt: in.at,
		}); err != nil {
			t.Fatalf("Create(%s) error = %v", in.hash, err)
		}
	}

	got, err := repo.List(ctx, CommitFilter{NotebookID: nb.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"h4", "h3", "h2", "h1"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d commits, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Hash != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, c.Hash, want[i])
		}
	}
}
