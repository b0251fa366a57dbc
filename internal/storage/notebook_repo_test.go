package storage

import (
	"context"
	"errors"
	"testing"
)

func createNotebook(t *testing.T, repo *NotebookRepo, owner, name string) *NotebookRecord {
	t.Helper()
	nb := &NotebookRecord{OwnerID: owner, Name: name}
	nb.RepoLocation = name + "-loc"
	if err := repo.Create(context.Background(), nb); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return nb
}

func TestNotebookRepo_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotebookRepo(db)
	ctx := context.Background()

	nb := &NotebookRecord{
		OwnerID:      "user-1",
		Name:         "Algo101",
		Description:  "algorithms",
		IsPublic:     true,
		RepoLocation: "loc-1",
	}
	if err := repo.Create(ctx, nb); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if nb.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.GetByID(ctx, nb.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Algo101" || got.Description != "algorithms" || !got.IsPublic || got.RepoLocation != "loc-1" {
		t.Errorf("GetByID() = %+v", got)
	}

	_, err = repo.GetByID(ctx, "missing")
	assertNotFound(t, err)
}

func TestNotebookRepo_DuplicateLocation(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotebookRepo(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &NotebookRecord{OwnerID: "u", Name: "a", RepoLocation: "same"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(ctx, &NotebookRecord{OwnerID: "u", Name: "b", RepoLocation: "same"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create() with reused location error = %v, want ErrDuplicate", err)
	}
}

func TestNotebookRepo_ListByOwnerAndIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotebookRepo(db)
	ctx := context.Background()

	createNotebook(t, repo, "alice", "one")
	createNotebook(t, repo, "alice", "two")
	createNotebook(t, repo, "bob", "three")

	tests := []struct {
		name  string
		owner string
		want  int
	}{
		{name: "alice", owner: "alice", want: 2},
		{name: "bob", owner: "bob", want: 1},
		{name: "nobody", owner: "carol", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListByOwner(ctx, tt.owner)
			if err != nil {
				t.Fatalf("ListByOwner() error = %v", err)
			}
			if got == nil {
				t.Fatal("ListByOwner() returned nil slice")
			}
			if len(got) != tt.want {
				t.Errorf("ListByOwner() returned %d notebooks, want %d", len(got), tt.want)
			}
		})
	}

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("ListIDs() returned %d ids, want 3", len(ids))
	}
}

func TestNotebookRepo_DeleteCascades(t *testing.T) {
	db := openTestDB(t)
	notebooks := NewNotebookRepo(db)
	branches := NewBranchRepo(db)
	commits := NewCommitRepo(db)
	ctx := context.Background()

	nb := createNotebook(t, notebooks, "alice", "doomed")
	if err := branches.Create(ctx, &BranchRecord{NotebookID: nb.ID, Name: "main", IsDefault: true}); err != nil {
		t.Fatalf("branches.Create() error = %v", err)
	}
	if err := commits.Create(ctx, &CommitRecord{
		NotebookID: nb.ID, Hash: "h1", Message: "m", AuthorName: "a", AuthorEmail: "a@x",
		BranchName: "main", Files: []FileChangeRecord{{Path: "a.md", Additions: 1}},
	}); err != nil {
		t.Fatalf("commits.Create() error = %v", err)
	}

	if err := notebooks.Delete(ctx, nb.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	for _, table := range []string{"branches", "commits", "commit_files"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s still has %d rows after notebook delete", table, n)
		}
	}

	assertNotFound(t, notebooks.Delete(ctx, nb.ID))
}
