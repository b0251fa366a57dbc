package storage

import (
	"context"
	"errors"
	"testing"
)

func TestUserRepo(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &UserRecord{ID: "u1", Handle: "alice", DisplayName: "Alice"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, &UserRecord{ID: "u1", Handle: "alice", DisplayName: "Alice L.", Email: "a@x.io"}); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.DisplayName != "Alice L." || got.Email != "a@x.io" {
		t.Errorf("GetByID() = %+v, want updated fields", got)
	}

	err = repo.Upsert(ctx, &UserRecord{ID: "u2", Handle: "alice"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Upsert() with taken handle error = %v, want ErrDuplicate", err)
	}

	_, err = repo.GetByID(ctx, "nobody")
	assertNotFound(t, err)
}
