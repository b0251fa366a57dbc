package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_user_store.go -package=mocks notebookhub/internal/storage UserStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UserStore defines the interface for caller identity storage.
type UserStore interface {
	// Upsert inserts the user or refreshes handle, name and email of an existing one.
	Upsert(ctx context.Context, user *UserRecord) error
	// GetByID returns ErrNotFound if the user is unknown.
	GetByID(ctx context.Context, id string) (*UserRecord, error)
}

// UserRepo implements UserStore on SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts a new user or updates an existing one, preserving created_at.
func (r *UserRepo) Upsert(ctx context.Context, user *UserRecord) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, handle, display_name, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 handle = excluded.handle, display_name = excluded.display_name,
		 email = excluded.email, updated_at = excluded.updated_at`,
		user.ID, user.Handle, user.DisplayName, user.Email, formatTime(now), formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("handle %q: %w", user.Handle, ErrDuplicate)
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	user.UpdatedAt = now
	return nil
}

// GetByID gets a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*UserRecord, error) {
	var u UserRecord
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, handle, display_name, email, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Handle, &u.DisplayName, &u.Email, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
