package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BranchStore defines the interface for branch record operations.
type BranchStore interface {
	// Create inserts a branch. Returns ErrDuplicate when the name is taken
	// or a second default branch is attempted.
	Create(ctx context.Context, b *BranchRecord) error
	// GetByName returns ErrNotFound if no such branch exists.
	GetByName(ctx context.Context, notebookID, name string) (*BranchRecord, error)
	// GetDefault returns the notebook's default branch.
	GetDefault(ctx context.Context, notebookID string) (*BranchRecord, error)
	// ListByNotebook lists branches with the default branch first.
	ListByNotebook(ctx context.Context, notebookID string) ([]BranchRecord, error)
	// UpdateLastCommit sets the branch's last-known commit hash.
	UpdateLastCommit(ctx context.Context, notebookID, name, hash string) error
	// Delete removes a branch record. Commits made on it are kept.
	Delete(ctx context.Context, notebookID, name string) error
}

// BranchRepo implements BranchStore on SQLite.
type BranchRepo struct {
	db *sql.DB
}

// NewBranchRepo creates a new BranchRepo.
func NewBranchRepo(db *sql.DB) *BranchRepo {
	return &BranchRepo{db: db}
}

const branchColumns = "id, notebook_id, name, description, is_default, last_commit_hash, created_by, created_at, updated_at"

// Create inserts a new branch record.
func (r *BranchRepo) Create(ctx context.Context, b *BranchRecord) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO branches (`+branchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.NotebookID, b.Name, b.Description, boolToInt(b.IsDefault),
		nullString(b.LastCommitHash), b.CreatedBy, formatTime(now), formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("branch %q: %w", b.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert branch: %w", err)
	}
	return nil
}

// GetByName gets a branch by notebook and name.
func (r *BranchRepo) GetByName(ctx context.Context, notebookID, name string) (*BranchRecord, error) {
	return r.getOne(ctx, "WHERE notebook_id = ? AND name = ?", notebookID, name)
}

// GetDefault gets the notebook's default branch.
func (r *BranchRepo) GetDefault(ctx context.Context, notebookID string) (*BranchRecord, error) {
	return r.getOne(ctx, "WHERE notebook_id = ? AND is_default = 1", notebookID)
}

func (r *BranchRepo) getOne(ctx context.Context, where string, args ...any) (*BranchRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+branchColumns+" FROM branches "+where, args...)
	b, err := scanBranch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query branch: %w", err)
	}
	return b, nil
}

// ListByNotebook lists a notebook's branches, default first, then by name.
func (r *BranchRepo) ListByNotebook(ctx context.Context, notebookID string) ([]BranchRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+branchColumns+" FROM branches WHERE notebook_id = ? ORDER BY is_default DESC, name",
		notebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	branches := []BranchRecord{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, *b)
	}
	return branches, rows.Err()
}

// UpdateLastCommit records the branch's new head.
func (r *BranchRepo) UpdateLastCommit(ctx context.Context, notebookID, name, hash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE branches SET last_commit_hash = ?, updated_at = ? WHERE notebook_id = ? AND name = ?",
		nullString(hash), formatTime(time.Now()), notebookID, name,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return expectOneRow(res)
}

// Delete deletes a branch record.
func (r *BranchRepo) Delete(ctx context.Context, notebookID, name string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM branches WHERE notebook_id = ? AND name = ?", notebookID, name)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBranch(row rowScanner) (*BranchRecord, error) {
	var b BranchRecord
	var isDefault int
	var lastCommit sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.NotebookID, &b.Name, &b.Description, &isDefault,
		&lastCommit, &b.CreatedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.IsDefault = isDefault == 1
	b.LastCommitHash = lastCommit.String

	var err error
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
