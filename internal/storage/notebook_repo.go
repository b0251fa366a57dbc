package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotebookStore defines the interface for notebook storage operations.
type NotebookStore interface {
	// Create inserts a notebook, assigning an ID when none is set.
	Create(ctx context.Context, nb *NotebookRecord) error
	// GetByID returns ErrNotFound if the notebook does not exist.
	GetByID(ctx context.Context, id string) (*NotebookRecord, error)
	// ListByOwner returns the owner's notebooks, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]NotebookRecord, error)
	// ListIDs returns every notebook ID.
	ListIDs(ctx context.Context) ([]string, error)
	// Delete removes the notebook together with its branches and commits.
	Delete(ctx context.Context, id string) error
}

// NotebookRepo implements NotebookStore on SQLite.
type NotebookRepo struct {
	db *sql.DB
}

// NewNotebookRepo creates a new NotebookRepo.
func NewNotebookRepo(db *sql.DB) *NotebookRepo {
	return &NotebookRepo{db: db}
}

const notebookColumns = "id, owner_id, name, description, is_public, repo_location, created_at, updated_at"

// Create inserts a new notebook.
func (r *NotebookRepo) Create(ctx context.Context, nb *NotebookRecord) error {
	if nb.ID == "" {
		nb.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	nb.CreatedAt, nb.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notebooks (`+notebookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nb.ID, nb.OwnerID, nb.Name, nb.Description, boolToInt(nb.IsPublic), nb.RepoLocation,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("notebook %s: %w", nb.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert notebook: %w", err)
	}
	return nil
}

// GetByID gets a notebook by ID.
func (r *NotebookRepo) GetByID(ctx context.Context, id string) (*NotebookRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+notebookColumns+" FROM notebooks WHERE id = ?", id)
	nb, err := scanNotebook(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook: %w", err)
	}
	return nb, nil
}

// ListByOwner lists notebooks owned by ownerID.
func (r *NotebookRepo) ListByOwner(ctx context.Context, ownerID string) ([]NotebookRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+notebookColumns+" FROM notebooks WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebooks: %w", err)
	}
	defer rows.Close()

	notebooks := []NotebookRecord{}
	for rows.Next() {
		nb, err := scanNotebook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		notebooks = append(notebooks, *nb)
	}
	return notebooks, rows.Err()
}

// ListIDs lists all notebook IDs ordered by creation.
func (r *NotebookRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM notebooks ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query notebook ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete deletes a notebook. Branches and commits cascade.
func (r *NotebookRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notebooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotebook(row rowScanner) (*NotebookRecord, error) {
	var nb NotebookRecord
	var isPublic int
	var createdAt, updatedAt string
	if err := row.Scan(&nb.ID, &nb.OwnerID, &nb.Name, &nb.Description, &isPublic,
		&nb.RepoLocation, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	nb.IsPublic = isPublic == 1

	var err error
	if nb.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if nb.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &nb, nil
}
