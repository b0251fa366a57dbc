package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CommitStore defines the interface for the append-only commit history.
type CommitStore interface {
	// Create inserts a commit and its file summaries atomically.
	// Returns ErrDuplicate if the hash is already recorded for the notebook.
	Create(ctx context.Context, c *CommitRecord) error
	// GetByHash returns ErrNotFound if the commit is not recorded.
	GetByHash(ctx context.Context, notebookID, hash string) (*CommitRecord, error)
	// List returns commits newest first.
	List(ctx context.Context, filter CommitFilter) ([]CommitRecord, error)
}

// CommitRepo implements CommitStore on SQLite.
type CommitRepo struct {
	db *sql.DB
}

// NewCommitRepo creates a new CommitRepo.
func NewCommitRepo(db *sql.DB) *CommitRepo {
	return &CommitRepo{db: db}
}

const commitColumns = "id, notebook_id, hash, message, description, author_id, author_name, author_email, branch_name, parent_hash, additions, deletions, created_at"

// Create inserts a commit record and its per-file summaries in one transaction.
// A zero CreatedAt is set to the current time.
func (r *CommitRepo) Create(ctx context.Context, c *CommitRecord) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO commits (notebook_id, hash, message, description, author_id, author_name,
		 author_email, branch_name, parent_hash, additions, deletions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.NotebookID, c.Hash, c.Message, c.Description, c.AuthorID, c.AuthorName,
		c.AuthorEmail, c.BranchName, nullString(c.ParentHash), c.Additions, c.Deletions,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("commit %s: %w", c.Hash, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert commit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get commit id: %w", err)
	}

	for i, f := range c.Files {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO commit_files (commit_id, position, path, additions, deletions) VALUES (?, ?, ?, ?, ?)",
			id, i, f.Path, f.Additions, f.Deletions,
		); err != nil {
			return fmt.Errorf("failed to insert commit file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	c.ID = id
	return nil
}

// GetByHash gets a commit by notebook and hash, including its file summaries.
func (r *CommitRepo) GetByHash(ctx context.Context, notebookID, hash string) (*CommitRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+commitColumns+" FROM commits WHERE notebook_id = ? AND hash = ?",
		notebookID, hash,
	)
	c, err := scanCommit(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query commit: %w", err)
	}

	commits := []CommitRecord{*c}
	if err := r.loadFiles(ctx, commits); err != nil {
		return nil, err
	}
	return &commits[0], nil
}

// List lists a notebook's commits, optionally restricted to one branch,
// newest first. A non-positive limit returns every match.
func (r *CommitRepo) List(ctx context.Context, filter CommitFilter) ([]CommitRecord, error) {
	query := "SELECT " + commitColumns + " FROM commits WHERE notebook_id = ?"
	args := []any{filter.NotebookID}
	if filter.BranchName != "" {
		query += " AND branch_name = ?"
		args = append(args, filter.BranchName)
	}
	query += " ORDER BY julianday(created_at) DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commits: %w", err)
	}
	defer rows.Close()

	commits := []CommitRecord{}
	for rows.Next() {
		c, err := scanCommit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commit: %w", err)
		}
		commits = append(commits, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadFiles(ctx, commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// loadFiles fills Files for every commit with a single query.
func (r *CommitRepo) loadFiles(ctx context.Context, commits []CommitRecord) error {
	if len(commits) == 0 {
		return nil
	}

	byID := make(map[int64]int, len(commits))
	placeholders := make([]string, len(commits))
	args := make([]any, len(commits))
	for i := range commits {
		byID[commits[i].ID] = i
		commits[i].Files = []FileChangeRecord{}
		placeholders[i] = "?"
		args[i] = commits[i].ID
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT commit_id, path, additions, deletions FROM commit_files WHERE commit_id IN ("+
			strings.Join(placeholders, ",")+") ORDER BY commit_id, position",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to query commit files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var commitID int64
		var f FileChangeRecord
		if err := rows.Scan(&commitID, &f.Path, &f.Additions, &f.Deletions); err != nil {
			return fmt.Errorf("failed to scan commit file: %w", err)
		}
		idx := byID[commitID]
		commits[idx].Files = append(commits[idx].Files, f)
	}
	return rows.Err()
}

func scanCommit(row rowScanner) (*CommitRecord, error) {
	var c CommitRecord
	var parent sql.NullString
	var createdAt string
	if err := row.Scan(&c.ID, &c.NotebookID, &c.Hash, &c.Message, &c.Description, &c.AuthorID,
		&c.AuthorName, &c.AuthorEmail, &c.BranchName, &parent, &c.Additions, &c.Deletions,
		&createdAt); err != nil {
		return nil, err
	}
	c.ParentHash = parent.String

	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
