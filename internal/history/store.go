package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/treemap/internal/db"
)

// Store persists render history.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Format == "" {
		entry.Format = "html"
	}
	if entry.Categories == nil {
		entry.Categories = []string{}
	}

	categories, err := json.Marshal(entry.Categories)
	if err != nil {
		return fmt.Errorf("marshalling categories: %w", err)
	}

	var errText sql.NullString
	if entry.Error != "" {
		errText = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO render_runs (
			id, dataset, url, state, format, leaves, categories, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Dataset,
		entry.URL,
		string(entry.Outcome),
		entry.Format,
		entry.Leaves,
		string(categories),
		entry.DurationMS,
		errText,
	)
	if err != nil {
		return fmt.Errorf("inserting render run: %w", err)
	}
	return nil
}

const columns = "id, created_at, dataset, url, state, format, leaves, categories, duration_ms, error"

// GetByID retrieves a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM render_runs WHERE id = ?", id)
	return scanInto(row)
}

// QueryFilter controls which entries Query returns.
type QueryFilter struct {
	Dataset string
	Outcome Outcome
	Since   *time.Time
	Limit   int
	Offset  int
}

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Dataset != "" {
		clauses = append(clauses, "dataset = ?")
		args = append(args, filter.Dataset)
	}
	if filter.Outcome != "" {
		clauses = append(clauses, "state = ?")
		args = append(args, string(filter.Outcome))
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT " + columns + " FROM render_runs"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying render runs: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes entries older than the given time and returns how
// many were deleted.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM render_runs WHERE created_at < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old render runs: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e              Entry
		ts, outcome    string
		categoriesJSON string
		errText        sql.NullString
	)

	err := sc.Scan(
		&e.ID, &ts, &e.Dataset, &e.URL, &outcome, &e.Format,
		&e.Leaves, &categoriesJSON, &e.DurationMS, &errText,
	)
	if err != nil {
		return nil, err
	}

	e.Outcome = Outcome(outcome)
	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		e.Timestamp = t
	}
	if errText.Valid {
		e.Error = errText.String
	}
	if err := json.Unmarshal([]byte(categoriesJSON), &e.Categories); err != nil {
		e.Categories = nil
	}

	return &e, nil
}
