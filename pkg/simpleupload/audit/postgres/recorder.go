// Package postgres provides a PostgreSQL-backed audit recorder.
//
// Expected table:
//
//	CREATE TABLE IF NOT EXISTS probe_audit (
//	    id UUID PRIMARY KEY,
//	    url TEXT NOT NULL,
//	    scheme TEXT NOT NULL,
//	    content_type TEXT NOT NULL DEFAULT '',
//	    size BIGINT NOT NULL DEFAULT -1,
//	    status TEXT NOT NULL,
//	    detail TEXT NOT NULL DEFAULT '',
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-upload/pkg/simpleupload/audit"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Recorder implements audit.Recorder using PostgreSQL
type Recorder struct {
	db DBTX
}

// New creates a new PostgreSQL recorder
func New(db DBTX) audit.Recorder {
	return &Recorder{db: db}
}

// NewWithPool creates a new PostgreSQL recorder with connection pool
func NewWithPool(pool *pgxpool.Pool) audit.Recorder {
	return &Recorder{db: pool}
}

// Error handling helper
func (r *Recorder) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("audit entry already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Recorder) Record(ctx context.Context, entry *audit.Entry) error {
	query := `
		INSERT INTO probe_audit (
			id, url, scheme, content_type, size, status, detail, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.URL, entry.Scheme, entry.ContentType,
		entry.Size, entry.Status, entry.Detail, entry.CreatedAt)

	if err != nil {
		return r.handlePostgresError("record probe", err)
	}

	return nil
}

func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
        SELECT id, url, scheme, content_type, size, status, detail, created_at
        FROM probe_audit
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, r.handlePostgresError("list probes", err)
	}
	defer rows.Close()

	var results []*audit.Entry
	for rows.Next() {
		var entry audit.Entry
		err := rows.Scan(
			&entry.ID, &entry.URL, &entry.Scheme, &entry.ContentType,
			&entry.Size, &entry.Status, &entry.Detail, &entry.CreatedAt)
		if err != nil {
			return nil, r.handlePostgresError("scan audit entry", err)
		}
		results = append(results, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate audit rows", err)
	}

	return results, nil
}
