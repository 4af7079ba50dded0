package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/salesprofoma/kc-backend/internal/apperrors"
	"github.com/salesprofoma/kc-backend/internal/model"
)

// driverName is the name modernc.org/sqlite registers with database/sql.
const driverName = "sqlite"

func init() {
	// SQLite uses '?' placeholders; teach sqlx about the modernc driver name.
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// schema creates the leads table. Safe to run on every process start.
const schema = `
	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		service TEXT NOT NULL,
		message TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT 'unknown'
	)
`

// Store is the durable table of submitted leads: append-only inserts, point
// deletes by id, and full-table newest-first reads.
type Store struct {
	db *sqlx.DB

	// Prepared statements offer a significant speed increase if executed many times.
	insert        *sqlx.NamedStmt
	selectAll     *sqlx.Stmt
	deleteWhereId *sqlx.Stmt
}

// Open opens the SQLite database file at the given path.
func Open(path string) (*sql.DB, error) {
	return sql.Open(driverName, path)
}

// New wraps an already-open database handle, ensures the schema exists and
// prepares all statements. The handle can be a real database for production
// use or a mock database within unit tests.
func New(ctx context.Context, sqlDB *sql.DB) (*Store, error) {
	db := sqlx.NewDb(sqlDB, driverName)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "creating leads table: %v", err)
	}

	s := &Store{db: db}
	var err error
	s.insert, err = db.PrepareNamedContext(ctx, `
		INSERT INTO leads (created_at, name, email, phone, service, message, source)
		VALUES (:created_at, :name, :email, :phone, :service, :message, :source)
	`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "preparing insert: %v", err)
	}
	s.selectAll, err = db.PreparexContext(ctx, `
		SELECT * FROM leads ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "preparing select: %v", err)
	}
	s.deleteWhereId, err = db.PreparexContext(ctx, `
		DELETE FROM leads WHERE id = ?
	`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "preparing delete: %v", err)
	}
	return s, nil
}

// Insert appends one lead row and returns the newly assigned id. CreatedAt is
// set to the current time; empty Phone stays the empty string and an empty
// Source defaults to "unknown". The row is either fully written or not at all.
func (s *Store) Insert(ctx context.Context, lead model.Lead) (int64, error) {
	lead.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if lead.Source == "" {
		lead.Source = "unknown"
	}
	result, err := s.insert.ExecContext(ctx, &lead)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, "inserting lead: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, "reading inserted id: %v", err)
	}
	return id, nil
}

// ListAll returns every stored lead, most recent first. Equal timestamps are
// tiebroken by id descending.
func (s *Store) ListAll(ctx context.Context) ([]model.Lead, error) {
	leads := []model.Lead{}
	if err := s.selectAll.SelectContext(ctx, &leads); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "listing leads: %v", err)
	}
	return leads, nil
}

// DeleteByID removes the lead with the given id and returns the number of rows
// removed (0 or 1). Deleting a nonexistent id returns 0, not an error.
func (s *Store) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result, err := s.deleteWhereId.ExecContext(ctx, id)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, "deleting lead: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, "reading delete count: %v", err)
	}
	return count, nil
}

// Close releases the prepared statements and the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}
