// Package sqlite provides SQLite-backed persistence for the submission
// journal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/harborlight/intake/internal/journal"
	"github.com/harborlight/intake/internal/journal/sqlite/migrations"
	sqlitemigrate "github.com/harborlight/intake/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for submission journal entries.
type Store struct {
	sqlDB *sql.DB
}

var _ journal.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a journal SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}

// AppendEntry persists one submission attempt row.
func (s *Store) AppendEntry(ctx context.Context, entry journal.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO submissions (id, record_id, success, message, warning, pdf_generated, email_sent, pdf_uploaded, pdf_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.RecordID,
		boolToInt(entry.Success),
		entry.Message,
		entry.Warning,
		boolToInt(entry.PDFGenerated),
		boolToInt(entry.EmailSent),
		boolToInt(entry.PDFUploaded),
		entry.PDFURL,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert submission entry: %w", err)
	}
	return nil
}

// GetEntry loads one submission attempt by id.
func (s *Store) GetEntry(ctx context.Context, id string) (journal.Entry, error) {
	if err := ctx.Err(); err != nil {
		return journal.Entry{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, record_id, success, message, warning, pdf_generated, email_sent, pdf_uploaded, pdf_url, created_at
FROM submissions WHERE id = ?`, id)

	var entry journal.Entry
	var success, pdfGenerated, emailSent, pdfUploaded int
	var createdAt int64
	err := row.Scan(
		&entry.ID,
		&entry.RecordID,
		&success,
		&entry.Message,
		&entry.Warning,
		&pdfGenerated,
		&emailSent,
		&pdfUploaded,
		&entry.PDFURL,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, journal.ErrNotFound
	}
	if err != nil {
		return journal.Entry{}, fmt.Errorf("scan submission entry: %w", err)
	}

	entry.Success = success == 1
	entry.PDFGenerated = pdfGenerated == 1
	entry.EmailSent = emailSent == 1
	entry.PDFUploaded = pdfUploaded == 1
	entry.CreatedAt = fromMillis(createdAt)
	return entry, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
