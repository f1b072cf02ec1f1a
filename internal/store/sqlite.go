package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// storageErr tags a low-level database failure with the domain taxonomy.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

const reminderColumns = `id, chat_id, hour, minute, message, recurrence, active, next_fire_at, created_at`

type reminderScanner interface {
	Scan(dest ...any) error
}

func scanReminder(row reminderScanner) (*domain.Reminder, error) {
	var (
		id         int64
		chatID     int64
		hour       int
		minute     int
		message    string
		recurrence string
		activeInt  int
		nextFireAt int64
		createdAt  int64
	)
	if err := row.Scan(&id, &chatID, &hour, &minute, &message, &recurrence, &activeInt, &nextFireAt, &createdAt); err != nil {
		return nil, err
	}
	return &domain.Reminder{
		ID:         domain.ReminderID(id),
		ChatID:     chatID,
		At:         domain.TimeOfDay{Hour: hour, Minute: minute},
		Message:    message,
		Recurrence: domain.Recurrence(recurrence),
		Active:     activeInt != 0,
		NextFireAt: time.Unix(nextFireAt, 0).UTC(),
		CreatedAt:  time.Unix(createdAt, 0).UTC(),
	}, nil
}

// CreateReminder inserts a reminder row and returns the assigned id.
func (r *SQLiteRepo) CreateReminder(ctx context.Context, rem *domain.Reminder) (domain.ReminderID, error) {
	if rem == nil {
		return 0, storageErr("create reminder", errors.New("nil reminder"))
	}
	created := rem.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (chat_id, hour, minute, message, recurrence, active, next_fire_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rem.ChatID, rem.At.Hour, rem.At.Minute, rem.Message, string(rem.Recurrence),
		boolToInt(rem.Active), rem.NextFireAt.UTC().Unix(), created.UTC().Unix(),
	)
	if err != nil {
		return 0, storageErr("create reminder", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("create reminder", err)
	}
	rem.ID = domain.ReminderID(id)
	return rem.ID, nil
}

// GetReminder returns a reminder by id, or domain.ErrNotFound.
func (r *SQLiteRepo) GetReminder(ctx context.Context, id domain.ReminderID) (*domain.Reminder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, int64(id))
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reminder %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr("get reminder", err)
	}
	return rem, nil
}

// UpdateReminder performs an atomic read-modify-write of a single row.
// The mutator sees the current persisted state; returning an error from it
// rolls the transaction back and surfaces that error unchanged.
func (r *SQLiteRepo) UpdateReminder(ctx context.Context, id domain.ReminderID, mutate func(*domain.Reminder) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("update reminder", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, int64(id))
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: reminder %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return storageErr("update reminder", err)
	}

	if err := mutate(rem); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE reminders
		SET hour = ?, minute = ?, message = ?, recurrence = ?, active = ?, next_fire_at = ?
		WHERE id = ?`,
		rem.At.Hour, rem.At.Minute, rem.Message, string(rem.Recurrence), boolToInt(rem.Active),
		rem.NextFireAt.UTC().Unix(), int64(id),
	)
	if err != nil {
		return storageErr("update reminder", err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr("update reminder", err)
	}
	return nil
}

// ListActiveReminders returns every active reminder, ordered by next fire time.
func (r *SQLiteRepo) ListActiveReminders(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE active = 1 ORDER BY next_fire_at ASC`)
	if err != nil {
		return nil, storageErr("list active reminders", err)
	}
	defer rows.Close()

	var res []domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, storageErr("list active reminders", err)
		}
		res = append(res, *rem)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list active reminders", err)
	}
	return res, nil
}

// AppendEntry inserts a journal entry and returns the assigned id.
func (r *SQLiteRepo) AppendEntry(ctx context.Context, e *domain.JournalEntry) (domain.EntryID, error) {
	if e == nil {
		return 0, storageErr("append entry", errors.New("nil entry"))
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO journal_entries (chat_id, created_at, text)
		VALUES (?, ?, ?)`,
		e.ChatID, e.CreatedAt.UTC().Unix(), e.Text,
	)
	if err != nil {
		return 0, storageErr("append entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("append entry", err)
	}
	e.ID = domain.EntryID(id)
	return e.ID, nil
}

// EntriesBetween returns a chat's entries in [from, to), ascending.
// Insertion id breaks ties between entries recorded in the same second.
func (r *SQLiteRepo) EntriesBetween(ctx context.Context, chatID int64, from, to time.Time) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, created_at, text
		FROM journal_entries
		WHERE chat_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, id ASC`,
		chatID, from.UTC().Unix(), to.UTC().Unix(),
	)
	if err != nil {
		return nil, storageErr("entries between", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// RecentEntries returns up to limit newest entries, descending, plus the
// chat's total entry count so callers can report truncation.
func (r *SQLiteRepo) RecentEntries(ctx context.Context, chatID int64, limit int) ([]domain.JournalEntry, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE chat_id = ?`, chatID,
	).Scan(&total); err != nil {
		return nil, 0, storageErr("recent entries", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, created_at, text
		FROM journal_entries
		WHERE chat_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		chatID, limit,
	)
	if err != nil {
		return nil, 0, storageErr("recent entries", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func collectEntries(rows *sql.Rows) ([]domain.JournalEntry, error) {
	var res []domain.JournalEntry
	for rows.Next() {
		var (
			id        int64
			chatID    int64
			createdAt int64
			text      string
		)
		if err := rows.Scan(&id, &chatID, &createdAt, &text); err != nil {
			return nil, storageErr("scan entry", err)
		}
		res = append(res, domain.JournalEntry{
			ID:        domain.EntryID(id),
			ChatID:    chatID,
			CreatedAt: time.Unix(createdAt, 0).UTC(),
			Text:      text,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("scan entries", err)
	}
	return res, nil
}

// boolToInt converts a boolean to 1/0 for SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
