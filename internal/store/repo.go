package store

import (
	"context"
	"time"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
)

// Repo defines durable storage for reminders and journal entries.
// It exclusively owns the rows; the scheduler's timer set is a
// rebuildable projection of ListActiveReminders.
type Repo interface {
	// CreateReminder inserts a reminder and returns its assigned id.
	CreateReminder(ctx context.Context, r *domain.Reminder) (domain.ReminderID, error)
	// GetReminder returns a reminder by id, or ErrNotFound.
	GetReminder(ctx context.Context, id domain.ReminderID) (*domain.Reminder, error)
	// UpdateReminder applies mutate to the current row inside a transaction.
	// Concurrent updates for the same id are serialized by the database.
	UpdateReminder(ctx context.Context, id domain.ReminderID, mutate func(*domain.Reminder) error) error
	// ListActiveReminders returns every row with active = true.
	ListActiveReminders(ctx context.Context) ([]domain.Reminder, error)

	// AppendEntry inserts a journal entry and returns its assigned id.
	AppendEntry(ctx context.Context, e *domain.JournalEntry) (domain.EntryID, error)
	// EntriesBetween returns a chat's entries with from <= created_at < to,
	// ascending by creation time.
	EntriesBetween(ctx context.Context, chatID int64, from, to time.Time) ([]domain.JournalEntry, error)
	// RecentEntries returns at most limit newest entries for a chat,
	// descending by creation time, plus the chat's total entry count.
	RecentEntries(ctx context.Context, chatID int64, limit int) ([]domain.JournalEntry, int, error)

	Close() error
}
