// Package journal provides append-only per-chat thought recording on top
// of the persistence store.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
	"github.com/avlasev/reminder-journal-bot/internal/store"
)

// Service records and queries journal entries. Entries are immutable;
// queries are store-backed so the process never holds a chat's full
// history in memory.
type Service struct {
	repo  store.Repo
	clock domain.Clock
}

func New(repo store.Repo, clock domain.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Record trims and stores a thought. Whitespace-only text fails with
// ErrValidation and nothing is stored.
func (s *Service) Record(ctx context.Context, chatID int64, text string) (domain.EntryID, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty thought", domain.ErrValidation)
	}
	return s.repo.AppendEntry(ctx, &domain.JournalEntry{
		ChatID:    chatID,
		CreatedAt: s.clock.Now().UTC(),
		Text:      text,
	})
}

// EntriesForDay returns a chat's entries for the calendar day containing
// day, in day's location, ascending by time.
func (s *Service) EntriesForDay(ctx context.Context, chatID int64, day time.Time) ([]domain.JournalEntry, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
	return s.repo.EntriesBetween(ctx, chatID, from, to)
}

// Today returns the chat's entries for the current calendar day.
func (s *Service) Today(ctx context.Context, chatID int64) ([]domain.JournalEntry, error) {
	return s.EntriesForDay(ctx, chatID, s.clock.Now())
}

// Recent returns at most limit newest entries, newest first, plus the
// chat's total entry count so callers can indicate truncation.
func (s *Service) Recent(ctx context.Context, chatID int64, limit int) ([]domain.JournalEntry, int, error) {
	if limit <= 0 {
		return nil, 0, fmt.Errorf("%w: limit must be positive", domain.ErrValidation)
	}
	return s.repo.RecentEntries(ctx, chatID, limit)
}
