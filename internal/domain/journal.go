package domain

import "time"

// EntryID identifies a journal entry.
type EntryID int64

// JournalEntry is one recorded thought. Entries are append-only:
// never mutated or deleted after creation.
type JournalEntry struct {
	ID        EntryID
	ChatID    int64
	CreatedAt time.Time // UTC
	Text      string    // trimmed, non-empty
}
