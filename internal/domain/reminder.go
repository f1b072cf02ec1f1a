package domain

import "time"

// ReminderID identifies a reminder row. IDs are assigned by the store.
type ReminderID int64

// Recurrence selects how a reminder behaves after it fires.
type Recurrence string

const (
	RecurrenceOnce  Recurrence = "once"
	RecurrenceDaily Recurrence = "daily"
)

// Valid reports whether r is a known recurrence value.
func (r Recurrence) Valid() bool {
	return r == RecurrenceOnce || r == RecurrenceDaily
}

// Reminder is a scheduled daily (or one-shot) push to a chat.
// The persisted row is the source of truth; the scheduler's armed timer
// is a projection rebuilt from it on startup.
type Reminder struct {
	ID         ReminderID
	ChatID     int64
	At         TimeOfDay
	Message    string
	Recurrence Recurrence
	Active     bool      // false once fired (one-shot) or cancelled
	NextFireAt time.Time // UTC
	CreatedAt  time.Time // UTC
}
