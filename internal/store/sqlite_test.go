package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testReminder(chatID int64) *domain.Reminder {
	return &domain.Reminder{
		ChatID:     chatID,
		At:         domain.TimeOfDay{Hour: 8, Minute: 30},
		Message:    "stand up",
		Recurrence: domain.RecurrenceDaily,
		Active:     true,
		NextFireAt: time.Date(2025, time.March, 10, 0, 30, 0, 0, time.UTC),
		CreatedAt:  time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC),
	}
}

func TestReminderRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateReminder(ctx, testReminder(42))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := repo.GetReminder(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ChatID != 42 || got.Message != "stand up" || !got.Active {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.At != (domain.TimeOfDay{Hour: 8, Minute: 30}) {
		t.Fatalf("time of day mismatch: %v", got.At)
	}
	if got.Recurrence != domain.RecurrenceDaily {
		t.Fatalf("recurrence mismatch: %v", got.Recurrence)
	}
	want := time.Date(2025, time.March, 10, 0, 30, 0, 0, time.UTC)
	if !got.NextFireAt.Equal(want) {
		t.Fatalf("next_fire_at: want %v, got %v", want, got.NextFireAt)
	}
}

func TestGetReminder_Unknown(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.GetReminder(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateReminder_AtomicMutation(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateReminder(ctx, testReminder(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	next := time.Date(2025, time.March, 11, 0, 30, 0, 0, time.UTC)
	err = repo.UpdateReminder(ctx, id, func(r *domain.Reminder) error {
		r.NextFireAt = next
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetReminder(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.NextFireAt.Equal(next) {
		t.Fatalf("next_fire_at: want %v, got %v", next, got.NextFireAt)
	}
}

func TestUpdateReminder_MutatorErrorRollsBack(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateReminder(ctx, testReminder(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err = repo.UpdateReminder(ctx, id, func(r *domain.Reminder) error {
		r.Active = false
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want mutator error surfaced, got %v", err)
	}

	got, err := repo.GetReminder(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Active {
		t.Fatal("row changed despite mutator error")
	}
}

func TestUpdateReminder_Unknown(t *testing.T) {
	repo := openTestRepo(t)
	err := repo.UpdateReminder(context.Background(), 999, func(r *domain.Reminder) error { return nil })
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListActiveReminders(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	a, _ := repo.CreateReminder(ctx, testReminder(1))
	b, _ := repo.CreateReminder(ctx, testReminder(2))
	inactive := testReminder(3)
	inactive.Active = false
	if _, err := repo.CreateReminder(ctx, inactive); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	active, err := repo.ListActiveReminders(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("want 2 active rows, got %d", len(active))
	}
	ids := map[domain.ReminderID]bool{active[0].ID: true, active[1].ID: true}
	if !ids[a] || !ids[b] {
		t.Fatalf("unexpected active ids: %v", ids)
	}
}

func TestJournalEntriesBetween(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.AppendEntry(ctx, &domain.JournalEntry{
			ChatID:    7,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Text:      fmt.Sprintf("entry %d", i),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	// Another chat's entry must not leak into the result.
	if _, err := repo.AppendEntry(ctx, &domain.JournalEntry{ChatID: 8, CreatedAt: base, Text: "other"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.EntriesBetween(ctx, 7, base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 entries, got %d", len(got))
	}
	if got[0].Text != "entry 0" || got[1].Text != "entry 1" {
		t.Fatalf("wrong order/content: %v", got)
	}
}

func TestRecentEntries_LimitAndTotal(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		_, err := repo.AppendEntry(ctx, &domain.JournalEntry{
			ChatID:    7,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Text:      fmt.Sprintf("entry %d", i),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, total, err := repo.RecentEntries(ctx, 7, 20)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if total != 25 {
		t.Fatalf("want total 25, got %d", total)
	}
	if len(got) != 20 {
		t.Fatalf("want 20 entries, got %d", len(got))
	}
	if got[0].Text != "entry 24" {
		t.Fatalf("want newest first, got %q", got[0].Text)
	}
	if got[19].Text != "entry 5" {
		t.Fatalf("want entry 5 last, got %q", got[19].Text)
	}
}

func TestRemindersSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	repo, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id, err := repo.CreateReminder(ctx, testReminder(11))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetReminder(ctx, id)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.ChatID != 11 {
		t.Fatalf("unexpected row after reopen: %+v", got)
	}
}
