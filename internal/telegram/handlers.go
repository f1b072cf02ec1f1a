package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
	"github.com/avlasev/reminder-journal-bot/internal/quotes"
)

const recentLimit = 20

func timeInLoc(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

func (r *Router) handleHelp(chatID int64) {
	r.sendText(chatID, helpText)
}

// handleRemind parses "/remind HH:MM message" and creates a daily reminder.
func (r *Router) handleRemind(ctx context.Context, chatID int64, args string) {
	at, message, _ := strings.Cut(args, " ")
	if at == "" || strings.TrimSpace(message) == "" {
		r.sendText(chatID, remindUsage)
		return
	}

	id, err := r.sched.Create(ctx, chatID, at, message, domain.RecurrenceDaily)
	switch {
	case errors.Is(err, domain.ErrValidation):
		r.sendText(chatID, remindUsage)
		return
	case err != nil:
		r.log.Error("create reminder failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.sendText(chatID, genericErrText)
		return
	}

	r.sendText(chatID, fmt.Sprintf(
		"Reminder #%d set for %s every day!\n%q", id, at, strings.TrimSpace(message)))
}

// handleCancel parses "/cancel <id>" and cancels the reminder.
func (r *Router) handleCancel(ctx context.Context, chatID int64, args string) {
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		r.sendText(chatID, cancelUsage)
		return
	}

	err = r.sched.Cancel(ctx, domain.ReminderID(id))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		r.sendText(chatID, fmt.Sprintf("No active reminder #%d.", id))
		return
	case err != nil:
		r.log.Error("cancel reminder failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.sendText(chatID, genericErrText)
		return
	}
	r.sendText(chatID, fmt.Sprintf("Reminder #%d cancelled.", id))
}

func (r *Router) handleThought(ctx context.Context, chatID int64, args string) {
	_, err := r.journal.Record(ctx, chatID, args)
	switch {
	case errors.Is(err, domain.ErrValidation):
		r.sendText(chatID, thoughtUsage)
		return
	case err != nil:
		r.log.Error("record thought failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.sendText(chatID, genericErrText)
		return
	}

	now := timeInLoc(r.loc)
	r.sendText(chatID, fmt.Sprintf("Thought saved at %s\n\n%q",
		now.Format("2006-01-02 15:04"), strings.TrimSpace(args)))
}

func (r *Router) handleToday(ctx context.Context, chatID int64) {
	entries, err := r.journal.Today(ctx, chatID)
	if err != nil {
		r.log.Error("today query failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.sendText(chatID, genericErrText)
		return
	}
	if len(entries) == 0 {
		r.sendText(chatID, "No thoughts recorded today yet.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your thoughts today (%s):\n\n", timeInLoc(r.loc).Format("2006-01-02"))
	for _, e := range entries {
		fmt.Fprintf(&b, "• %s — %s\n", e.CreatedAt.In(r.loc).Format("15:04"), e.Text)
	}
	r.sendText(chatID, b.String())
}

func (r *Router) handleThoughts(ctx context.Context, chatID int64) {
	entries, total, err := r.journal.Recent(ctx, chatID, recentLimit)
	if err != nil {
		r.log.Error("recent query failed", zap.Error(err), zap.Int64("chat_id", chatID))
		r.sendText(chatID, genericErrText)
		return
	}
	if total == 0 {
		r.sendText(chatID, "No thoughts recorded yet.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "All your thoughts (%d total):\n\n", total)
	// Recent returns newest first; render oldest first like a log.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "%s → %s\n", e.CreatedAt.In(r.loc).Format("2006-01-02 15:04"), e.Text)
	}
	if total > len(entries) {
		fmt.Fprintf(&b, "\n... (showing last %d entries)", len(entries))
	}
	r.sendText(chatID, b.String())
}

func (r *Router) handleMotivate(chatID int64) {
	r.sendText(chatID, fmt.Sprintf("%q", quotes.Random()))
}
