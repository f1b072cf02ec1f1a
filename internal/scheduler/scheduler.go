package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
	"github.com/avlasev/reminder-journal-bot/internal/store"
)

// Sink is the minimal interface the scheduler needs to push a fired
// reminder's text to its destination chat. telegram.Notifier implements it.
type Sink interface {
	Deliver(chatID int64, text string) error
}

// Scheduler owns one armed timer per active reminder. The persisted rows
// are the source of truth; the timer set is a projection rebuilt by
// Reconcile on startup. State transitions for a single reminder id
// (arm, fire, rearm, cancel) are serialized by a per-id lock; reminders
// with different ids never block each other.
type Scheduler struct {
	repo  store.Repo
	log   *zap.Logger
	sink  Sink
	clock domain.Clock

	mu     sync.Mutex
	timers map[domain.ReminderID]*time.Timer

	lmu   sync.Mutex
	locks map[domain.ReminderID]*sync.Mutex

	// newTimer arms a callback after a delay. Overridable in tests so
	// nothing has to sleep.
	newTimer func(d time.Duration, fn func()) *time.Timer
}

// New creates a Scheduler. Reconcile must be called once before the
// transport starts accepting commands.
func New(repo store.Repo, log *zap.Logger, sink Sink, clock domain.Clock) *Scheduler {
	return &Scheduler{
		repo:     repo,
		log:      log,
		sink:     sink,
		clock:    clock,
		timers:   make(map[domain.ReminderID]*time.Timer),
		locks:    make(map[domain.ReminderID]*sync.Mutex),
		newTimer: time.AfterFunc,
	}
}

// lockFor returns the serialization lock for a reminder id.
func (s *Scheduler) lockFor(id domain.ReminderID) *sync.Mutex {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	lk, ok := s.locks[id]
	if !ok {
		lk = &sync.Mutex{}
		s.locks[id] = lk
	}
	return lk
}

// Create validates input, computes the first fire instant, persists the
// reminder and arms its timer. The row is written before the timer is
// armed, so a crash in between loses no state: Reconcile rebuilds the
// timer from the row.
func (s *Scheduler) Create(ctx context.Context, chatID int64, at string, message string, rec domain.Recurrence) (domain.ReminderID, error) {
	tod, err := domain.ParseTimeOfDay(at)
	if err != nil {
		return 0, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return 0, fmt.Errorf("%w: empty reminder message", domain.ErrValidation)
	}
	if !rec.Valid() {
		return 0, fmt.Errorf("%w: unknown recurrence %q", domain.ErrValidation, rec)
	}

	now := s.clock.Now()
	next := domain.NextOccurrence(tod, now)
	rem := &domain.Reminder{
		ChatID:     chatID,
		At:         tod,
		Message:    message,
		Recurrence: rec,
		Active:     true,
		NextFireAt: next.UTC(),
		CreatedAt:  now.UTC(),
	}
	id, err := s.repo.CreateReminder(ctx, rem)
	if err != nil {
		return 0, err
	}

	lk := s.lockFor(id)
	lk.Lock()
	s.arm(id, next)
	lk.Unlock()

	s.log.Info("reminder created",
		zap.Int64("reminder_id", int64(id)),
		zap.Int64("chat_id", chatID),
		zap.String("at", tod.String()),
		zap.String("recurrence", string(rec)),
		zap.Time("next_fire_at", next),
	)
	return id, nil
}

// Cancel disarms a reminder's timer and marks its row inactive.
// Unknown or already-inactive ids fail with ErrNotFound. A fire already
// in flight still completes its delivery but will not rearm, because the
// fire handler re-reads the persisted active flag before rearming.
func (s *Scheduler) Cancel(ctx context.Context, id domain.ReminderID) error {
	lk := s.lockFor(id)
	lk.Lock()
	defer lk.Unlock()

	err := s.repo.UpdateReminder(ctx, id, func(r *domain.Reminder) error {
		if !r.Active {
			return fmt.Errorf("%w: reminder %d is not active", domain.ErrNotFound, id)
		}
		r.Active = false
		return nil
	})
	if err != nil {
		return err
	}
	s.disarm(id)

	s.log.Info("reminder cancelled", zap.Int64("reminder_id", int64(id)))
	return nil
}

// Reconcile rebuilds the live timer set from storage. Rows whose fire
// instant passed while the process was down are delivered immediately,
// exactly once, and daily rows are then rearmed from the current time
// (no burst-fire per missed day). After Reconcile returns, the armed
// timer set equals the set of active rows.
//
// Reconcile runs before the transport starts serving, so it does not
// contend with Create or Cancel.
func (s *Scheduler) Reconcile(ctx context.Context) error {
	reminders, err := s.repo.ListActiveReminders(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	armed, caughtUp := 0, 0
	for _, rem := range reminders {
		now := s.clock.Now()
		if rem.NextFireAt.After(now) {
			s.arm(rem.ID, rem.NextFireAt)
			armed++
			continue
		}

		// Missed while down: due now.
		caughtUp++
		if err := s.sink.Deliver(rem.ChatID, rem.Message); err != nil {
			s.log.Error("catch-up delivery failed",
				zap.Error(err), zap.Int64("reminder_id", int64(rem.ID)), zap.Int64("chat_id", rem.ChatID))
		}
		if rem.Recurrence == domain.RecurrenceOnce {
			if err := s.repo.UpdateReminder(ctx, rem.ID, deactivate); err != nil {
				s.log.Error("deactivate after catch-up failed", zap.Error(err), zap.Int64("reminder_id", int64(rem.ID)))
			}
			continue
		}
		next := domain.NextOccurrence(rem.At, now)
		if err := s.repo.UpdateReminder(ctx, rem.ID, setNextFire(next)); err != nil {
			s.log.Error("rearm after catch-up failed", zap.Error(err), zap.Int64("reminder_id", int64(rem.ID)))
			continue
		}
		s.arm(rem.ID, next)
		armed++
	}

	s.log.Info("reconciled reminders",
		zap.Int("loaded", len(reminders)),
		zap.Int("armed", armed),
		zap.Int("caught_up", caughtUp),
	)
	return nil
}

// Shutdown stops every armed timer. Best-effort: persisted rows already
// reflect the last durable state regardless.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.log.Info("scheduler stopped")
}

// arm schedules the fire handler for id at fireAt, replacing any
// existing timer for that id. Callers hold the per-id lock, except
// Reconcile, which runs before any concurrent caller exists.
func (s *Scheduler) arm(id domain.ReminderID, fireAt time.Time) {
	delay := fireAt.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.timers[id]; ok {
		old.Stop()
	}
	s.timers[id] = s.newTimer(delay, func() { s.fire(id) })
}

// disarm stops and forgets the timer for id, if any.
func (s *Scheduler) disarm(id domain.ReminderID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// fire handles one timer expiry. It re-reads the persisted row instead of
// trusting any captured copy, so cancellations and edits that happened
// after arming are respected. Delivery is best-effort: a failed push is
// logged and the reminder is still rearmed or deactivated.
func (s *Scheduler) fire(id domain.ReminderID) {
	lk := s.lockFor(id)
	lk.Lock()
	defer lk.Unlock()

	ctx := context.Background()
	rem, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		s.log.Error("fired reminder not loadable", zap.Error(err), zap.Int64("reminder_id", int64(id)))
		s.disarm(id)
		return
	}
	if !rem.Active {
		// Cancelled between arming and firing.
		s.disarm(id)
		return
	}

	if err := s.sink.Deliver(rem.ChatID, rem.Message); err != nil {
		s.log.Error("delivery failed",
			zap.Error(err), zap.Int64("reminder_id", int64(id)), zap.Int64("chat_id", rem.ChatID))
	}

	if rem.Recurrence == domain.RecurrenceOnce {
		if err := s.repo.UpdateReminder(ctx, id, deactivate); err != nil {
			s.log.Error("deactivate after fire failed", zap.Error(err), zap.Int64("reminder_id", int64(id)))
		}
		s.disarm(id)
		return
	}

	// Daily: recompute from the post-fire clock and persist before arming,
	// so a second timer for this id can never exist alongside an unwritten row.
	next := domain.NextOccurrence(rem.At, s.clock.Now())
	stillActive := true
	err = s.repo.UpdateReminder(ctx, id, func(r *domain.Reminder) error {
		if !r.Active {
			stillActive = false
			return nil
		}
		r.NextFireAt = next.UTC()
		return nil
	})
	if err != nil {
		s.log.Error("rearm persist failed", zap.Error(err), zap.Int64("reminder_id", int64(id)))
		s.disarm(id)
		return
	}
	if !stillActive {
		s.disarm(id)
		return
	}
	s.arm(id, next)
	s.log.Debug("reminder rearmed", zap.Int64("reminder_id", int64(id)), zap.Time("next_fire_at", next))
}

// armedIDs snapshots the ids with a live timer.
func (s *Scheduler) armedIDs() map[domain.ReminderID]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[domain.ReminderID]bool, len(s.timers))
	for id := range s.timers {
		ids[id] = true
	}
	return ids
}

func deactivate(r *domain.Reminder) error {
	r.Active = false
	return nil
}

func setNextFire(next time.Time) func(*domain.Reminder) error {
	return func(r *domain.Reminder) error {
		r.NextFireAt = next.UTC()
		return nil
	}
}
