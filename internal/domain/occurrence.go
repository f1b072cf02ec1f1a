package domain

import "time"

// NextOccurrence computes the next instant at which a reminder for the
// given wall-clock time should fire, relative to now. The result is in
// now's location and is always strictly after now: if today's occurrence
// has already passed, or lands exactly on now, it rolls to tomorrow.
//
// The rollover uses calendar-day arithmetic (day+1 through time.Date),
// not a fixed 24h offset, so days shortened or stretched by DST
// transitions still resolve to the requested wall-clock time.
func NextOccurrence(at TimeOfDay, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, at.Hour, at.Minute, 0, 0, now.Location())
	}
	return next
}
