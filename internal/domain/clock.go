package domain

import "time"

// Clock supplies the current instant in the bot's configured timezone.
// The scheduler and journal take a Clock so tests can drive day-boundary
// and restart-recovery cases without waiting.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	return SystemClock{loc: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
