package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a local wall-clock time with no date component.
type TimeOfDay struct {
	Hour   int // 0..23
	Minute int // 0..59
}

// String renders the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses a strict 24h "HH:MM" string.
// Anything else fails with ErrValidation.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: expected HH:MM, got %q", ErrValidation, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: invalid hour in %q", ErrValidation, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: invalid minute in %q", ErrValidation, s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}
