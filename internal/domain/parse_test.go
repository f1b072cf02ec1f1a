package domain

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"08:30", TimeOfDay{8, 30}},
		{"00:00", TimeOfDay{0, 0}},
		{"23:59", TimeOfDay{23, 59}},
		{" 9:05 ", TimeOfDay{9, 5}},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "830", "24:00", "12:60", "-1:30", "aa:bb", "12:30:00"} {
		_, err := ParseTimeOfDay(in)
		if err == nil {
			t.Errorf("ParseTimeOfDay(%q): expected error", in)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("ParseTimeOfDay(%q): error %v is not ErrValidation", in, err)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := (TimeOfDay{Hour: 8, Minute: 5}).String(); s != "08:05" {
		t.Fatalf("want 08:05, got %s", s)
	}
}
