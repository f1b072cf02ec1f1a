package telegram

import "testing"

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		in, cmd, args string
	}{
		{"/remind 08:30 wake up", "/remind", "08:30 wake up"},
		{"/remind@reminder_bot 08:30 wake up", "/remind", "08:30 wake up"},
		{"/today", "/today", ""},
		{"/thought   spaced  ", "/thought", "spaced"},
		{"plain text", "", "plain text"},
	}
	for _, c := range cases {
		cmd, args := splitCommand(c.in)
		if cmd != c.cmd || args != c.args {
			t.Errorf("splitCommand(%q) = (%q, %q), want (%q, %q)", c.in, cmd, args, c.cmd, c.args)
		}
	}
}
