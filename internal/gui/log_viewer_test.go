package gui

import (
	"fmt"
	"testing"
	"time"
)

func TestLogLines(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 30, 15, 0, time.UTC)
	l := &logLines{limit: 3, now: func() time.Time { return fixed }}

	if n := l.push("first\n\n  \nsecond\n"); n != 2 {
		t.Fatalf("push() added %d lines, want 2", n)
	}
	if got := l.at(0); got != "09:30:15 second" {
		t.Errorf("newest line = %q", got)
	}
	if got := l.at(1); got != "09:30:15 first" {
		t.Errorf("older line = %q", got)
	}
	if got := l.at(5); got != "" {
		t.Errorf("out of range = %q, want empty", got)
	}

	for i := 0; i < 5; i++ {
		l.push(fmt.Sprintf("line %d", i))
	}
	if l.len() != 3 {
		t.Errorf("len() = %d, want limit 3", l.len())
	}
	if got := l.at(0); got != "09:30:15 line 4" {
		t.Errorf("newest after trim = %q", got)
	}

	l.reset()
	if l.len() != 0 {
		t.Errorf("len() after reset = %d", l.len())
	}
}
