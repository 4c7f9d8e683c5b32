package billdesk

import (
	"regexp"
	"testing"
	"time"
)

func TestNewTraceIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TRC\d{13}[A-Z0-9]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewTraceID()
		if !pattern.MatchString(id) {
			t.Fatalf("trace id format invalid: %s", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Error("trace ids not unique across calls")
	}
}

func TestISTTimestamp(t *testing.T) {
	// 2025-06-15 12:00:00 UTC = 2025-06-15 17:30:00 IST
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := ISTTimestamp(ts); got != "20250615173000" {
		t.Errorf("ISTTimestamp = %s, want 20250615173000", got)
	}
}

func TestOrderDate(t *testing.T) {
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := OrderDate(ts); got != "2025-06-15T17:30:00+05:30" {
		t.Errorf("OrderDate = %s, want 2025-06-15T17:30:00+05:30", got)
	}
}
