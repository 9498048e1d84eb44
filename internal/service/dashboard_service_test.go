package service

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2026-03-01 01:30 UTC is already 08:30 on March 1st in Jakarta.
	now := time.Date(2026, 3, 1, 1, 30, 0, 0, time.UTC)
	start, end := dayBounds(now, jakarta)

	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, jakarta)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Errorf("day length = %v, want 24h", got)
	}

	// 2026-03-01 20:00 UTC is already March 2nd in Jakarta.
	now = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	start, _ = dayBounds(now, jakarta)
	wantStart = time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
}
