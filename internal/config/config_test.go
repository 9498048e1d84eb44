package config

import (
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}

	got := parseOrigins("https://a.example.com, https://b.example.com ,,")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", got)
	}
}

func TestCacheKeys(t *testing.T) {
	if ch := CacheKey.ScheduleEventChannel(); ch == "" {
		t.Error("expected a non-empty schedule channel name")
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if loc := loadLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort == "" {
		t.Error("expected a default server port")
	}
	if cfg.JWTExpiry <= 0 {
		t.Error("expected a positive JWT expiry")
	}
	if cfg.StatusWorkerInterval <= 0 {
		t.Error("expected a positive status worker interval")
	}
}
