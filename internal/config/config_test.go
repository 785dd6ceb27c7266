package config

import (
	"testing"
	"time"
)

func TestEnvIntDefaultAndOverride(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	if got := envInt("DB_MAX_OPEN_CONNS", 25); got != 25 {
		t.Fatalf("default = %d, want 25", got)
	}
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	if got := envInt("DB_MAX_OPEN_CONNS", 25); got != 40 {
		t.Fatalf("override = %d, want 40", got)
	}
}

func TestEnvDurDefaultAndOverride(t *testing.T) {
	t.Setenv("DB_CONN_LIFETIME", "")
	if got := envDur("DB_CONN_LIFETIME", 30*time.Minute); got != 30*time.Minute {
		t.Fatalf("default = %s, want 30m", got)
	}
	t.Setenv("DB_CONN_LIFETIME", "15m")
	if got := envDur("DB_CONN_LIFETIME", 30*time.Minute); got != 15*time.Minute {
		t.Fatalf("override = %s, want 15m", got)
	}
}
