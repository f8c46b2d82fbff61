package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	if got := GetTurnLockSeconds(); got != 3 {
		t.Fatalf("GetTurnLockSeconds() = %d, want 3", got)
	}
	if got := GetSharedPasswords(); len(got) != 3 {
		t.Fatalf("GetSharedPasswords() = %v, want three defaults", got)
	}
	if got := GetTokenSecret(); got != "" {
		t.Fatalf("GetTokenSecret() = %q, want empty", got)
	}
	if got := GetTokenTTLSeconds(); got != 3600 {
		t.Fatalf("GetTokenTTLSeconds() = %d, want 3600", got)
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	body := `{"turn_lock_seconds":5,"shared_passwords":["a","b"],"token_secret":"s","token_ttl_seconds":60}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("load config: %v", err)
	}

	// LoadGameConfig is load-once; later calls must be no-ops.
	if err := LoadGameConfig("does-not-exist.json"); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if got := GetTurnLockSeconds(); got != 5 {
		t.Fatalf("GetTurnLockSeconds() = %d, want 5", got)
	}
	if got := GetSharedPasswords(); len(got) != 2 || got[0] != "a" {
		t.Fatalf("GetSharedPasswords() = %v", got)
	}
	if got := GetTokenSecret(); got != "s" {
		t.Fatalf("GetTokenSecret() = %q, want s", got)
	}
	if got := GetTokenTTLSeconds(); got != 60 {
		t.Fatalf("GetTokenTTLSeconds() = %d, want 60", got)
	}
}
