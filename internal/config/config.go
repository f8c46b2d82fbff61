package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// TurnLockSeconds is the undo grace window armed after each play.
	TurnLockSeconds int `json:"turn_lock_seconds"`
	// SharedPasswords is the login allow-list; any of these credentials admits a player.
	SharedPasswords []string `json:"shared_passwords"`
	// TokenSecret signs session tokens issued by the login RPC.
	TokenSecret string `json:"token_secret"`
	// TokenTTLSeconds bounds session token lifetime.
	TokenTTLSeconds int `json:"token_ttl_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetTurnLockSeconds returns the configured undo window, or the default of 3.
func GetTurnLockSeconds() int {
	if cfg == nil || cfg.TurnLockSeconds <= 0 {
		return 3
	}
	return cfg.TurnLockSeconds
}

// GetSharedPasswords returns the login allow-list, or the fixed default trio.
func GetSharedPasswords() []string {
	if cfg == nil || len(cfg.SharedPasswords) == 0 {
		return []string{"roy", "lomba", "gaal"}
	}
	return cfg.SharedPasswords
}

// GetTokenSecret returns the token signing secret, empty when unconfigured.
func GetTokenSecret() string {
	if cfg == nil {
		return ""
	}
	return cfg.TokenSecret
}

// GetTokenTTLSeconds returns the session token lifetime, or one hour.
func GetTokenTTLSeconds() int {
	if cfg == nil || cfg.TokenTTLSeconds <= 0 {
		return 3600
	}
	return cfg.TokenTTLSeconds
}
