package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadServerConfig("/nonexistent/config.hcl")
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Game.StartingChips != 1000 {
		t.Errorf("starting chips = %d, want 1000", cfg.Game.StartingChips)
	}
	if cfg.Game.Scoring != "high-card" {
		t.Errorf("scoring = %q, want high-card", cfg.Game.Scoring)
	}
}

func TestLoadServerConfigFromHCL(t *testing.T) {
	t.Parallel()

	content := `
server {
  address         = "0.0.0.0"
  port            = 9090
  log_level       = "debug"
  allow_long_poll = true
}

game {
  starting_chips       = 2000
  small_blind          = 25
  big_blind            = 50
  turn_timeout_seconds = 15
  scoring              = "eval7"
}
`
	path := filepath.Join(t.TempDir(), "config.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}

	if cfg.Server.Address != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server settings not decoded: %+v", cfg.Server)
	}
	if !cfg.Server.AllowLongPoll {
		t.Error("allow_long_poll not decoded")
	}
	if cfg.Game.StartingChips != 2000 || cfg.Game.SmallBlind != 25 || cfg.Game.BigBlind != 50 {
		t.Errorf("game settings not decoded: %+v", cfg.Game)
	}
	if cfg.Game.Scoring != "eval7" {
		t.Errorf("scoring = %q, want eval7", cfg.Game.Scoring)
	}
	// Unset fields fall back to defaults
	if cfg.Server.LogFile != "lobbypoker-server.log" {
		t.Errorf("log file default not applied: %q", cfg.Server.LogFile)
	}
	if cfg.Game.MaxPlayers != 8 {
		t.Errorf("max players default not applied: %d", cfg.Game.MaxPlayers)
	}

	if got := cfg.TurnTimeout(); got != 15*time.Second {
		t.Errorf("turn timeout = %v, want 15s", got)
	}
	if got := cfg.GetServerAddress(); got != "0.0.0.0:9090" {
		t.Errorf("address = %q", got)
	}
}

func TestServerConfigValidate(t *testing.T) {
	t.Parallel()

	valid := DefaultServerConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"bad port", func(c *ServerConfig) { c.Server.Port = 0 }},
		{"zero chips", func(c *ServerConfig) { c.Game.StartingChips = 0 }},
		{"zero small blind", func(c *ServerConfig) { c.Game.SmallBlind = 0 }},
		{"inverted blinds", func(c *ServerConfig) { c.Game.BigBlind = 5 }},
		{"too many players", func(c *ServerConfig) { c.Game.MaxPlayers = 20 }},
		{"unknown scoring", func(c *ServerConfig) { c.Game.Scoring = "wild" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
