package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("默认配置应合法: %v", err)
	}
	if d := DefaultSim().TickDuration(); d != 20*time.Millisecond {
		t.Fatalf("TickDuration = %v", d)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TICK_RATE", "60")
	t.Setenv("SNAPSHOT_INTERVAL", "2")
	t.Setenv("NET_PROTOCOL", "ws")
	t.Setenv("DEBUG_ADDR", "")
	t.Setenv("CORS_ORIGINS", "http://a,http://b")
	t.Setenv("INPUT_REDUNDANCY", "0")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("RETENTION_TICKS", "not-a-number")

	cfg := Load()
	if cfg.Sim.TickRate != 60 || cfg.Sim.SnapshotInterval != 2 {
		t.Fatalf("Sim = %+v", cfg.Sim)
	}
	if cfg.Sim.RetentionTicks != DefaultSim().RetentionTicks {
		t.Fatalf("非法值应保留默认: %d", cfg.Sim.RetentionTicks)
	}
	if cfg.Net.Protocol != "ws" || cfg.Net.DebugAddr != "" || len(cfg.Net.CORSOrigins) != 2 {
		t.Fatalf("Net = %+v", cfg.Net)
	}
	if cfg.Net.SessionTTL != 90*time.Second {
		t.Fatalf("SessionTTL = %v", cfg.Net.SessionTTL)
	}
	if cfg.Client.InputRedundancy != 0 {
		t.Fatalf("InputRedundancy = %d", cfg.Client.InputRedundancy)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tick rate", func(c *Config) { c.Sim.TickRate = 0 }},
		{"retention", func(c *Config) { c.Sim.RetentionTicks = 1 }},
		{"snapshot interval", func(c *Config) { c.Sim.SnapshotInterval = c.Sim.RetentionTicks }},
		{"protocol", func(c *Config) { c.Net.Protocol = "quic" }},
		{"jump threshold", func(c *Config) { c.Client.ResyncJumpTicks = c.Client.DriftAheadTicks }},
		{"nudge", func(c *Config) { c.Client.DriftNudge = 1.5 }},
		{"decay", func(c *Config) { c.Client.OffsetDecay = 1 }},
		{"bots", func(c *Config) { c.Bots.Count = c.Net.MaxPlayers + 1 }},
		{"secret", func(c *Config) { c.Net.JWTSecret = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("期望 ErrInvalidConfig, got %v", err)
			}
		})
	}
}
