package main

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":3000" || cfg.Width != 4000 || cfg.Height != 4000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TickInterval != 33*time.Millisecond || cfg.Mode != "ffa" || !cfg.AccountsEnabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DBPath != "" || cfg.AdminPasswordHash != "" || cfg.Bots != 0 {
		t.Errorf("optional features should default off: %+v", cfg)
	}
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	t.Setenv("KANONO_ADDR", ":9000")
	t.Setenv("KANONO_BOTS", "3")
	t.Setenv("KANONO_DEBUG", "true")
	t.Setenv("KANONO_TICK", "50ms")

	cfg, err := LoadConfig([]string{"-bots", "5", "-width", "2000"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" || !cfg.Debug || cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("env not applied: %+v", cfg)
	}
	// flags win over the environment
	if cfg.Bots != 5 || cfg.Width != 2000 {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestLoadConfigBadEnvFallsBack(t *testing.T) {
	t.Setenv("KANONO_BOTS", "many")
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bots != 0 {
		t.Errorf("bots = %d, want default", cfg.Bots)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := [][]string{
		{"-width", "70000"},
		{"-height", "0"},
		{"-tick", "0s"},
		{"-bots", "-1"},
	}
	for _, args := range tests {
		if _, err := LoadConfig(args); err == nil {
			t.Errorf("LoadConfig(%v) should fail", args)
		}
	}
}

func TestConfigRoomInfo(t *testing.T) {
	cfg := Config{Width: 3000, Height: 2000, Mode: "ffa", AccountsEnabled: true}
	got := cfg.RoomInfo()
	want := RoomInfo{Width: 3000, Height: 2000, Mode: "ffa", AccountsEnabled: true}
	if got != want {
		t.Errorf("room = %+v, want %+v", got, want)
	}
}
