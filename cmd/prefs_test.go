package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/parley/internal/config"
)

func tempConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.SetFilePath(filepath.Join(t.TempDir(), "config.json"))
	return cfg
}

func TestShowPreferences(t *testing.T) {
	cfg := tempConfig(t)
	var out bytes.Buffer
	showPreferences(&out, cfg)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(cfg.Preferences()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(cfg.Preferences()))
	}
	if !strings.HasPrefix(lines[0], "hide-offline") || !strings.Contains(lines[0], "false") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestSetPreference(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"enable", "hide-offline", "true", false},
		{"disable", "mark-unread", "false", false},
		{"numeric bool", "notify-protocols", "0", false},
		{"bad value", "hide-offline", "maybe", true},
		{"unknown key", "colour", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tempConfig(t)
			var out bytes.Buffer
			err := setPreference(&out, cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("setPreference() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.HasPrefix(out.String(), tt.key+" = ") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestSetPreference_Persists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := setPreference(&bytes.Buffer{}, cfg, "hide-offline", "true"); err != nil {
		t.Fatalf("setPreference() error = %v", err)
	}

	reloaded, err := config.Load()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if !reloaded.GetHideOffline() {
		t.Error("hide-offline not persisted")
	}
}

func TestShowThemes_MarksCurrent(t *testing.T) {
	cfg := tempConfig(t)
	var out bytes.Buffer
	showThemes(&out, cfg)
	if !strings.Contains(out.String(), "* dark-purple") {
		t.Errorf("default theme not marked:\n%s", out.String())
	}

	cfg.SetTheme("nord")
	out.Reset()
	showThemes(&out, cfg)
	if !strings.Contains(out.String(), "* nord") || strings.Contains(out.String(), "* dark-purple") {
		t.Errorf("nord not marked:\n%s", out.String())
	}
}

func TestSetTheme(t *testing.T) {
	cfg := tempConfig(t)
	if err := setTheme(&bytes.Buffer{}, cfg, "neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if err := setTheme(&bytes.Buffer{}, cfg, "dracula"); err != nil {
		t.Fatalf("setTheme() error = %v", err)
	}
	if cfg.GetTheme() != "dracula" {
		t.Errorf("theme = %q, want dracula", cfg.GetTheme())
	}
}
