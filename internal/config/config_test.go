package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"HOME=/home/me"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ConfigDir != "/home/me/.config/tabfm" {
		t.Fatalf("unexpected config dir %q", cfg.App.ConfigDir)
	}
	if cfg.App.PollInterval != 100*time.Millisecond || cfg.App.PollTimeout != 5*time.Millisecond {
		t.Fatalf("unexpected poll settings %+v", cfg.App)
	}
	if len(cfg.App.StartDirs) != 0 || cfg.App.ShowHidden || cfg.Logging.Trace {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadArgsEnvironmentFallbacks(t *testing.T) {
	env := []string{
		"XDG_CONFIG_HOME=/xdg",
		"TABFM_HIDDEN=true",
		"TABFM_POLL_INTERVAL=250ms",
		"TABFM_TRACE=1",
		"TABFM_LOG_FILE=/tmp/tabfm.log",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ConfigDir != "/xdg/tabfm" {
		t.Fatalf("expected XDG config dir, got %q", cfg.App.ConfigDir)
	}
	if !cfg.App.ShowHidden || cfg.App.PollInterval != 250*time.Millisecond {
		t.Fatalf("expected env overrides, got %+v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/tabfm.log" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadArgsFlagsBeatEnvironment(t *testing.T) {
	args := []string{"-config-dir", "/etc/tabfm", "-hidden=false", "/srv", "/var"}
	cfg, err := LoadArgs(args, []string{"TABFM_HIDDEN=true"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ConfigDir != "/etc/tabfm" || cfg.App.ShowHidden {
		t.Fatalf("expected flags to win, got %+v", cfg.App)
	}
	if strings.Join(cfg.App.StartDirs, ",") != "/srv,/var" {
		t.Fatalf("expected positional start dirs, got %v", cfg.App.StartDirs)
	}
	if cfg.Flags["configDir"] != "/etc/tabfm" {
		t.Fatalf("expected flag echo, got %v", cfg.Flags)
	}
}

func TestLoadArgsRejectsBadPollInterval(t *testing.T) {
	if _, err := LoadArgs([]string{"-poll-interval", "0s"}, nil); err == nil {
		t.Fatalf("expected an error for a zero poll interval")
	}
	if _, err := LoadArgs([]string{"-bogus"}, nil); err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}

func TestValidateStartDirs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Validate(Config{}); err != nil {
		t.Fatalf("expected empty config to validate: %v", err)
	}
	cfg := Config{}
	cfg.App.StartDirs = []string{dir}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	cfg.App.StartDirs = []string{file}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected a file start dir to be rejected")
	}
	cfg.App.StartDirs = []string{filepath.Join(dir, "missing")}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected a missing start dir to be rejected")
	}
}
