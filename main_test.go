package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/tabfm/internal/app"
	"github.com/atomicstack/tabfm/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			StartDirs:    []string{"/srv"},
			ConfigDir:    "/etc/tabfm",
			ShowHidden:   true,
			PollInterval: 100 * time.Millisecond,
			PollTimeout:  5 * time.Millisecond,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"configDir":    "/etc/tabfm",
			"hidden":       "true",
			"pollInterval": "100ms",
		},
		Args: []string{"-config-dir", "/etc/tabfm", "-hidden", "/srv"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["configDir"] != "/etc/tabfm" {
		t.Fatalf("expected config dir flag, got %v", flagsValue["configDir"])
	}
	if flagsValue["hidden"] != "true" {
		t.Fatalf("expected hidden flag true, got %v", flagsValue["hidden"])
	}
	if flagsValue["pollInterval"] != "100ms" {
		t.Fatalf("expected poll interval 100ms, got %v", flagsValue["pollInterval"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if !reflect.DeepEqual(cfgValue.App, cfg.App) {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestStartupTracePayloadDescribesTabsAndSettings(t *testing.T) {
	start := t.TempDir()
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, "tabfm.toml"), []byte("show_hidden = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	missing := filepath.Join(start, "gone")
	cfg := config.Config{
		App: app.Config{StartDirs: []string{start, missing}, ConfigDir: configDir},
	}

	payload := startupTracePayload(cfg)

	dirs, ok := payload["startDirs"].([]startDir)
	if !ok || len(dirs) != 2 {
		t.Fatalf("expected two start dirs, got %#v", payload["startDirs"])
	}
	if dirs[0].Resolved != start || !dirs[0].IsDir || dirs[0].Error != "" {
		t.Fatalf("expected %s to resolve as a directory, got %#v", start, dirs[0])
	}
	if dirs[1].IsDir || dirs[1].Error == "" {
		t.Fatalf("expected missing start dir to carry an error, got %#v", dirs[1])
	}

	files, ok := payload["settingsFiles"].([]settingsFile)
	if !ok || len(files) != 2 {
		t.Fatalf("expected two settings files, got %#v", payload["settingsFiles"])
	}
	if files[0].Path != filepath.Join(configDir, "tabfm.toml") || !files[0].Present {
		t.Fatalf("expected tabfm.toml present, got %#v", files[0])
	}
	if files[1].Path != filepath.Join(configDir, "keymap.toml") || files[1].Present {
		t.Fatalf("expected keymap.toml absent, got %#v", files[1])
	}
}

func TestCollectStartDirsDefaultsToWorkingDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	dirs := collectStartDirs(nil)
	if len(dirs) != 1 || dirs[0].Arg != "." || dirs[0].Resolved != cwd || !dirs[0].IsDir {
		t.Fatalf("expected the working directory, got %#v", dirs)
	}
}
