package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/atomicstack/tabfm/internal/app"
	"github.com/atomicstack/tabfm/internal/config"
	"github.com/atomicstack/tabfm/internal/logging"
	"github.com/atomicstack/tabfm/internal/logging/events"
	"github.com/atomicstack/tabfm/internal/settings"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		var startup *app.StartupError
		if errors.As(err, &startup) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	payload["startDirs"] = collectStartDirs(cfg.App.StartDirs)
	payload["settingsFiles"] = collectSettingsFiles(cfg.App.ConfigDir)
	return payload
}

type startDir struct {
	Arg      string `json:"arg"`
	Resolved string `json:"resolved,omitempty"`
	IsDir    bool   `json:"is_dir"`
	Error    string `json:"error,omitempty"`
}

// collectStartDirs records where each initial tab will open. No arguments
// means a single tab in the working directory.
func collectStartDirs(args []string) []startDir {
	if len(args) == 0 {
		args = []string{"."}
	}
	out := make([]startDir, 0, len(args))
	for _, arg := range args {
		entry := startDir{Arg: arg}
		abs, err := filepath.Abs(arg)
		if err != nil {
			entry.Error = err.Error()
			out = append(out, entry)
			continue
		}
		entry.Resolved = abs
		if info, err := os.Stat(abs); err != nil {
			entry.Error = err.Error()
		} else {
			entry.IsDir = info.IsDir()
		}
		out = append(out, entry)
	}
	return out
}

type settingsFile struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

// collectSettingsFiles reports which of the optional settings files exist.
func collectSettingsFiles(dir string) []settingsFile {
	names := []string{settings.PreferencesFile, settings.KeymapFile}
	out := make([]settingsFile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		out = append(out, settingsFile{Path: path, Present: err == nil})
	}
	return out
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
