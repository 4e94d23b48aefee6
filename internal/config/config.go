package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tabfm/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigDir    = "TABFM_CONFIG_DIR"
	envOpener       = "TABFM_OPENER"
	envHidden       = "TABFM_HIDDEN"
	envPollInterval = "TABFM_POLL_INTERVAL"
	envPollTimeout  = "TABFM_POLL_TIMEOUT"
	envTrace        = "TABFM_TRACE"
	envLogFile      = "TABFM_LOG_FILE"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultPollTimeout  = 5 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tabfm", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configDir := fs.String("config-dir", envOrDefault(env, envConfigDir, defaultConfigDir(env)), "directory holding tabfm.toml and keymap.toml")
	opener := fs.String("opener", envOrDefault(env, envOpener, ""), "program used to open files (default xdg-open or open)")
	hidden := fs.Bool("hidden", envOrBool(env, envHidden, false), "show hidden entries regardless of preferences")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, defaultPollInterval), "how often running operations are polled")
	pollTimeout := fs.Duration("poll-timeout", envOrDuration(env, envPollTimeout, defaultPollTimeout), "how long each poll waits for progress")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *pollInterval <= 0 {
		return Config{}, fmt.Errorf("poll-interval must be > 0 (got %s)", *pollInterval)
	}
	if *pollTimeout < 0 {
		return Config{}, fmt.Errorf("poll-timeout must be >= 0 (got %s)", *pollTimeout)
	}

	cfg := Config{
		App: app.Config{
			StartDirs:    append([]string(nil), fs.Args()...),
			ConfigDir:    *configDir,
			ShowHidden:   *hidden,
			Opener:       *opener,
			PollInterval: *pollInterval,
			PollTimeout:  *pollTimeout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"configDir":    *configDir,
			"opener":       *opener,
			"hidden":       strconv.FormatBool(*hidden),
			"pollInterval": pollInterval.String(),
			"pollTimeout":  pollTimeout.String(),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// defaultConfigDir follows XDG_CONFIG_HOME, then ~/.config.
func defaultConfigDir(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, "tabfm")
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "tabfm")
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the start directories exist and are directories.
func Validate(cfg Config) error {
	for _, dir := range cfg.App.StartDirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("start directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("start directory %s: not a directory", dir)
		}
	}
	return nil
}
