package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/backend"
	"github.com/atomicstack/tabfm/internal/logging"
	"github.com/atomicstack/tabfm/internal/session"
	"github.com/atomicstack/tabfm/internal/settings"
	"github.com/atomicstack/tabfm/internal/ui"
)

const watchInterval = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	StartDirs    []string
	ConfigDir    string
	ShowHidden   bool
	Opener       string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// StartupError marks failures that happen before the terminal UI starts:
// unreadable settings, a bad keymap or a start directory that cannot be
// opened.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string { return e.Err.Error() }
func (e *StartupError) Unwrap() error { return e.Err }

var (
	chdir       = os.Chdir
	userHomeDir = os.UserHomeDir
	getwd       = os.Getwd
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, opts, err := prepare(cfg, afero.NewOsFs())
	if err != nil {
		return err
	}
	watcher, err := backend.NewWatcher(watchInterval)
	if err != nil {
		logging.Error(fmt.Errorf("directory watcher disabled: %w", err))
	} else {
		defer watcher.Stop()
		opts.Watcher = watcher
	}
	model := ui.NewModel(s, opts)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// prepare loads settings and opens one tab per start directory.
func prepare(cfg Config, fsys afero.Fs) (*session.Session, ui.Options, error) {
	prefs, err := settings.LoadPreferences(cfg.ConfigDir)
	if err != nil {
		return nil, ui.Options{}, &StartupError{Err: err}
	}
	if cfg.ShowHidden {
		prefs.ShowHidden = true
	}
	km, err := settings.LoadKeymap(cfg.ConfigDir)
	if err != nil {
		return nil, ui.Options{}, &StartupError{Err: err}
	}
	home, err := userHomeDir()
	if err != nil {
		home = string(filepath.Separator)
	}
	s := session.New(session.Config{
		Fs:      fsys,
		Options: prefs.ListingOptions(),
		Chdir:   chdir,
		Home:    home,
		Opener:  execOpener(cfg.Opener),
	})
	dirs, err := startDirs(cfg.StartDirs)
	if err != nil {
		return nil, ui.Options{}, &StartupError{Err: err}
	}
	for _, dir := range dirs {
		if err := s.OpenTab(dir); err != nil {
			return nil, ui.Options{}, &StartupError{Err: err}
		}
	}
	if len(dirs) > 1 {
		if err := s.SwitchTab(0); err != nil {
			return nil, ui.Options{}, &StartupError{Err: err}
		}
	}
	return s, ui.Options{
		Keymap:       km,
		ColumnRatio:  prefs.ColumnRatio,
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	}, nil
}

func startDirs(args []string) ([]string, error) {
	if len(args) == 0 {
		cwd, err := getwd()
		if err != nil {
			return nil, fmt.Errorf("current directory: %w", err)
		}
		return []string{cwd}, nil
	}
	dirs := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}
		dirs = append(dirs, abs)
	}
	return dirs, nil
}

// execOpener starts program with the paths as arguments and does not wait
// for it to finish.
func execOpener(program string) session.Opener {
	if program == "" {
		program = defaultOpener()
	}
	return func(paths []string) error {
		cmd := exec.Command(program, paths...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("open with %s: %w", program, err)
		}
		go func() {
			if err := cmd.Wait(); err != nil {
				logging.Error(fmt.Errorf("%s: %w", program, err))
			}
		}()
		return nil
	}
}

func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}
