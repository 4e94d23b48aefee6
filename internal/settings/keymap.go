package settings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/atomicstack/tabfm/internal/command"
)

// BindingError reports a keymap entry that could not be bound.
type BindingError struct {
	Keys  []string
	Index int
	Err   error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: mapcommand #%d [%s]: %v", KeymapFile, e.Index+1, strings.Join(e.Keys, " "), e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }

type mapping struct {
	Keys    []string `mapstructure:"keys"`
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

type keymapFile struct {
	MapCommand []mapping `mapstructure:"mapcommand"`
}

// LoadKeymap reads keymap.toml from dir. Without the file the built-in
// bindings are used. Every entry is built through command.FromArgs, so bad
// arities or unknown names fail here rather than on a key press.
func LoadKeymap(dir string) (*command.Keymap, error) {
	path := filepath.Join(dir, KeymapFile)
	v := viper.New()
	if err := readIfPresent(v, path); err != nil {
		return nil, err
	}
	if v.ConfigFileUsed() == "" {
		return command.DefaultKeymap()
	}
	var file keymapFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", KeymapFile, err)
	}
	km := command.NewKeymap()
	for i, m := range file.MapCommand {
		cmd, err := command.FromArgs(m.Command, m.Args)
		if err != nil {
			return nil, &BindingError{Keys: m.Keys, Index: i, Err: err}
		}
		if err := km.Bind(m.Keys, cmd); err != nil {
			return nil, &BindingError{Keys: m.Keys, Index: i, Err: err}
		}
	}
	return km, nil
}
