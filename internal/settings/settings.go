// Package settings loads the user's preference and keymap files.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/atomicstack/tabfm/internal/listing"
)

const (
	PreferencesFile = "tabfm.toml"
	KeymapFile      = "keymap.toml"
)

// Preferences holds presentation and sorting settings.
type Preferences struct {
	ShowHidden  bool  `mapstructure:"show_hidden"`
	ColumnRatio []int `mapstructure:"column_ratio"`
	Sort        Sort  `mapstructure:"sort"`
}

// Sort selects the listing comparator.
type Sort struct {
	Method           string `mapstructure:"method"`
	CaseSensitive    bool   `mapstructure:"case_sensitive"`
	DirectoriesFirst bool   `mapstructure:"directories_first"`
	Reverse          bool   `mapstructure:"reverse"`
}

// DefaultPreferences are used for anything the file leaves out.
func DefaultPreferences() Preferences {
	return Preferences{
		ColumnRatio: []int{1, 3, 4},
		Sort:        Sort{Method: "name", DirectoriesFirst: true},
	}
}

// LoadPreferences reads tabfm.toml from dir. A missing file yields the
// defaults. Env var overrides use prefix TABFM_, e.g. TABFM_SHOW_HIDDEN.
func LoadPreferences(dir string) (Preferences, error) {
	def := DefaultPreferences()
	v := viper.New()
	v.SetDefault("show_hidden", def.ShowHidden)
	v.SetDefault("column_ratio", def.ColumnRatio)
	v.SetDefault("sort.method", def.Sort.Method)
	v.SetDefault("sort.case_sensitive", def.Sort.CaseSensitive)
	v.SetDefault("sort.directories_first", def.Sort.DirectoriesFirst)
	v.SetDefault("sort.reverse", def.Sort.Reverse)

	v.SetEnvPrefix("TABFM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readIfPresent(v, filepath.Join(dir, PreferencesFile)); err != nil {
		return Preferences{}, err
	}
	var p Preferences
	if err := v.Unmarshal(&p); err != nil {
		return Preferences{}, fmt.Errorf("unmarshal %s: %w", PreferencesFile, err)
	}
	if err := p.Validate(); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func readIfPresent(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// Validate checks the values the file can get wrong.
func (p Preferences) Validate() error {
	switch p.Sort.Method {
	case "name", "size", "mtime":
	default:
		return fmt.Errorf("sort.method: unknown method %q", p.Sort.Method)
	}
	if len(p.ColumnRatio) != 3 {
		return fmt.Errorf("column_ratio: expected 3 values, got %d", len(p.ColumnRatio))
	}
	for _, r := range p.ColumnRatio {
		if r < 0 {
			return fmt.Errorf("column_ratio: negative value %d", r)
		}
	}
	if p.ColumnRatio[1] == 0 {
		return errors.New("column_ratio: the current-directory column cannot be 0")
	}
	return nil
}

// ListingOptions turns the preferences into listing options.
func (p Preferences) ListingOptions() listing.Options {
	var cmp listing.Comparator
	switch p.Sort.Method {
	case "size":
		cmp = listing.BySize
	case "mtime":
		cmp = listing.ByModified
	default:
		cmp = listing.ByName(p.Sort.CaseSensitive)
	}
	if p.Sort.DirectoriesFirst {
		cmp = listing.DirectoriesFirst(cmp)
	}
	if p.Sort.Reverse {
		cmp = listing.Reverse(cmp)
	}
	return listing.Options{ShowHidden: p.ShowHidden, Compare: cmp}
}
