package command

import (
	"fmt"
	"sort"
	"strings"
)

// EscapeKey aborts a chord at any depth.
const EscapeKey = "esc"

// Node is a keymap entry: a leaf carrying a command or a composite whose
// children are keyed by the next input code.
type Node struct {
	Command  Command
	Children map[string]*Node
}

// Leaf reports whether the node executes a command.
func (n *Node) Leaf() bool { return n.Command != nil }

// Option describes one continuation of a pending chord.
type Option struct {
	Key   string
	Label string
}

// Options lists the continuations of a composite node, sorted by key.
func (n *Node) Options() []Option {
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	opts := make([]Option, 0, len(keys))
	for _, k := range keys {
		child := n.Children[k]
		label := "…"
		if child.Leaf() {
			label = child.Command.String()
		}
		opts = append(opts, Option{Key: k, Label: label})
	}
	return opts
}

// Keymap is the root of the chord tree.
type Keymap struct {
	root *Node
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{root: &Node{Children: make(map[string]*Node)}}
}

func (k *Keymap) Root() *Node { return k.root }

// Bind maps the key sequence to cmd. Binding through or onto an existing leaf,
// or onto an existing composite, fails.
func (k *Keymap) Bind(keys []string, cmd Command) error {
	if len(keys) == 0 {
		return fmt.Errorf("empty key sequence for %s", cmd.Name())
	}
	node := k.root
	for i, key := range keys {
		key = NormalizeKey(key)
		if key == EscapeKey {
			return fmt.Errorf("%s cannot be bound", EscapeKey)
		}
		child, ok := node.Children[key]
		last := i == len(keys)-1
		switch {
		case !ok && last:
			node.Children[key] = &Node{Command: cmd}
			return nil
		case !ok:
			child = &Node{Children: make(map[string]*Node)}
			node.Children[key] = child
		case child.Leaf():
			return fmt.Errorf("keys %s already bound to %s", strings.Join(keys[:i+1], " "), child.Command.String())
		case last:
			return fmt.Errorf("keys %s is a prefix of other bindings", strings.Join(keys, " "))
		}
		node = child
	}
	return nil
}

// Lookup follows keys from the root.
func (k *Keymap) Lookup(keys ...string) (*Node, bool) {
	node := k.root
	for _, key := range keys {
		child, ok := node.Children[NormalizeKey(key)]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// NormalizeKey maps input codes to the names used in keymap files.
func NormalizeKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "escape":
		return EscapeKey
	}
	return key
}

type binding struct {
	keys []string
	name string
	args []string
}

var defaultBindings = []binding{
	{keys: []string{"q"}, name: "quit"},
	{keys: []string{"Q"}, name: "force_quit"},
	{keys: []string{"up"}, name: "cursor_move_up"},
	{keys: []string{"k"}, name: "cursor_move_up"},
	{keys: []string{"down"}, name: "cursor_move_down"},
	{keys: []string{"j"}, name: "cursor_move_down"},
	{keys: []string{"K"}, name: "cursor_move_up", args: []string{"5"}},
	{keys: []string{"J"}, name: "cursor_move_down", args: []string{"5"}},
	{keys: []string{"home"}, name: "cursor_move_home"},
	{keys: []string{"end"}, name: "cursor_move_end"},
	{keys: []string{"G"}, name: "cursor_move_end"},
	{keys: []string{"pgup"}, name: "cursor_move_page_up"},
	{keys: []string{"pgdown"}, name: "cursor_move_page_down"},
	{keys: []string{"left"}, name: "parent_directory"},
	{keys: []string{"h"}, name: "parent_directory"},
	{keys: []string{"right"}, name: "open_file"},
	{keys: []string{"l"}, name: "open_file"},
	{keys: []string{"enter"}, name: "open_file"},
	{keys: []string{"g", "g"}, name: "cursor_move_home"},
	{keys: []string{"g", "h"}, name: "cd", args: []string{"~"}},
	{keys: []string{"g", "r"}, name: "cd", args: []string{"/"}},
	{keys: []string{"g", "t"}, name: "tab_switch", args: []string{"1"}},
	{keys: []string{"g", "T"}, name: "tab_switch", args: []string{"-1"}},
	{keys: []string{"tab"}, name: "tab_switch", args: []string{"1"}},
	{keys: []string{"shift+tab"}, name: "tab_switch", args: []string{"-1"}},
	{keys: []string{"ctrl+t"}, name: "new_tab"},
	{keys: []string{"W"}, name: "close_tab"},
	{keys: []string{"space"}, name: "select_files", args: []string{"--toggle"}},
	{keys: []string{"v"}, name: "select_files", args: []string{"--toggle", "--all"}},
	{keys: []string{"y", "y"}, name: "copy_files"},
	{keys: []string{"d", "d"}, name: "cut_files"},
	{keys: []string{"D", "d"}, name: "delete_files"},
	{keys: []string{"p", "p"}, name: "paste_files"},
	{keys: []string{"p", "o"}, name: "paste_files", args: []string{"--overwrite"}},
	{keys: []string{"p", "s"}, name: "paste_files", args: []string{"--skip_exist"}},
	{keys: []string{"a"}, name: "rename_append"},
	{keys: []string{"A"}, name: "rename_prepend"},
	{keys: []string{":"}, name: "console"},
	{keys: []string{";"}, name: "console"},
	{keys: []string{"/"}, name: "console", args: []string{"search "}},
	{keys: []string{"n"}, name: "search_next"},
	{keys: []string{"N"}, name: "search_prev"},
	{keys: []string{"m", "k"}, name: "console", args: []string{"mkdir "}},
	{keys: []string{"R"}, name: "reload_dir_list"},
	{keys: []string{"z", "h"}, name: "toggle_hidden"},
}

// DefaultKeymap returns the built-in bindings, built through FromArgs like any
// user keymap.
func DefaultKeymap() (*Keymap, error) {
	km := NewKeymap()
	for _, b := range defaultBindings {
		cmd, err := FromArgs(b.name, b.args)
		if err != nil {
			return nil, err
		}
		if err := km.Bind(b.keys, cmd); err != nil {
			return nil, err
		}
	}
	return km, nil
}
