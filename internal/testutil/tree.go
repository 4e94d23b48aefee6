// Package testutil builds directory trees for tests.
package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// Tree maps slash-separated paths to file contents. A key ending in "/" is a
// directory and its value is ignored.
type Tree map[string]string

// WriteTree creates every entry of tree under root on fsys. Parents are
// created as needed.
func WriteTree(t *testing.T, fsys afero.Fs, root string, tree Tree) {
	t.Helper()
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(k, "/")))
		if strings.HasSuffix(k, "/") {
			if err := fsys.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fsys, path, []byte(tree[k]), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// MemTree returns an in-memory filesystem holding tree under root.
func MemTree(t *testing.T, root string, tree Tree) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", root, err)
	}
	WriteTree(t, fsys, root, tree)
	return fsys
}

// TempTree writes tree into a fresh temporary directory on the OS
// filesystem and returns its path.
func TempTree(t *testing.T, tree Tree) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, afero.NewOsFs(), root, tree)
	return root
}
