package ui

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/listing"
)

func previewEntry(t *testing.T, fsys afero.Fs, path string) listing.Entry {
	t.Helper()
	meta, err := listing.Stat(fsys, path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	return listing.NewEntry(path[strings.LastIndex(path, "/")+1:], path, meta)
}

func TestFilePreviewLimitsLines(t *testing.T) {
	fsys := afero.NewMemMapFs()
	body := "one\ntwo\tx\nthree\nfour\n"
	if err := afero.WriteFile(fsys, "/f.txt", []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fp, err := loadFilePreview(fsys, previewEntry(t, fsys, "/f.txt"), 2)
	if err != nil {
		t.Fatalf("loadFilePreview: %v", err)
	}
	if len(fp.lines) != 2 || fp.lines[1] != "two    x" {
		t.Fatalf("unexpected lines %#v", fp.lines)
	}
	if !strings.Contains(fp.summary, "-rw-r--r--") {
		t.Fatalf("expected mode in summary, got %q", fp.summary)
	}
}

func TestFilePreviewDetectsBinary(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/bin.dat", []byte{0x7f, 'E', 0, 1}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fp, err := loadFilePreview(fsys, previewEntry(t, fsys, "/bin.dat"), 10)
	if err != nil {
		t.Fatalf("loadFilePreview: %v", err)
	}
	if !fp.binary || len(fp.lines) != 0 {
		t.Fatalf("expected binary preview without lines, got %#v", fp)
	}
}
