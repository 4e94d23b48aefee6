package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/atomicstack/tabfm/internal/listing"
)

const previewReadLimit = 32 * 1024

// filePreview is the right-hand panel content for a regular file: a summary
// line followed by the head of the file when it looks like text.
type filePreview struct {
	summary string
	lines   []string
	binary  bool
}

func loadFilePreview(fsys afero.Fs, entry listing.Entry, maxLines int) (*filePreview, error) {
	meta := entry.Metadata()
	fp := &filePreview{
		summary: fmt.Sprintf("%s  %s  %s",
			meta.Mode.String(),
			humanize.IBytes(uint64(max(meta.Len, 0))),
			humanize.Time(meta.Modified)),
	}
	if !meta.Mode.IsRegular() || maxLines <= 0 {
		return fp, nil
	}
	f, err := fsys.Open(entry.Path())
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", entry.Name(), err)
	}
	defer f.Close()
	buf, err := io.ReadAll(io.LimitReader(f, previewReadLimit))
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", entry.Name(), err)
	}
	if bytes.IndexByte(buf, 0) >= 0 {
		fp.binary = true
		return fp, nil
	}
	lines := strings.Split(strings.ReplaceAll(string(buf), "\t", "    "), "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	fp.lines = lines
	return fp, nil
}
