package fileop

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

type worker struct {
	fs      afero.Fs
	req     Request
	report  func(Progress)
	done    uint64
	total   uint64
	skipped int
	buf     []byte
}

func (w *worker) run() error {
	if len(w.req.Sources) == 0 {
		return errors.New("nothing to do")
	}
	if err := absolute(append([]string{w.req.Dest}, w.req.Sources...)...); err != nil {
		return err
	}
	info, err := w.fs.Stat(w.req.Dest)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination %s is not a directory", w.req.Dest)
	}
	size := w.req.Options.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	w.buf = make([]byte, size)

	for _, src := range w.req.Sources {
		n, err := treeSize(w.fs, src)
		if err != nil {
			return err
		}
		w.total += n
	}
	w.report(Progress{BytesTotal: w.total})

	for _, src := range w.req.Sources {
		target := filepath.Join(w.req.Dest, filepath.Base(src))
		if filepath.Clean(src) == target {
			if w.req.Kind == Move {
				continue
			}
			return fmt.Errorf("cannot copy %s onto itself", src)
		}
		if isWithin(target, src) {
			return fmt.Errorf("cannot %s %s into itself", w.req.Kind, src)
		}
		var err error
		if w.req.Kind == Move {
			err = w.move(src, target)
		} else {
			err = w.copyTree(src, target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

func treeSize(fsys afero.Fs, root string) (uint64, error) {
	var total uint64
	err := afero.Walk(fsys, root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += uint64(info.Size())
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", root, err)
	}
	return total, nil
}

// claim decides what to do about an existing target. It returns false when the
// item should be skipped.
func (w *worker) claim(target string, isDir bool) (bool, error) {
	info, err := w.fs.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", target, err)
	}
	if isDir && info.IsDir() {
		// Directories merge.
		return true, nil
	}
	switch {
	case w.req.Options.Overwrite:
		if err := w.fs.RemoveAll(target); err != nil {
			return false, fmt.Errorf("overwrite %s: %w", target, err)
		}
		return true, nil
	case w.req.Options.SkipExisting:
		return false, nil
	}
	return false, &fs.PathError{Op: w.req.Kind.String(), Path: target, Err: fs.ErrExist}
}

func (w *worker) skip(src string) {
	w.skipped++
	n, _ := treeSize(w.fs, src)
	w.advance(n, src)
}

func (w *worker) copyTree(src, target string) error {
	info, err := w.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	ok, err := w.claim(target, info.IsDir())
	if err != nil {
		return err
	}
	if !ok {
		w.skip(src)
		return nil
	}
	if !info.IsDir() {
		return w.copyFile(src, target, info.Mode().Perm())
	}
	if err := w.fs.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", target, err)
	}
	children, err := afero.ReadDir(w.fs, src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	for _, child := range children {
		if err := w.copyTree(filepath.Join(src, child.Name()), filepath.Join(target, child.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (w *worker) copyFile(src, target string, perm fs.FileMode) error {
	in, err := w.fs.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := w.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	for {
		n, rerr := in.Read(w.buf)
		if n > 0 {
			if _, err := out.Write(w.buf[:n]); err != nil {
				out.Close()
				return fmt.Errorf("write %s: %w", target, err)
			}
			w.advance(uint64(n), src)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			out.Close()
			return fmt.Errorf("read %s: %w", src, rerr)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}

func (w *worker) advance(n uint64, item string) {
	w.done += n
	if w.done > w.total {
		w.done = w.total
	}
	w.report(Progress{BytesDone: w.done, BytesTotal: w.total, Item: item})
}

// move renames when it can and falls back to copy followed by removal. A
// source with skipped children is left in place.
func (w *worker) move(src, target string) error {
	info, err := w.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	ok, err := w.claim(target, info.IsDir())
	if err != nil {
		return err
	}
	if !ok {
		w.skip(src)
		return nil
	}
	if _, err := w.fs.Stat(target); errors.Is(err, fs.ErrNotExist) {
		n, _ := treeSize(w.fs, src)
		if err := w.fs.Rename(src, target); err == nil {
			w.advance(n, src)
			return nil
		}
	}
	skipped := w.skipped
	if err := w.copyTree(src, target); err != nil {
		return err
	}
	if w.skipped != skipped {
		return nil
	}
	if err := w.fs.RemoveAll(src); err != nil {
		return fmt.Errorf("remove %s: %w", src, err)
	}
	return nil
}
