package listing

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"
)

// Metadata is a snapshot of the stat information shown for an entry and used
// for staleness checks on directories.
type Metadata struct {
	Len      int64
	Modified time.Time
	Mode     fs.FileMode
	UID      uint32
	GID      uint32
	HasOwner bool
}

// MetadataFrom copies the fields of interest out of info.
func MetadataFrom(info os.FileInfo) Metadata {
	md := Metadata{
		Len:      info.Size(),
		Modified: info.ModTime(),
		Mode:     info.Mode(),
	}
	md.UID, md.GID, md.HasOwner = owner(info)
	return md
}

// IsDir reports whether the snapshot describes a directory.
func (m Metadata) IsDir() bool {
	return m.Mode.IsDir()
}

// IsSymlink reports whether the snapshot describes a symbolic link.
func (m Metadata) IsSymlink() bool {
	return m.Mode&fs.ModeSymlink != 0
}

// Stat reads the metadata for path, following symlinks.
func Stat(fsys afero.Fs, path string) (Metadata, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return MetadataFrom(info), nil
}
