//go:build unix

package listing

import (
	"os"
	"syscall"
)

func owner(info os.FileInfo) (uint32, uint32, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return 0, 0, false
	}
	return st.Uid, st.Gid, true
}
