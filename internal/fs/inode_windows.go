//go:build windows

package fs

import "os"

// provides a Windows stub for inode extraction. Windows does not expose
// POSIX inodes, so the source-change check falls back to mtime and size.

func inodeOf(info os.FileInfo) uint64 {
	_ = info
	return 0
}
