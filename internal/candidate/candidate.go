// Package candidate describes files discovered during a retention scan.
package candidate

import (
	"os"
	"time"
)

// File is a single discovered filesystem entry, eligible for classification.
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
	Age     time.Duration
}

// FromFileInfo constructs a File from a path and os.FileInfo, deriving
// the age relative to the run start. A modification time in the future
// (clock skew) clamps the age to zero so the file is never acted on.
func FromFileInfo(path string, info os.FileInfo, runStart time.Time) File {
	age := runStart.Sub(info.ModTime())
	if age < 0 {
		age = 0
	}
	return File{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Age:     age,
	}
}
