//go:build !linux && !darwin

package copy

import (
	"os"
	"time"
)

// devInoAtimeFromInfo has no portable implementation outside linux/darwin
// in this engine; identity checks degrade to "never identical" (dev/ino
// stay zero, and sameFile treats zero as a non-match by design).
func devInoAtimeFromInfo(_ os.FileInfo) (dev, ino uint64, atime time.Time, ok bool) {
	return 0, 0, time.Time{}, false
}

// setFileTimes falls back to the portable os.Chtimes on platforms with no
// syscall.Stat_t-based implementation above; the fd argument is unused.
func setFileTimes(_ int, fdPath string, atime, mtime time.Time) error {
	return os.Chtimes(fdPath, atime, mtime)
}
