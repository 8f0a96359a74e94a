//go:build darwin

package copy

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// devInoAtimeFromInfo extracts device id, inode number, and access time
// from the platform-specific portion of an os.FileInfo.
func devInoAtimeFromInfo(info os.FileInfo) (dev, ino uint64, atime time.Time, ok bool) {
	stat, isStatT := info.Sys().(*syscall.Stat_t)
	if !isStatT {
		return 0, 0, time.Time{}, false
	}
	//nolint:gosec // G115: dev_t/ino_t are non-negative on darwin
	return uint64(stat.Dev), stat.Ino, time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec), true
}

// setFileTimes sets atime and mtime on a file by path. Darwin lacks
// UTIME_OMIT and AT_EMPTY_PATH, so this always uses path-based utimensat —
// the fd argument exists only to keep the signature uniform across platforms.
func setFileTimes(_ int, fdPath string, atime, mtime time.Time) error {
	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, fdPath, times, 0); err != nil {
		return fmt.Errorf("utimensat: %w", err)
	}
	return nil
}
