//go:build linux

package copy

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// devInoAtimeFromInfo extracts device id, inode number, and access time
// from the platform-specific portion of an os.FileInfo. ok is false if the
// underlying Sys() value isn't a *syscall.Stat_t (e.g. a synthetic FileInfo).
func devInoAtimeFromInfo(info os.FileInfo) (dev, ino uint64, atime time.Time, ok bool) {
	stat, isStatT := info.Sys().(*syscall.Stat_t)
	if !isStatT {
		return 0, 0, time.Time{}, false
	}
	return stat.Dev, stat.Ino, time.Unix(stat.Atim.Sec, stat.Atim.Nsec), true
}

// setFileTimes sets atime and mtime on an open file descriptor.
func setFileTimes(rawFd int, fdPath string, atime, mtime time.Time) error {
	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(rawFd, "", times, unix.AT_EMPTY_PATH); err != nil {
		// Fallback: some systems don't support AT_EMPTY_PATH.
		if err2 := unix.UtimesNanoAt(unix.AT_FDCWD, fdPath, times, 0); err2 != nil {
			return fmt.Errorf("utimensat: %w", err)
		}
	}
	return nil
}
