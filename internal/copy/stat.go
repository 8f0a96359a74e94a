package copy

import (
	"os"
	"time"
)

// Kind identifies the taxonomy of filesystem entry a Stat describes.
type Kind int

const (
	KindRegular Kind = iota
	KindDirectory
	KindSymlink
	KindBlockDevice
	KindCharDevice
	KindSocket
	KindFifo
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindBlockDevice:
		return "block-device"
	case KindCharDevice:
		return "char-device"
	case KindSocket:
		return "socket"
	case KindFifo:
		return "fifo"
	default:
		return "unknown"
	}
}

// Stat is the metadata this engine tracks for a filesystem entry. Dev and
// Ino are wide (uint64) because both can exceed 32 bits on modern
// filesystems; they are the sole identity signal used to detect aliasing
// between src and dest.
type Stat struct {
	Kind  Kind
	Mode  os.FileMode
	Size  int64
	Atime time.Time
	Mtime time.Time
	Dev   uint64
	Ino   uint64
}

func kindFromMode(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindRegular
	case mode.IsDir():
		return KindDirectory
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return KindCharDevice
	case mode&os.ModeDevice != 0:
		return KindBlockDevice
	case mode&os.ModeSocket != 0:
		return KindSocket
	case mode&os.ModeNamedPipe != 0:
		return KindFifo
	default:
		return KindUnknown
	}
}

func statFromInfo(info os.FileInfo) Stat {
	s := Stat{
		Kind: kindFromMode(info.Mode()),
		Mode: info.Mode(),
		Size: info.Size(),
		// Atime defaults to Mtime when the platform stat_t extraction
		// below is unavailable; overwritten by devInoAtimeFromInfo.
		Atime: info.ModTime(),
		Mtime: info.ModTime(),
	}
	dev, ino, atime, ok := devInoAtimeFromInfo(info)
	if ok {
		s.Dev = dev
		s.Ino = ino
		s.Atime = atime
	}
	return s
}

// getStats stats src (lstat, or stat if opts.Dereference) and dest (always
// lstat — the destination's own link-ness, if any, is what the Symlink
// Copier needs to see). A missing dest is not an error: it is reported as
// a nil *Stat, a distinct outcome from every other failure.
func getStats(src, dest string, opts Options) (srcStat Stat, destStat *Stat, err error) {
	srcInfo, err := lstatOrStat(src, opts.Dereference)
	if err != nil {
		return Stat{}, nil, err
	}
	srcStat = statFromInfo(srcInfo)

	destInfo, err := os.Lstat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return srcStat, nil, nil
		}
		return Stat{}, nil, err
	}
	ds := statFromInfo(destInfo)
	return srcStat, &ds, nil
}

func lstatOrStat(path string, dereference bool) (os.FileInfo, error) {
	if dereference {
		return os.Stat(path)
	}
	return os.Lstat(path)
}
