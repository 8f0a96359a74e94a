package copy

import (
	"os"
	"path/filepath"
)

// preflight runs checkPaths followed by checkParentPaths, rejecting illegal
// (src, dest) pairs before any mutation happens. It is invoked once per
// pair: at the top level, and again by the Directory Copier for every
// child it recurses into.
func preflight(src, dest string, srcStat Stat, destStat *Stat) error {
	if err := checkPaths(src, dest, srcStat, destStat); err != nil {
		return err
	}
	return checkParentPaths(src, srcStat, dest)
}

// checkPaths raises, in priority order, the structural violations that can
// be detected from srcStat/destStat alone — no ancestor walk required.
// The order matters: identical paths that also form a subdirectory
// relation must report COPY_TO_SUBDIRECTORY via the identity check, not
// fall through to the prefix check.
func checkPaths(src, dest string, srcStat Stat, destStat *Stat) error {
	if sameFile(srcStat, statOrZero(destStat)) {
		return errToSubdirectory(dest)
	}

	isSrcDir := srcStat.Kind == KindDirectory
	if destStat != nil {
		isDestDir := destStat.Kind == KindDirectory
		if isSrcDir && !isDestDir {
			return errDirToNonDir(dest)
		}
		if !isSrcDir && isDestDir {
			return errNonDirToDir(dest)
		}
	}

	if isSrcDir && isSrcSubdir(src, dest) {
		return errToSubdirectory(dest)
	}

	return nil
}

func statOrZero(s *Stat) Stat {
	if s == nil {
		return Stat{}
	}
	return *s
}

// checkParentPaths walks dest's ancestors toward the filesystem root,
// stopping as soon as one of them is identical to src — which would mean
// dest lies under a symlink-induced alias of src. The walk terminates
// normally (no error) when it reaches parent(src), the root of dest's own
// path decomposition, or an ancestor that does not exist.
func checkParentPaths(src string, srcStat Stat, dest string) error {
	srcParent := filepath.Dir(mustAbs(src))
	destParent := filepath.Dir(mustAbs(dest))

	for {
		if destParent == srcParent {
			return nil
		}

		info, err := os.Stat(destParent)
		if err != nil {
			if os.IsNotExist(err) {
				return nil // absent ancestor simply ends the walk
			}
			return err
		}

		ancestorStat := statFromInfo(info)
		if sameFile(srcStat, ancestorStat) {
			return errToSubdirectory(dest)
		}

		parent := filepath.Dir(destParent)
		if parent == destParent {
			return nil // reached the filesystem root
		}
		destParent = parent
	}
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
