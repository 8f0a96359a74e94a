package copy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// copySymlink recreates src's link at dest. When opts.Dereference is set,
// dispatch never reaches here — getStats already resolved src through the
// link, so the entry arrives typed as whatever it resolves to. dest's
// parent directory is assumed to already exist (see run/copyDir).
func copySymlink(inv *invocation, src, dest string, srcStat Stat, destStat *Stat) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("readlink %s: %w", src, err)
	}

	if destStat == nil {
		return createSymlink(inv, target, dest)
	}

	resolvedDest, err := os.Readlink(dest)
	if err != nil {
		if isNotALinkErr(err) {
			return createSymlink(inv, target, dest)
		}
		return fmt.Errorf("readlink %s: %w", dest, err)
	}

	if err := checkSymlinkLoop(src, dest, target, resolvedDest); err != nil {
		return err
	}

	if err := os.Remove(dest); err != nil {
		return fmt.Errorf("remove existing symlink %s: %w", dest, err)
	}
	return createSymlink(inv, target, dest)
}

func createSymlink(inv *invocation, target, dest string) error {
	if err := os.Symlink(target, dest); err != nil {
		return fmt.Errorf("symlink %s -> %s: %w", dest, target, err)
	}
	inv.recordSymlink()
	return nil
}

// checkSymlinkLoop implements §4.7's subdirectory guards. It only runs
// once dest is known to be an existing symlink: resolvedDest is its
// target, anchored to dest's own directory if relative, the same way
// target is anchored to src's directory. The priority order matters —
// COPY_TO_SUBDIRECTORY is checked first, and COPY_SYMLINK_TO_SUBDIRECTORY
// only applies when src resolves to a directory (it guards against
// unlinking dest erasing content about to be written through src).
func checkSymlinkLoop(src, dest, target, resolvedDest string) error {
	resolvedSrc := anchorTarget(target, filepath.Dir(src))
	resolvedDestAbs := anchorTarget(resolvedDest, filepath.Dir(dest))

	if isSrcSubdir(resolvedSrc, resolvedDestAbs) {
		return errToSubdirectory(dest)
	}

	if srcResolvesToDir(src) && isSrcSubdir(resolvedDestAbs, resolvedSrc) {
		return errSymlinkToSubdirectory(dest)
	}

	return nil
}

// anchorTarget re-anchors a (possibly relative) symlink target to an
// absolute path rooted at dir, the directory containing the link itself.
func anchorTarget(target, dir string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(dir, target)
}

// srcResolvesToDir reports whether src, followed through its link, names a
// directory — a fresh stat, since srcStat at the call site is the
// symlink's own (un-dereferenced) metadata.
func srcResolvesToDir(src string) bool {
	info, err := os.Stat(src)
	return err == nil && info.IsDir()
}

func isNotALinkErr(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error() == "invalid argument"
	}
	return false
}
