package copy

import (
	"fmt"
	"os"

	"github.com/fscopy/fscopy/internal/platform"
	"golang.org/x/sys/unix"
)

// copyFile handles regular files, and block/character devices (copied as a
// byte stream). srcStat/destStat were captured once at pre-flight time;
// destStat's existence state — not a fresh stat — drives the overwrite
// decision. dest's parent directory is assumed to already exist: run
// creates it once for the top-level pair, and the Directory Copier creates
// every other ancestor as it recurses.
func copyFile(inv *invocation, src, dest string, srcStat Stat, destStat *Stat) error {
	switch {
	case destStat == nil:
		// proceed to byte copy
	case inv.opts.Force:
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove existing %s: %w", dest, err)
		}
	case inv.opts.ErrorOnExist:
		return errEExist(dest)
	default:
		return nil // silently left untouched
	}

	dstFd, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcStat.Mode.Perm())
	if err != nil {
		return fmt.Errorf("open %s for write: %w", dest, err)
	}

	if err := byteCopy(inv, src, dstFd, srcStat); err != nil {
		dstFd.Close()
		return fmt.Errorf("copy data %s -> %s: %w", src, dest, err)
	}

	if inv.opts.PreserveTimestamps {
		if err := restoreTimestamps(inv, src, dest, dstFd); err != nil {
			dstFd.Close()
			return err
		}
	}

	if err := dstFd.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	// Mode restoration runs last so any transient write bit used for
	// timestamp restoration is undone.
	if err := os.Chmod(dest, srcStat.Mode.Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", dest, err)
	}

	inv.recordFile(srcStat.Size)
	return nil
}

func byteCopy(inv *invocation, src string, dstFd *os.File, srcStat Stat) error {
	params := platform.CopyFileParams{
		SrcPath: src,
		DstFd:   dstFd,
		SrcSize: srcStat.Size,
	}

	if inv.opts.UseIOURing {
		if _, ok, err := platform.TryIOURingCopy(params); ok {
			return err
		}
		// Kernel doesn't support io_uring (or the ring failed to
		// initialize) — fall through to the standard platform copy.
	}

	_, err := platform.CopyFile(params)
	return err
}

// restoreTimestamps implements §4.5 step 4: restat src (the byte copy's own
// reads just perturbed its atime), temporarily make dest writable if src's
// owner lacks write permission (utimes requires an open-for-write
// descriptor on this engine's target platforms), then set dest's
// atime/mtime from the fresh stat. The restat uses the same
// lstat-or-stat policy as getStats: under Dereference, src was dispatched
// here via its resolved target, so the timestamps restored must be the
// target's, not the symlink's.
func restoreTimestamps(inv *invocation, src, dest string, dstFd *os.File) error {
	inv.warnTimestampPrecision()

	freshInfo, err := lstatOrStat(src, inv.opts.Dereference)
	if err != nil {
		return fmt.Errorf("restat %s for timestamps: %w", src, err)
	}
	fresh := statFromInfo(freshInfo)

	madeWritable := false
	if fresh.Mode&0o200 == 0 {
		if err := unix.Fchmod(int(dstFd.Fd()), uint32(fresh.Mode.Perm()|0o200)); err != nil {
			return fmt.Errorf("temporarily unlock %s for utimes: %w", dest, err)
		}
		madeWritable = true
	}

	if err := setFileTimes(int(dstFd.Fd()), dest, fresh.Atime, fresh.Mtime); err != nil {
		return fmt.Errorf("set timestamps on %s: %w", dest, err)
	}

	if madeWritable {
		// Mode restoration happens unconditionally right after this call
		// returns, in copyFile — this just avoids leaving dest writable
		// between here and there if a caller inspected it mid-flight.
		_ = unix.Fchmod(int(dstFd.Fd()), uint32(fresh.Mode.Perm()))
	}

	return nil
}
