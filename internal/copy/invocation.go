package copy

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// invocation carries the state shared across one entire copy operation:
// the options it was called with, and the latch for the one-per-invocation
// TimestampPrecisionWarning.
type invocation struct {
	opts         Options
	timeWarnOnce sync.Once
}

func newInvocation(opts Options) *invocation {
	return &invocation{opts: opts}
}

// warnTimestampPrecision emits TimestampPrecisionWarning exactly once per
// invocation, and only on a 32-bit host, where time.Time's round-trip
// through the platform's narrower time representation may lose precision.
func (inv *invocation) warnTimestampPrecision() {
	if strconv.IntSize != 32 {
		return
	}
	inv.timeWarnOnce.Do(func() {
		slog.Warn("TimestampPrecisionWarning",
			"detail", "preserving timestamps on a 32-bit host may lose sub-second precision")
	})
}

func (inv *invocation) recordFile(bytes int64) {
	if inv.opts.Stats == nil {
		return
	}
	inv.opts.Stats.AddFilesCopied(1)
	inv.opts.Stats.AddBytesCopied(bytes)
}

func (inv *invocation) recordDir() {
	if inv.opts.Stats == nil {
		return
	}
	inv.opts.Stats.AddDirsCreated(1)
}

func (inv *invocation) recordSymlink() {
	if inv.opts.Stats == nil {
		return
	}
	inv.opts.Stats.AddSymlinksCreated(1)
}

// run executes the full copy algorithm for (src, dest) under opts. It is
// the single blocking implementation shared by all three public dialects —
// Sync calls it directly, Async and Go each run it on its own goroutine and
// translate its one return value into their completion form.
//
// dest's parent directory is created once here, at the top level; every
// other ancestor in the tree is created by the Directory Copier as it
// recurses, so neither the File Copier nor the Symlink Copier need to
// repeat a MkdirAll per entry.
func run(src, dest string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", dest, err)
	}
	inv := newInvocation(opts)
	return copyPair(inv, src, dest)
}

// copyPair is the recursive step: stat, pre-flight, filter, dispatch. The
// Directory Copier calls back into this for every child it walks.
func copyPair(inv *invocation, src, dest string) error {
	srcStat, destStat, err := getStats(src, dest, inv.opts)
	if err != nil {
		return err
	}

	if err := preflight(src, dest, srcStat, destStat); err != nil {
		return err
	}

	if !inv.opts.filterAllows(src, dest) {
		return nil
	}

	return dispatch(inv, src, dest, srcStat, destStat)
}
