package copy

import "github.com/fscopy/fscopy/internal/stats"

// FilterFunc decides whether the (src, dest) pair should be copied. A
// false result silently skips the pair — and, for a directory, its entire
// subtree, since the recursive call into it never happens.
type FilterFunc func(src, dest string) bool

// Options configures a copy operation. The zero value copies without
// dereferencing symlinks, without preserving timestamps, and leaves an
// existing destination file untouched.
type Options struct {
	// Dereference follows symbolic links in src: the link's target
	// content is copied rather than the link itself.
	Dereference bool

	// PreserveTimestamps copies atime/mtime from src onto dest.
	PreserveTimestamps bool

	// Force removes an existing destination file before copying.
	// This is the single canonical name for what the reference
	// implementation's two dialects called "force" and "overwrite".
	Force bool

	// ErrorOnExist makes an existing destination file a hard error,
	// unless Force is also set (Force takes priority).
	ErrorOnExist bool

	// Filter, if set, is consulted for every (src, dest) pair before it
	// is dispatched.
	Filter FilterFunc

	// UseIOURing opts into the io_uring-accelerated byte-copy path on
	// Linux kernels that support it, falling back silently otherwise.
	UseIOURing bool

	// Stats, if set, receives counts of the files copied, directories
	// created, and symlinks created, plus each copied file's size in
	// bytes. Entries left untouched (an existing file without Force, an
	// existing directory) are not counted. Nil means no accounting — the
	// zero value of Options runs uninstrumented.
	Stats *stats.Collector
}

func (o Options) filterAllows(src, dest string) bool {
	if o.Filter == nil {
		return true
	}
	return o.Filter(src, dest)
}
