// Package copy implements a recursive filesystem copy engine: one blocking
// algorithm (pre-flight validation, then dispatch by entry kind) exposed
// through three dialects — Sync, Async (callback), and Go (channel) — so
// callers can pick the concurrency shape that fits their call site without
// the traversal itself being duplicated three times.
package copy

// Sync copies src to dest, recursing through directories, and blocks until
// the whole tree has been copied or an error is hit.
func Sync(src, dest string, opts Options) error {
	return run(src, dest, opts)
}
