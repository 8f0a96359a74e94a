package copy

// Async starts the copy on its own goroutine and reports completion through
// cb, mirroring Node's callback-style fs-extra.copy entry point. cb is
// always invoked exactly once, never from the calling goroutine.
func Async(src, dest string, opts Options, cb func(error)) {
	go func() {
		cb(run(src, dest, opts))
	}()
}
