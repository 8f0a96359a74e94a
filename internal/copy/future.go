package copy

import "context"

// Go starts the copy on its own goroutine and returns a channel that
// receives exactly one value once the copy finishes or ctx is canceled,
// whichever happens first. The copy itself is not interruptible mid-flight
// (the underlying algorithm has no cancellation points); a canceled ctx
// only stops the caller from waiting, it does not stop the copy.
func Go(ctx context.Context, src, dest string, opts Options) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- run(src, dest, opts)
	}()

	result := make(chan error, 1)
	go func() {
		// A ctx that is already canceled has happened first, even if the
		// copy has also finished by the time this goroutine runs.
		if err := ctx.Err(); err != nil {
			result <- err
			return
		}
		select {
		case err := <-done:
			result <- err
		case <-ctx.Done():
			result <- ctx.Err()
		}
	}()

	return result
}
