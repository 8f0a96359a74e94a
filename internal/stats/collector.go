package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks copy operation statistics using lock-free atomic
// counters. A single Collector is shared across the whole invocation —
// copyPair and its dispatch targets call the Add* methods directly, no
// matter which dialect (Sync/Async/Go) drives them.
type Collector struct {
	filesCopied     atomic.Int64
	dirsCreated     atomic.Int64
	symlinksCreated atomic.Int64
	bytesCopied     atomic.Int64
	startTime       time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesCopied     int64
	DirsCreated     int64
	SymlinksCreated int64
	BytesCopied     int64
	Elapsed         time.Duration
}

func (c *Collector) AddFilesCopied(n int64)     { c.filesCopied.Add(n) }
func (c *Collector) AddDirsCreated(n int64)     { c.dirsCreated.Add(n) }
func (c *Collector) AddSymlinksCreated(n int64) { c.symlinksCreated.Add(n) }
func (c *Collector) AddBytesCopied(n int64)     { c.bytesCopied.Add(n) }

// Snapshot returns a read of all counters. Each counter is loaded
// atomically, one after another, so the set is not a single atomic view
// while Add* calls are still in flight.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesCopied:     c.filesCopied.Load(),
		DirsCreated:     c.dirsCreated.Load(),
		SymlinksCreated: c.symlinksCreated.Load(),
		BytesCopied:     c.bytesCopied.Load(),
		Elapsed:         c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d dirs=%d symlinks=%d bytes=%s elapsed=%s",
		s.FilesCopied, s.DirsCreated, s.SymlinksCreated,
		FormatBytes(s.BytesCopied), s.Elapsed.Round(time.Millisecond),
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
