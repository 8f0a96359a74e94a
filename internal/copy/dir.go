package copy

import (
	"fmt"
	"os"
	"path/filepath"
)

// copyDir creates dest if it is absent, then walks src's children in
// readdir order, recursing through the full pre-flight + dispatch pipeline
// for each one. Mode is restored last, after every child has completed, so
// a transient mkdir default mode never leaks into the final result.
func copyDir(inv *invocation, src, dest string, srcStat Stat, destStat *Stat) error {
	if destStat == nil {
		if err := os.Mkdir(dest, srcStat.Mode.Perm()); err != nil {
			return fmt.Errorf("mkdir %s: %w", dest, err)
		}
		inv.recordDir()
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("readdir %s: %w", src, err)
	}

	for _, entry := range entries {
		childSrc := filepath.Join(src, entry.Name())
		childDest := filepath.Join(dest, entry.Name())

		if err := copyPair(inv, childSrc, childDest); err != nil {
			return err
		}
	}

	return os.Chmod(dest, srcStat.Mode.Perm())
}
