package copy

import (
	"path/filepath"
	"strings"
)

// sameFile reports whether a and b are the same inode. Both dev and ino
// must be nonzero: an ambient filesystem that reports zero for either on
// synthetic or special entries must never be treated as identical to
// anything else.
func sameFile(a, b Stat) bool {
	if a.Dev == 0 || a.Ino == 0 {
		return false
	}
	if b.Dev == 0 || b.Ino == 0 {
		return false
	}
	return a.Dev == b.Dev && a.Ino == b.Ino
}

// isSrcSubdir reports whether dest's normalized path lies inside src's —
// i.e. src's component sequence is a prefix of dest's. It is a pure string
// predicate: it never touches the filesystem, and it is symmetric in
// usage — callers swap the arguments to ask "is src inside dest?" instead.
func isSrcSubdir(src, dest string) bool {
	srcParts, err1 := splitComponents(src)
	destParts, err2 := splitComponents(dest)
	if err1 != nil || err2 != nil {
		return false
	}
	if len(srcParts) >= len(destParts) {
		return false
	}
	for i, p := range srcParts {
		if destParts[i] != p {
			return false
		}
	}
	return true
}

// splitComponents resolves path to an absolute, cleaned form and splits it
// on the OS separator, dropping empty components.
func splitComponents(path string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	abs = filepath.Clean(abs)
	parts := strings.Split(abs, string(filepath.Separator))
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
