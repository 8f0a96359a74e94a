package copy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_SymlinkRecreatedAtDest(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

	src := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, src))

	dest := filepath.Join(dir, "link-copy")
	require.NoError(t, Sync(src, dest, Options{}))

	got, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestSync_SymlinkOverwritesExistingLink(t *testing.T) {
	dir := t.TempDir()
	targetA := filepath.Join(dir, "a.txt")
	targetB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(targetA, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(targetB, []byte("b"), 0o644))

	src := filepath.Join(dir, "link-to-a")
	require.NoError(t, os.Symlink(targetA, src))

	dest := filepath.Join(dir, "link-to-b")
	require.NoError(t, os.Symlink(targetB, dest))

	require.NoError(t, Sync(src, dest, Options{}))

	got, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, targetA, got)
}

func TestSync_SymlinkLoopThroughDestRejected(t *testing.T) {
	dir := t.TempDir()
	ancestor := filepath.Join(dir, "ancestor")
	require.NoError(t, os.MkdirAll(ancestor, 0o755))
	existing := filepath.Join(ancestor, "existing.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	// src's link target is "ancestor" itself; dest already exists as a
	// symlink whose own target lies inside ancestor — src's target is an
	// ancestor of dest's current target, so the overwrite is rejected.
	src := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(ancestor, src))

	dest := filepath.Join(dir, "dest-link")
	require.NoError(t, os.Symlink(existing, dest))

	err := Sync(src, dest, Options{})
	require.Error(t, err)
	var copyErr *Error
	require.ErrorAs(t, err, &copyErr)
	assert.Equal(t, CodeToSubdirectory, copyErr.Code)
}

func TestSync_SymlinkOverwriteNonexistentDestProceedsUnconditionally(t *testing.T) {
	dir := t.TempDir()
	ancestor := filepath.Join(dir, "ancestor")
	require.NoError(t, os.MkdirAll(ancestor, 0o755))

	// src's link target is "ancestor"; dest doesn't exist yet, nested
	// inside ancestor itself. Per the loop-guard's scope (it only
	// applies when overwriting an existing symlink), this is not
	// rejected — the Symlink Copier unconditionally creates it.
	src := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(ancestor, src))

	dest := filepath.Join(ancestor, "nested", "link-copy")
	require.NoError(t, Sync(src, dest, Options{}))

	got, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, ancestor, got)
}

func TestSync_SymlinkToSubdirectoryRejected(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base")
	sub := filepath.Join(base, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	// src's link target is "base/sub", a directory; dest already exists
	// as a symlink to "base", an ancestor of src's target. Overwriting
	// dest would erase the path through which src's own content is
	// about to be copied.
	src := filepath.Join(dir, "link-to-sub")
	require.NoError(t, os.Symlink(sub, src))

	dest := filepath.Join(dir, "dest-link")
	require.NoError(t, os.Symlink(base, dest))

	err := Sync(src, dest, Options{})
	require.Error(t, err)
	var copyErr *Error
	require.ErrorAs(t, err, &copyErr)
	assert.Equal(t, CodeSymlinkToSubdirectory, copyErr.Code)
}
