package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenTargetBacksUpExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0o644))
	require.NoError(t, os.Chmod(path, 0o640))

	target, err := OpenTarget(path, false)
	require.NoError(t, err)

	require.Equal(t, path+BackupSuffix, target.BackupPath)
	require.False(t, target.IsNew)

	backup, err := os.ReadFile(target.BackupPath)
	require.NoError(t, err)
	require.Equal(t, "old content\n", string(backup))

	original, err := io.ReadAll(target.Src)
	require.NoError(t, err)
	require.Equal(t, "old content\n", string(original))

	_, err = io.WriteString(target.Dst, "new content\n")
	require.NoError(t, err)
	require.NoError(t, target.Close())

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new content\n", string(rewritten))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	require.NoError(t, target.DiscardBackup())
	_, err = os.Stat(path + BackupSuffix)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenTargetDryRunDoesNotTouchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))

	target, err := OpenTarget(path, true)
	require.NoError(t, err)

	require.Empty(t, target.BackupPath)

	_, err = io.WriteString(target.Dst, "discarded\n")
	require.NoError(t, err)
	require.NoError(t, target.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content\n", string(content))

	_, err = os.Stat(path + BackupSuffix)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenTargetCreatesMissingParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "f.txt")

	target, err := OpenTarget(path, false)
	require.NoError(t, err)

	require.True(t, target.IsNew)
	require.Nil(t, target.Src)
	require.Empty(t, target.BackupPath)

	_, err = io.WriteString(target.Dst, "hello\n")
	require.NoError(t, err)
	require.NoError(t, target.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(content))
}

func TestTargetRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("gone\n"), 0o644))

	target, err := OpenTarget(path, false)
	require.NoError(t, err)
	require.NoError(t, target.Close())
	require.NoError(t, target.DiscardBackup())
	require.NoError(t, target.Remove())

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTargetCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))

	target, err := OpenTarget(path, false)
	require.NoError(t, err)
	require.NoError(t, target.Close())
	require.NoError(t, target.Close())
}
