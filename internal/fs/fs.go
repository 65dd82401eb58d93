package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to a target's name when its pre-patch content is
// set aside.
const BackupSuffix = ".orig"

// Target owns the streams and optional backup for patching a single file.
// Src is nil for files that do not exist yet; Dst is a discard sink in
// dry-run mode.
type Target struct {
	Path       string
	BackupPath string
	Src        io.ReadCloser
	Dst        io.WriteCloser
	IsNew      bool

	closed bool
}

// OpenTarget prepares the source and destination streams for one target
// file. Missing parent directories are created. In real mode a pre-existing
// file is renamed to <name>.orig and read back from there while a fresh file
// with the original permission bits takes its place; in dry-run mode the
// file is read directly and writes go to a discard sink.
func OpenTarget(path string, dryRun bool) (*Target, error) {
	t := &Target{Path: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if dir := filepath.Dir(path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("could not create directories for %s: %w", path, mkErr)
			}
		}
		t.IsNew = true
	case err != nil:
		return nil, fmt.Errorf("could not stat %s: %w", path, err)
	case dryRun:
		src, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("could not open %s: %w", path, openErr)
		}
		t.Src = src
	default:
		t.BackupPath = path + BackupSuffix
		if mvErr := os.Rename(path, t.BackupPath); mvErr != nil {
			return nil, fmt.Errorf("could not back up %s: %w", path, mvErr)
		}
		src, openErr := os.Open(t.BackupPath)
		if openErr != nil {
			return nil, fmt.Errorf("could not open backup of %s: %w", path, openErr)
		}
		t.Src = src
	}

	if dryRun {
		t.Dst = nopWriteCloser{io.Discard}
		return t, nil
	}

	dst, openErr := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if openErr != nil {
		if t.Src != nil {
			t.Src.Close()
		}
		return nil, fmt.Errorf("could not open %s for writing: %w", path, openErr)
	}
	if info != nil {
		// Carry the original permission bits over to the rewritten file.
		if chErr := dst.Chmod(info.Mode().Perm()); chErr != nil {
			dst.Close()
			t.Src.Close()
			return nil, fmt.Errorf("could not restore permissions on %s: %w", path, chErr)
		}
	}
	t.Dst = dst
	return t, nil
}

// Close releases both streams. It is safe to call more than once.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	if t.Src != nil {
		if err := t.Src.Close(); err != nil {
			firstErr = err
		}
	}
	if t.Dst != nil {
		if err := t.Dst.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DiscardBackup removes the .orig backup after a clean application.
func (t *Target) DiscardBackup() error {
	if t.BackupPath == "" {
		return nil
	}
	if err := os.Remove(t.BackupPath); err != nil {
		return fmt.Errorf("could not remove backup %s: %w", t.BackupPath, err)
	}
	t.BackupPath = ""
	return nil
}

// Remove deletes the target file, used when patching leaves it empty.
func (t *Target) Remove() error {
	if err := os.Remove(t.Path); err != nil {
		return fmt.Errorf("could not remove %s: %w", t.Path, err)
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
