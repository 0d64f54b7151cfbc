// write.go implements the temp-then-rename write discipline.
//
// Separated from engine.go to keep the orchestration readable. A crash
// mid-write must never leave a partially-written file at the target path:
// content goes to a temp file in the same directory (rename is only atomic
// within a filesystem), is synced, and then renamed over the original.

package engine

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes content to path such that readers observe either
// the old content or the new content, never a partial write. The target's
// existing permissions are preserved when it already exists.
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	// Harmless after a successful rename; cleans up every failure path.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
