// path.go implements path resolution and optional root confinement.
//
// When a root is configured, every edited path must resolve inside it,
// symlinks included. Confinement is a deployment guard for servers exposed
// to agents; without a root the engine edits whatever path it is given.

package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// resolvePath normalises path and enforces the configured root.
func (e *Engine) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("null byte in path")
	}

	if e.opts.Root == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		return filepath.Clean(abs), nil
	}

	root, err := filepath.Abs(e.opts.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	// Relative paths are taken relative to the root, not the process cwd.
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)

	if !within(root, abs) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}

	// A symlink inside the root may still point outside it.
	resolved, err := filepath.EvalSymlinks(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Propose reads the file next and reports the missing file there
		// with a clearer message.
		return abs, nil
	case err != nil:
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = root
	}
	if !within(resolvedRoot, resolved) {
		return "", fmt.Errorf("%w: %s resolves outside the root", ErrOutsideRoot, path)
	}
	return abs, nil
}

// within reports whether target sits at or below dir.
func within(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
