// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold file, resolving a
// relative path against the working directory. It returns the absolute file
// path. In-memory SQLite names (":memory:", "file:...") are returned as is.
func EnsureParentDir(file string) (string, error) {
	if file == ":memory:" || strings.HasPrefix(file, "file:") {
		return file, nil
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", file, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return abs, nil
}
