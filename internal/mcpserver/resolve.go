// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes adlens analysis as tools over stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveFile resolves a CSV export path to an absolute, symlink-resolved
// path. It returns an error if the path is missing, does not exist, or is
// not a regular file.
func ResolveFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory, expected a CSV file", path)
	}

	return absPath, nil
}
