// Package ioutils provides file and image helpers for the catalog front-end.
//
// This package contains functions for:
//   - Resolving slide background references
//   - Reading local assets with cancellation
//   - Directory creation
//   - Thumbnail generation for slide backgrounds
package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ResolveRef turns a relative asset reference into a path under baseDir.
// Absolute paths, URLs and empty references are returned unchanged.
//
// Example:
//
//	ResolveRef("/etc/sjt", "img/slide1.png")      // "/etc/sjt/img/slide1.png"
//	ResolveRef("/etc/sjt", "https://cdn/x.png")   // "https://cdn/x.png"
func ResolveRef(baseDir, ref string) string {
	if ref == "" || IsRemote(ref) || filepath.IsAbs(ref) || baseDir == "" {
		return ref
	}
	return filepath.Join(baseDir, ref)
}

// ReadFile reads a local file unless ctx is already done.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
