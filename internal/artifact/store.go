// Package artifact persists per-sample report files to a local directory
// or an S3-compatible bucket.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store defines operations for persisting report artifacts. Paths are
// slash-separated and relative to the store root.
type Store interface {
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	// Location describes where artifacts land (for logs).
	Location() string
}

var ErrNotFound = errors.New("artifact not found")

func cleanPath(path string) (string, error) {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", fmt.Errorf("path %q escapes the store root", path)
		}
	}
	return path, nil
}

func cleanPrefix(prefix string) string {
	return strings.TrimLeft(strings.TrimSpace(prefix), "/")
}
