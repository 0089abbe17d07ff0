// Package cache provides a byte-level artifact cache for CLI usage.
//
// Rendering a graph through Graphviz is the slowest step of the render
// command, and its output depends only on the DOT text and the target
// format. The cache stores rendered artifacts keyed by a hash of both,
// so re-rendering an unchanged graph is a file read.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores rendered artifacts as opaque byte slices.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// RenderKey generates the cache key for a rendered artifact.
// The key format is: render:<format>:hash(dot).
func RenderKey(dot, format string) string {
	return "render:" + format + ":" + Hash([]byte(dot))
}
