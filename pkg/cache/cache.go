// Package cache provides artifact caching for the engraving pipeline.
//
// Rendering is deterministic, so rendered documents and their raster
// conversions can be cached by a content hash of the fully resolved
// request. The FileCache backs the CLI; the NullCache disables caching.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// DocumentKey identifies a rendered SVG by its request hash.
	DocumentKey(requestHash string) string

	// ArtifactKey identifies a converted artifact (png, pdf) derived
	// from a rendered document.
	ArtifactKey(documentHash, format string, scale float64) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(requestHash string) string {
	return hashKey("doc", requestHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(documentHash, format string, scale float64) string {
	return hashKey("artifact", documentHash, format, scale)
}
