// Package cache provides content-addressed caching for the sosatree pipeline.
//
// Three kinds of results are cached, each with its own key shape and TTL:
//   - Tree: parsed GEDCOM trees, keyed by source content hash
//   - Geometry: computed chart geometry, keyed by tree hash plus layout options
//   - Artifact: rendered outputs, keyed by geometry hash plus render options
//
// Backends implement the Cache interface: FileCache for the CLI (XDG cache
// dir), RedisCache for shared deployments, NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Parsed trees change only when the source file does
// (the key embeds the content hash), so they can live long; geometry and
// artifacts are cheap to recompute and expire sooner.
const (
	TTLTree     = 30 * 24 * time.Hour
	TTLGeometry = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry;
	// a negative TTL stores an entry that is already expired.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GeometryKeyOpts are the layout options that influence chart geometry.
// Any field change must produce a different cache key.
type GeometryKeyOpts struct {
	Generations int
	Orientation int
	Strict      bool
	BoxWidth    int
	BoxHeight   int
	SpacingX    int
	SpacingY    int
}

// ArtifactKeyOpts are the render options that influence artifact bytes.
type ArtifactKeyOpts struct {
	Format string
	Theme  string
	Lines  bool
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// TreeKey generates a key for a parsed GEDCOM tree.
	TreeKey(sourceHash string) string

	// GeometryKey generates a key for computed chart geometry.
	GeometryKey(treeHash, rootXref string, opts GeometryKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes stage options into stable prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TreeKey generates a key for a parsed GEDCOM tree.
func (k *DefaultKeyer) TreeKey(sourceHash string) string {
	return "tree:" + sourceHash
}

// GeometryKey generates a key for computed chart geometry.
func (k *DefaultKeyer) GeometryKey(treeHash, rootXref string, opts GeometryKeyOpts) string {
	return hashKey("geometry", treeHash, rootXref, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", geometryHash, opts)
}
