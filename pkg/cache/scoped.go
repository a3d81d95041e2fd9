package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. one
// namespace per GEDCOM source when several trees share a Redis instance.
//
// Example usage:
//
//	// Source-specific keys
//	srcKeyer := NewScopedKeyer(NewDefaultKeyer(), "src:smith-family:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TreeKey generates a prefixed key for a parsed GEDCOM tree.
func (k *ScopedKeyer) TreeKey(sourceHash string) string {
	return k.prefix + k.inner.TreeKey(sourceHash)
}

// GeometryKey generates a prefixed key for computed chart geometry.
func (k *ScopedKeyer) GeometryKey(treeHash, rootXref string, opts GeometryKeyOpts) string {
	return k.prefix + k.inner.GeometryKey(treeHash, rootXref, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(geometryHash, opts)
}
