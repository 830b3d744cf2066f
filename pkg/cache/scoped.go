package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each scope its own
// namespace. The CLI scopes keys by release version so an upgrade never
// reads networks built by older code.
//
// Example usage:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
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

// NetworkKey generates a prefixed network key.
func (k *ScopedKeyer) NetworkKey(inputHash string, opts NetworkKeyOpts) string {
	return k.prefix + k.inner.NetworkKey(inputHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(networkKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(networkKey, opts)
}
