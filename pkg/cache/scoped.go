package cache

// ScopedKeyer wraps a Keyer with a prefix so different feeds or profiles
// get separate cache namespaces.
//
//	work := NewScopedKeyer(NewDefaultKeyer(), "profile:work:")
//	talk := NewScopedKeyer(NewDefaultKeyer(), "profile:talks:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FeedKey generates a prefixed feed key.
func (k *ScopedKeyer) FeedKey(source string) string {
	return k.prefix + k.inner.FeedKey(source)
}

// SnapshotKey generates a prefixed snapshot key.
func (k *ScopedKeyer) SnapshotKey(poolHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(poolHash, opts)
}
