package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 of data as a 64-character hex string. Feed
// sources and measured pools are identified this way.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a namespaced cache key from a prefix and any set of
// key parts. Parts are serialized to JSON before hashing, so two keys
// differ whenever any part differs.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
