package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 sum, compatible with source.File.Hash.
type Digest = [32]byte

// cacheKey: H(content || dialects || language || limit || schema).
func cacheKey(content, dialects Digest, language string, maxDiagnostics int) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write(dialects[:])
	_, _ = h.Write([]byte(language))
	var tail [10]byte
	binary.LittleEndian.PutUint64(tail[:8], uint64(max(maxDiagnostics, 0)))
	binary.LittleEndian.PutUint16(tail[8:], diskCacheSchemaVersion)
	_, _ = h.Write(tail[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
