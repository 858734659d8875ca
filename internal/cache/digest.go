package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"sync"

	"sift/internal/config"
)

// Digester computes config digests. The versions are explicit inputs so
// tests can hold them constant.
type Digester struct {
	ToolVersion    string
	RuntimeVersion string

	mu   sync.Mutex
	memo map[*config.Config]string
}

// NewDigester returns a digester for the given tool and runtime versions.
func NewDigester(toolVersion, runtimeVersion string) *Digester {
	return &Digester{ToolVersion: toolVersion, RuntimeVersion: runtimeVersion}
}

// Digest hashes the versions with the canonical form of cfg. Results are
// memoized per *config.Config, which is immutable once built.
func (d *Digester) Digest(cfg *config.Config) (string, error) {
	d.mu.Lock()
	if sum, ok := d.memo[cfg]; ok {
		d.mu.Unlock()
		return sum, nil
	}
	d.mu.Unlock()

	canonical, err := cfg.Canonical()
	if err != nil {
		return "", err
	}
	h := sha256.New()
	writeField(h, []byte(d.ToolVersion))
	writeField(h, []byte(d.RuntimeVersion))
	writeField(h, canonical)
	sum := hex.EncodeToString(h.Sum(nil))

	d.mu.Lock()
	if d.memo == nil {
		d.memo = make(map[*config.Config]string)
	}
	d.memo[cfg] = sum
	d.mu.Unlock()
	return sum, nil
}

// writeField length-prefixes b so that no two field splits hash alike.
func writeField(h hash.Hash, b []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(b)))
	_, _ = h.Write(n[:])
	_, _ = h.Write(b)
}
