package cache

import (
	"errors"
	"sync"

	"sift/internal/config"
	"sift/internal/diag"
)

var (
	// ErrDirtyResult is returned when storing a result that has diagnostics.
	ErrDirtyResult = errors.New("only clean results can be cached")
	// ErrAlreadyPersisted is returned by Store after Persist.
	ErrAlreadyPersisted = errors.New("cache already persisted")
)

// Ticket carries what a lookup learned about a file to the matching Store.
type Ticket struct {
	Path   string
	Digest string
	desc   Descriptor
}

// ResultCache answers whether a file can skip analysis.
type ResultCache struct {
	entries EntryCache
	digests *Digester

	mu        sync.Mutex
	persisted bool
}

func NewResultCache(entries EntryCache, digests *Digester) *ResultCache {
	return &ResultCache{entries: entries, digests: digests}
}

// Lookup returns the cached diagnostics of path when its content is
// unchanged and its stored digest matches the digest of cfg. The returned
// ticket is valid for Store either way.
func (c *ResultCache) Lookup(path string, cfg *config.Config) (Ticket, []diag.Diagnostic, bool, error) {
	digest, err := c.digests.Digest(cfg)
	if err != nil {
		return Ticket{}, nil, false, err
	}
	desc := c.entries.Describe(path)
	t := Ticket{Path: path, Digest: digest, desc: desc}
	if desc.NotFound || desc.Changed || !desc.HasEntry {
		return t, nil, false, nil
	}
	if desc.Entry.ConfigDigest != digest {
		return t, nil, false, nil
	}
	return t, desc.Entry.Diagnostics, true, nil
}

// Store records a clean result under the ticket's digest.
func (c *ResultCache) Store(t Ticket, diags []diag.Diagnostic) error {
	if len(diags) > 0 {
		return ErrDirtyResult
	}
	if t.desc.NotFound {
		return nil
	}
	c.mu.Lock()
	done := c.persisted
	c.mu.Unlock()
	if done {
		return ErrAlreadyPersisted
	}
	c.entries.Put(t.desc.Key, Entry{
		Signature:    t.desc.Signature,
		ConfigDigest: t.Digest,
	})
	return nil
}

// Evict removes any entry for path.
func (c *ResultCache) Evict(path string) {
	c.entries.Remove(cacheKey(path))
}

// Persist writes the cache once; later calls do nothing.
func (c *ResultCache) Persist() error {
	c.mu.Lock()
	if c.persisted {
		c.mu.Unlock()
		return nil
	}
	c.persisted = true
	c.mu.Unlock()
	return c.entries.Reconcile()
}
