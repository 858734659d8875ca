package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"sift/internal/diag"
)

// Current schema version - increment when the persisted layout changes.
const schemaVersion uint16 = 1

// Strategy selects how file changes are detected.
type Strategy uint8

const (
	// StrategyMetadata compares size and modification time.
	StrategyMetadata Strategy = iota
	// StrategyContent compares a sha256 of the file bytes.
	StrategyContent
)

func (s Strategy) String() string {
	if s == StrategyContent {
		return "content"
	}
	return "metadata"
}

// ParseStrategy converts a string to Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "metadata":
		return StrategyMetadata, nil
	case "content":
		return StrategyContent, nil
	}
	return StrategyMetadata, fmt.Errorf("invalid cache strategy: %q (expected: metadata|content)", s)
}

// Signature identifies a version of a file's bytes.
type Signature struct {
	Size    int64
	ModTime int64 // unix nanoseconds
	Hash    string
}

// Entry is what is remembered about one file.
type Entry struct {
	Signature    Signature
	ConfigDigest string
	Diagnostics  []diag.Diagnostic
}

// Descriptor is the state of a file relative to the persisted cache.
type Descriptor struct {
	Key       string
	Signature Signature
	// Changed is set when the file differs from the persisted signature or
	// has no persisted entry.
	Changed  bool
	NotFound bool
	// Entry is the persisted entry, valid when HasEntry is set.
	Entry    Entry
	HasEntry bool
}

// EntryCache tracks per-file content signatures and payloads across runs.
type EntryCache interface {
	Describe(path string) Descriptor
	Get(key string) (Entry, bool)
	Put(key string, e Entry)
	Remove(key string)
	Reconcile() error
}

type diskFile struct {
	Schema   uint16
	Strategy uint8
	Entries  map[string]Entry
}

// FileEntryCache is the msgpack-backed EntryCache. Thread-safe for
// concurrent access; file system reads happen outside the lock.
type FileEntryCache struct {
	path     string
	strategy Strategy
	loadErr  error

	mu        sync.RWMutex
	persisted map[string]Entry
	current   map[string]Entry
}

// OpenEntryCache loads the cache file at path. A missing, unreadable or
// corrupt file yields an empty cache; the reason is kept in LoadError.
func OpenEntryCache(path string, strategy Strategy) *FileEntryCache {
	c := &FileEntryCache{
		path:      path,
		strategy:  strategy,
		persisted: make(map[string]Entry),
		current:   make(map[string]Entry),
	}
	entries, err := readDiskFile(path, strategy)
	if err != nil {
		c.loadErr = err
		return c
	}
	for k, e := range entries {
		c.persisted[k] = e
		c.current[k] = e
	}
	return c
}

func readDiskFile(path string, strategy Strategy) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var df diskFile
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&df); err != nil {
		return nil, fmt.Errorf("corrupt cache file %s: %w", path, err)
	}
	if df.Schema != schemaVersion || Strategy(df.Strategy) != strategy {
		return nil, nil
	}
	return df.Entries, nil
}

// LoadError reports why a persisted cache was discarded, if it was.
func (c *FileEntryCache) LoadError() error {
	return c.loadErr
}

// Path returns the cache file location.
func (c *FileEntryCache) Path() string {
	return c.path
}

func (c *FileEntryCache) Describe(path string) Descriptor {
	key := cacheKey(path)
	desc := Descriptor{Key: key}

	sig, err := c.signature(key)
	if err != nil {
		desc.NotFound = true
		desc.Changed = true
	} else {
		desc.Signature = sig
	}

	c.mu.RLock()
	prev, ok := c.persisted[key]
	c.mu.RUnlock()
	if ok {
		desc.Entry, desc.HasEntry = prev, true
	}
	if !desc.NotFound {
		desc.Changed = !ok || !c.same(prev.Signature, sig)
	}
	return desc
}

func (c *FileEntryCache) signature(path string) (Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Signature{}, err
	}
	sig := Signature{Size: info.Size(), ModTime: info.ModTime().UnixNano()}
	if c.strategy == StrategyContent {
		f, err := os.Open(path)
		if err != nil {
			return Signature{}, err
		}
		defer f.Close()
		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return Signature{}, err
		}
		sig.Hash = hex.EncodeToString(h.Sum(nil))
	}
	return sig, nil
}

func (c *FileEntryCache) same(a, b Signature) bool {
	if c.strategy == StrategyContent {
		return a.Hash != "" && a.Hash == b.Hash
	}
	return a.Size == b.Size && a.ModTime == b.ModTime
}

func (c *FileEntryCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.current[key]
	return e, ok
}

func (c *FileEntryCache) Put(key string, e Entry) {
	c.mu.Lock()
	c.current[key] = e
	c.mu.Unlock()
}

func (c *FileEntryCache) Remove(key string) {
	c.mu.Lock()
	delete(c.current, key)
	c.mu.Unlock()
}

// Reconcile drops entries of files that no longer exist and writes the
// cache file atomically.
func (c *FileEntryCache) Reconcile() error {
	c.mu.RLock()
	snapshot := make(map[string]Entry, len(c.current))
	for k, e := range c.current {
		snapshot[k] = e
	}
	c.mu.RUnlock()

	for k := range snapshot {
		if _, err := os.Stat(k); err != nil {
			delete(snapshot, k)
		}
	}

	df := diskFile{Schema: schemaVersion, Strategy: uint8(c.strategy), Entries: snapshot}
	return writeAtomic(c.path, &df)
}

func writeAtomic(path string, df *diskFile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".siftcache-tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	enc := msgpack.NewEncoder(f)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(df); err != nil {
		f.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
