package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/safeng/decaf-sema/internal/diag"
)

// diskCacheSchemaVersion is bumped whenever diskPayload's shape changes, so
// a cache written by an older build is silently treated as a miss.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies one file's content, used as the cache key.
type Digest [32]byte

// HashBytes computes the cache key for a fixture's raw bytes.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// IsZero reports whether d was never assigned a real hash.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

func (d Digest) hex() string { return hex.EncodeToString(d[:]) }

// DiskCache persists, per file-content hash, the full list of diagnostics
// that content produced — SPEC_FULL.md §6's
// "--disk-cache" feature. It never changes analysis results; it only lets
// the batch driver skip re-checking a file whose content hasn't changed.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// diskPayload is what gets msgpack-encoded per cached file. diag.Diagnostic
// and diag.Note are plain structs of named basic types, so they encode
// directly — no separate wire-format mirror is needed the way the
// teacher's moduleToDiskPayload/diskPayloadToModule conversion needed one
// for project.ModuleMeta.
type diskPayload struct {
	Schema      uint16
	Diagnostics []diag.Diagnostic
}

// OpenDiskCache initializes the cache under the platform's standard cache
// directory, mirroring surge/internal/driver.OpenDiskCache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "results", key.hex()+".mp")
}

// Put writes items for key, atomically (temp file then rename) so a
// concurrent Get never observes a half-written cache entry.
func (c *DiskCache) Put(key Digest, items []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	payload := diskPayload{Schema: diskCacheSchemaVersion, Diagnostics: items}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the cached diagnostics for key, if present and of the
// current schema.
func (c *DiskCache) Get(key Digest) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return payload.Diagnostics, true, nil
}

// DropAll invalidates the entire cache by renaming it aside and deleting
// the renamed copy, the way surge/internal/driver.DiskCache.DropAll does.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// fillBagFromCache replays cached diagnostics into a fresh bag honoring
// the bag's own capacity limit.
func fillBagFromCache(items []diag.Diagnostic, max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, d := range items {
		bag.Add(d)
	}
	return bag
}
