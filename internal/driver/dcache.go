package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema version for the cached payload. Bump when the format or the
// generated assembly changes incompatibly.
const diskCacheSchemaVersion uint16 = 1

// Digest identifies a source text.
type Digest [sha256.Size]byte

// HashSource computes the cache key for a source text.
func HashSource(src string) Digest {
	return sha256.Sum256([]byte(src))
}

// DiskCache stores compiled assembly keyed by source digest, so
// rebuilding an unchanged file skips the pipeline entirely.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached compilation artifact.
type DiskPayload struct {
	Schema   uint16
	Assembly string
}

// OpenDiskCache initializes a disk cache at the standard user cache
// location, honoring XDG_CACHE_HOME.
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
	return filepath.Join(c.dir, "asm", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload. The write goes through a temp
// file and a rename, so readers never observe a partial entry.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
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
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload, reporting whether the key was present.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "asm"))
}

// Compiler is a Compile frontend with an optional disk cache.
type Compiler struct {
	cache *DiskCache
}

// NewCompiler wraps cache; a nil cache disables caching.
func NewCompiler(cache *DiskCache) *Compiler {
	return &Compiler{cache: cache}
}

// Build compiles src to assembly, consulting the cache first. A stale
// or unreadable cache entry is ignored, never fatal.
func (c *Compiler) Build(src string) (string, error) {
	key := HashSource(src)
	var payload DiskPayload
	if ok, err := c.cache.Get(key, &payload); err == nil && ok && payload.Schema == diskCacheSchemaVersion {
		return payload.Assembly, nil
	}

	asm, err := Compile(src)
	if err != nil {
		return "", err
	}
	_ = c.cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Assembly: asm})
	return asm, nil
}
