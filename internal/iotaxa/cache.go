package iotaxa

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/gnames/gnfmt"
	"github.com/pristineseas/psdb/pkg/config"
)

// cacheFile stores parse results between runs, GOB-encoded. Parsing
// tens of thousands of names dominates build time; the lookup file
// changes rarely.
const cacheFile = "taxa-parse.gob"

// cacheEntry holds the cached parse result of one verbatim name.
type cacheEntry struct {
	NameID        string
	CanonicalName string
	ParseQuality  int
}

type parseCache struct {
	mu      sync.Mutex
	Entries map[string]cacheEntry
}

func (c *parseCache) get(name string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.Entries[name]
	return e, ok
}

func (c *parseCache) put(name string, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries[name] = e
}

func cachePath(homeDir string) string {
	return filepath.Join(config.CacheDir(homeDir), cacheFile)
}

func loadCache(homeDir string) (*parseCache, error) {
	res := &parseCache{Entries: make(map[string]cacheEntry)}

	data, err := os.ReadFile(cachePath(homeDir))
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return nil, CacheError(err)
	}

	enc := gnfmt.GNgob{}
	if err := enc.Decode(data, &res.Entries); err != nil {
		return nil, CacheError(err)
	}

	return res, nil
}

func saveCache(homeDir string, cache *parseCache) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	enc := gnfmt.GNgob{}
	data, err := enc.Encode(cache.Entries)
	if err != nil {
		return CacheError(err)
	}

	if err := os.WriteFile(
		cachePath(homeDir), data, 0644,
	); err != nil {
		return CacheError(err)
	}

	return nil
}
