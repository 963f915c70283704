// Package cache implements the translation result cache: an in-memory map
// keyed by target language and source text, snapshotted wholesale to a
// durable blob store under a single namespaced key.
//
// Persistence is best effort. A failed write or a corrupted snapshot
// never affects the in-memory path — the cache degrades to memory-only.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// BlobKey is the namespaced durable key holding the flattened
// "lang:sourceText" → translation mapping.
const BlobKey = "lingoroute:translations"

// Snapshotter is the durable side of the cache (implemented by
// store.Store). A nil Snapshotter leaves the cache memory-only.
type Snapshotter interface {
	LoadBlob(ctx context.Context, name string) (string, bool, error)
	SaveBlob(ctx context.Context, name, value string) error
	DeleteBlob(ctx context.Context, name string) error
}

// Key builds the cache key for a target language and source text.
func Key(targetLang, text string) string {
	return targetLang + ":" + text
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]string
	store   Snapshotter
	logger  *slog.Logger
}

func New(store Snapshotter, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]string),
		store:   store,
		logger:  logger,
	}
}

// Load reads the durable snapshot into memory. Missing or corrupted
// snapshots leave the cache empty; neither is an error for the caller.
func (c *Cache) Load(ctx context.Context) {
	if c.store == nil {
		return
	}

	blob, found, err := c.store.LoadBlob(ctx, BlobKey)
	if err != nil || !found {
		if err != nil {
			c.logger.Debug("cache snapshot unavailable", "error", err)
		}
		return
	}

	entries := make(map[string]string)
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		c.logger.Debug("cache snapshot corrupted, starting empty", "error", err)
		return
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

// Get returns the cached translation for (targetLang, text), if any.
func (c *Cache) Get(targetLang, text string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[Key(targetLang, text)]
	return v, ok
}

// Put stores a translation and rewrites the durable snapshot wholesale.
// A persistence failure is swallowed: the in-memory entry stands.
func (c *Cache) Put(ctx context.Context, targetLang, text, translated string) {
	c.mu.Lock()
	c.entries[Key(targetLang, text)] = translated
	blob, err := json.Marshal(c.entries)
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err != nil {
		c.logger.Debug("cache snapshot marshal failed", "error", err)
		return
	}
	if err := c.store.SaveBlob(ctx, BlobKey, string(blob)); err != nil {
		c.logger.Debug("cache snapshot write failed", "error", err)
	}
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Entries returns a copy of the cached mapping.
func (c *Cache) Entries() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Clear empties the cache and removes the durable snapshot.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]string)
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.DeleteBlob(ctx, BlobKey)
}
