package schemadoc

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
)

// DefaultRegistrySize bounds how many compiled schemas a Registry keeps.
const DefaultRegistrySize = 64

// Registry caches compiled schemas by document path so hot validation paths
// skip re-reading and re-compiling. Eviction is LRU.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *tradeai.Schema]
}

// NewRegistry builds a registry holding up to size compiled schemas.
// Non-positive sizes fall back to DefaultRegistrySize.
func NewRegistry(size int) (*Registry, error) {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	c, err := lru.New[string, *tradeai.Schema](size)
	if err != nil {
		return nil, fmt.Errorf("schemadoc: registry: %w", err)
	}
	return &Registry{cache: c}, nil
}

// Get returns the compiled schema for the document at path, loading and
// compiling it on first use.
func (r *Registry) Get(path string) (*tradeai.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache.Get(path); ok {
		return s, nil
	}
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	s, err := doc.Compile()
	if err != nil {
		return nil, err
	}
	r.cache.Add(path, s)
	return s, nil
}

// Put registers a pre-compiled schema under a name, bypassing disk.
func (r *Registry) Put(name string, s *tradeai.Schema) {
	r.mu.Lock()
	r.cache.Add(name, s)
	r.mu.Unlock()
}

// Invalidate drops a cached schema, forcing a reload on next Get.
func (r *Registry) Invalidate(path string) {
	r.mu.Lock()
	r.cache.Remove(path)
	r.mu.Unlock()
}

// Len reports how many schemas are cached.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}
