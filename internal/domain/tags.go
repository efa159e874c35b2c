package domain

import (
	"sort"
	"strings"
	"sync"
)

// TagRegistry is the process-wide tag vocabulary. It is an explicit service
// object passed by reference to whichever component needs it; there is no
// ambient global set. Tags are stored trimmed and lower-cased.
type TagRegistry struct {
	mu   sync.RWMutex
	tags map[string]struct{}
}

// NewTagRegistry creates an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{tags: make(map[string]struct{})}
}

// Add records one or more tags. Blank tags are ignored.
func (r *TagRegistry) Add(tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tag := range tags {
		tag = normalizeTag(tag)
		if tag == "" {
			continue
		}
		r.tags[tag] = struct{}{}
	}
}

// Remove drops a tag from the vocabulary.
func (r *TagRegistry) Remove(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tags, normalizeTag(tag))
}

// Contains reports whether the tag is registered.
func (r *TagRegistry) Contains(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tags[normalizeTag(tag)]
	return ok
}

// All returns the registered tags in sorted order.
func (r *TagRegistry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		all = append(all, tag)
	}
	sort.Strings(all)
	return all
}

// Len returns the number of registered tags.
func (r *TagRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tags)
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
