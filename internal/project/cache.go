package project

import (
	"fmt"
	"sync"
)

// Token orders list requests when ordered reloads are enabled.
type Token uint64

// Cache is the authoritative local copy of the project list.
type Cache struct {
	mu        sync.RWMutex
	projects  []Project
	issued    Token
	committed Token
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// ReplaceAll overwrites the whole collection, keeping server order.
// Later records repeating an ID already seen are dropped so IDs stay unique.
// Returns the number of dropped records.
func (c *Cache) ReplaceAll(list []Project) int {
	next, dropped := dedupe(list)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = next
	return dropped
}

// Begin hands out a token for a list request about to be issued.
func (c *Cache) Begin() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Commit replaces the collection with the response for token, unless a
// response for a newer token has already been committed.
func (c *Cache) Commit(token Token, list []Project) bool {
	next, _ := dedupe(list)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token <= c.committed {
		return false
	}
	c.committed = token
	c.projects = next
	return true
}

// Current returns a copy of the collection in server order.
func (c *Cache) Current() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Len returns the number of cached projects.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.projects)
}

// Find returns the cached project with the given ID.
func (c *Cache) Find(id ID) (Project, error) {
	if id == "" {
		return Project{}, ErrEmptyProjectID
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

func dedupe(list []Project) ([]Project, int) {
	out := make([]Project, 0, len(list))
	seen := make(map[ID]struct{}, len(list))
	dropped := 0
	for _, p := range list {
		if _, ok := seen[p.ID]; ok {
			dropped++
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, dropped
}
