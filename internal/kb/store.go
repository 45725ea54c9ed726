// Copyright Sigmanaut Labs, 2026. All rights reserved.

// Package kb implements the in-memory chunk index over the ErgoScript
// knowledge base content: load, exact lookup by id, and filter by tag.
// The store is built once at startup and read-only afterward, so concurrent
// readers need no locking.
package kb

import (
	"fmt"
	"sort"

	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

// NotFoundError reports a lookup for a chunk id that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chunk %q not found", e.ID)
}

// ValidationError reports source content rejected at load time, naming the
// offending chunk id.
type ValidationError struct {
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid chunk %q: %s", e.ID, e.Reason)
}

// Store is the chunk index. Insertion order is preserved for Filter and
// Chunks; ids are unique across the store.
type Store struct {
	version string
	order   []string
	byID    map[string]types.Chunk
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]types.Chunk)}
}

// FromDocument builds a store from a decoded knowledge base document,
// validating id uniqueness.
func FromDocument(doc types.KnowledgeBase) (*Store, error) {
	s := NewStore()
	s.version = doc.Version
	for _, c := range doc.Chunks {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts a chunk. A duplicate or empty id fails with *ValidationError.
// Add is a load-time operation; once a store is handed to readers it is
// never mutated.
func (s *Store) Add(c types.Chunk) error {
	if c.ID == "" {
		return &ValidationError{ID: c.ID, Reason: "empty id"}
	}
	if _, dup := s.byID[c.ID]; dup {
		return &ValidationError{ID: c.ID, Reason: "duplicate id"}
	}
	s.order = append(s.order, c.ID)
	s.byID[c.ID] = c
	return nil
}

// Get returns the chunk with the given id, or *NotFoundError when absent.
func (s *Store) Get(id string) (types.Chunk, error) {
	c, ok := s.byID[id]
	if !ok {
		return types.Chunk{}, &NotFoundError{ID: id}
	}
	return c, nil
}

// Filter returns all chunks whose tag set intersects tags, in insertion
// order. An empty tag set returns nil rather than every chunk.
func (s *Store) Filter(tags []string) []types.Chunk {
	if len(tags) == 0 {
		return nil
	}
	var out []types.Chunk
	for _, id := range s.order {
		if c := s.byID[id]; c.HasAnyTag(tags) {
			out = append(out, c)
		}
	}
	return out
}

// Chunks returns every chunk in insertion order.
func (s *Store) Chunks() []types.Chunk {
	out := make([]types.Chunk, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// IDs returns the chunk ids in insertion order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Tags returns the sorted union of all tags in the store.
func (s *Store) Tags() []string {
	seen := make(map[string]bool)
	for _, c := range s.byID {
		for _, t := range c.Tags {
			seen[t] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of chunks.
func (s *Store) Len() int {
	return len(s.order)
}

// Version returns the content schema revision from the source document.
func (s *Store) Version() string {
	return s.version
}

// Document converts the store back into the serializable document shape,
// preserving insertion order.
func (s *Store) Document() types.KnowledgeBase {
	return types.KnowledgeBase{
		Version: s.version,
		Chunks:  s.Chunks(),
	}
}
