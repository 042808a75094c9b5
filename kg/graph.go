// SPDX-License-Identifier: MIT

package kg

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors.
var (
	// ErrEmptyEntity indicates an empty entity ID.
	ErrEmptyEntity = errors.New("kg: entity ID is empty")

	// ErrEntityNotFound indicates a reference to an unregistered entity.
	ErrEntityNotFound = errors.New("kg: entity not found")

	// ErrEmptyRelation indicates an empty relation label.
	ErrEmptyRelation = errors.New("kg: relation is empty")

	// ErrDuplicateTriple indicates a triple that is already stored.
	ErrDuplicateTriple = errors.New("kg: duplicate triple")

	// ErrNotFitted indicates a Model used before Fit.
	ErrNotFitted = errors.New("kg: model is not fitted")

	// ErrLengthMismatch indicates parallel arguments of different length.
	ErrLengthMismatch = errors.New("kg: length mismatch")

	// ErrBadK indicates k < 1 in a ranking metric.
	ErrBadK = errors.New("kg: k must be >= 1")
)

// Triple is one labelled, directed fact.
type Triple struct {
	Head     string
	Relation string
	Tail     string
}

// String renders "(head, relation, tail)".
func (t Triple) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Head, t.Relation, t.Tail)
}

// less orders triples by head, relation, tail.
func (t Triple) less(o Triple) bool {
	if t.Head != o.Head {
		return t.Head < o.Head
	}
	if t.Relation != o.Relation {
		return t.Relation < o.Relation
	}

	return t.Tail < o.Tail
}

// GraphOption configures a Graph at construction.
type GraphOption func(g *Graph)

// WithAutoEntities lets AddTriple register missing endpoints.
func WithAutoEntities() GraphOption {
	return func(g *Graph) { g.autoEntities = true }
}

// Graph is an in-memory knowledge graph.
type Graph struct {
	muEnt sync.RWMutex // guards entities, index
	muTri sync.RWMutex // guards triples, out

	autoEntities bool

	entities []string       // insertion order
	index    map[string]int // entity → position in entities

	triples map[Triple]struct{}
	// out[head][relation][tail]
	out map[string]map[string]map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		index:   make(map[string]int),
		triples: make(map[Triple]struct{}),
		out:     make(map[string]map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// AddEntity registers id (idempotent).
func (g *Graph) AddEntity(id string) error {
	if id == "" {
		return ErrEmptyEntity
	}
	g.muEnt.Lock()
	defer g.muEnt.Unlock()
	if _, ok := g.index[id]; ok {
		return nil
	}
	g.index[id] = len(g.entities)
	g.entities = append(g.entities, id)

	return nil
}

// HasEntity reports whether id is registered.
func (g *Graph) HasEntity(id string) bool {
	g.muEnt.RLock()
	defer g.muEnt.RUnlock()
	_, ok := g.index[id]

	return ok
}

// Index returns the insertion position of id.
func (g *Graph) Index(id string) (int, error) {
	g.muEnt.RLock()
	defer g.muEnt.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return 0, fmt.Errorf("Index(%q): %w", id, ErrEntityNotFound)
	}

	return i, nil
}

// Entities returns the entity IDs in insertion order.
func (g *Graph) Entities() []string {
	g.muEnt.RLock()
	defer g.muEnt.RUnlock()
	out := make([]string, len(g.entities))
	copy(out, g.entities)

	return out
}

// EntityCount returns the number of entities.
func (g *Graph) EntityCount() int {
	g.muEnt.RLock()
	defer g.muEnt.RUnlock()

	return len(g.entities)
}

// AddTriple stores t.
//
// Errors: ErrEmptyEntity, ErrEmptyRelation, ErrEntityNotFound (unless
// WithAutoEntities), ErrDuplicateTriple.
func (g *Graph) AddTriple(t Triple) error {
	if t.Head == "" || t.Tail == "" {
		return ErrEmptyEntity
	}
	if t.Relation == "" {
		return ErrEmptyRelation
	}
	for _, id := range []string{t.Head, t.Tail} {
		if g.autoEntities {
			if err := g.AddEntity(id); err != nil {
				return err
			}
		} else if !g.HasEntity(id) {
			return fmt.Errorf("AddTriple%s: %q: %w", t, id, ErrEntityNotFound)
		}
	}

	g.muTri.Lock()
	defer g.muTri.Unlock()
	if _, ok := g.triples[t]; ok {
		return fmt.Errorf("AddTriple%s: %w", t, ErrDuplicateTriple)
	}
	g.triples[t] = struct{}{}
	rels, ok := g.out[t.Head]
	if !ok {
		rels = make(map[string]map[string]struct{})
		g.out[t.Head] = rels
	}
	if rels[t.Relation] == nil {
		rels[t.Relation] = make(map[string]struct{})
	}
	rels[t.Relation][t.Tail] = struct{}{}

	return nil
}

// HasTriple reports whether t is stored.
func (g *Graph) HasTriple(t Triple) bool {
	g.muTri.RLock()
	defer g.muTri.RUnlock()
	_, ok := g.triples[t]

	return ok
}

// TripleCount returns the number of triples.
func (g *Graph) TripleCount() int {
	g.muTri.RLock()
	defer g.muTri.RUnlock()

	return len(g.triples)
}

// Triples returns all triples sorted by head, relation, tail.
func (g *Graph) Triples() []Triple {
	g.muTri.RLock()
	out := make([]Triple, 0, len(g.triples))
	for t := range g.triples {
		out = append(out, t)
	}
	g.muTri.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })

	return out
}

// Relations returns the distinct relation labels, sorted.
func (g *Graph) Relations() []string {
	g.muTri.RLock()
	seen := make(map[string]struct{})
	for t := range g.triples {
		seen[t.Relation] = struct{}{}
	}
	g.muTri.RUnlock()

	return sortedKeys(seen)
}

// Tails returns the sorted tails of (head, relation, ·).
func (g *Graph) Tails(head, relation string) []string {
	g.muTri.RLock()
	defer g.muTri.RUnlock()

	return sortedKeys(g.out[head][relation])
}

// Heads returns the sorted heads of (·, relation, tail).
func (g *Graph) Heads(relation, tail string) []string {
	g.muTri.RLock()
	seen := make(map[string]struct{})
	for t := range g.triples {
		if t.Relation == relation && t.Tail == tail {
			seen[t.Head] = struct{}{}
		}
	}
	g.muTri.RUnlock()

	return sortedKeys(seen)
}

// Clone returns a deep copy with the same options, entities and triples.
func (g *Graph) Clone() *Graph {
	g.muEnt.RLock()
	defer g.muEnt.RUnlock()
	g.muTri.RLock()
	defer g.muTri.RUnlock()

	c := NewGraph()
	c.autoEntities = g.autoEntities
	c.entities = append([]string(nil), g.entities...)
	for id, i := range g.index {
		c.index[id] = i
	}
	for t := range g.triples {
		c.triples[t] = struct{}{}
		if c.out[t.Head] == nil {
			c.out[t.Head] = make(map[string]map[string]struct{})
		}
		if c.out[t.Head][t.Relation] == nil {
			c.out[t.Head][t.Relation] = make(map[string]struct{})
		}
		c.out[t.Head][t.Relation][t.Tail] = struct{}{}
	}

	return c
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
