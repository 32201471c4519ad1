// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package graph implements a thin RDF-style triple store on top of
// k2tree: a subject/object dictionary shared across predicates, a
// predicate dictionary, and one k2tree.Tree per predicate recording
// which (subject, object) pairs hold under it.
package graph

import "github.com/sparsemat/k2tree/k2tree"

// Graph is a set of (subject, predicate, object) string triples,
// stored as one boolean matrix per predicate over a dictionary of
// dense integer ids shared by every subject and object.
//
// Graph has no internal locking, matching k2tree.Tree's single-writer/
// multi-reader discipline; a Graph shared across goroutines needs its
// own external synchronization.
type Graph struct {
	dict       map[string]uint
	dictMax    uint
	predicates map[string]int
	slices     []*k2tree.Tree
	k          uint
	width      uint // shared matrix_width once the first slice exists; 0 until then
}

// New returns an empty Graph whose predicate slices use branching
// factor k.
func New(k uint) *Graph {
	return &Graph{
		dict:       make(map[string]uint),
		predicates: make(map[string]int),
		k:          k,
	}
}

// intern returns s's dense id, allocating a fresh one (g.dictMax+1) if
// s has never been seen, and widening every existing predicate slice
// to cover it.
func (g *Graph) intern(s string) (uint, error) {
	if id, ok := g.dict[s]; ok {
		return id, nil
	}
	id := g.dictMax + 1
	if err := g.ensureWidth(id); err != nil {
		return 0, err
	}
	g.dict[s] = id
	g.dictMax = id
	return id, nil
}

// ensureWidth grows the shared matrix_width, and every existing
// predicate slice along with it, until it strictly exceeds minID.
func (g *Graph) ensureWidth(minID uint) error {
	if g.width == 0 {
		g.width = g.k * g.k * g.k
	}
	for g.width <= minID {
		for _, tr := range g.slices {
			if err := tr.GrowRoot(); err != nil {
				return err
			}
		}
		g.width *= g.k
	}
	return nil
}

// newSlice builds the K²-tree for a newly-seen predicate, already
// widened to the graph's current shared matrix_width.
func (g *Graph) newSlice() (*k2tree.Tree, error) {
	t, err := k2tree.New(g.k)
	if err != nil {
		return nil, err
	}
	if err := g.ensureWidth(g.dictMax); err != nil {
		return nil, err
	}
	for t.MatrixWidth() < g.width {
		if err := t.GrowRoot(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Insert records the triple (s, p, o), interning any of s, p, o not
// already in the graph. Interning a new subject or object widens every
// predicate slice in lockstep, so ids stay comparable across
// predicates.
func (g *Graph) Insert(s, p, o string) error {
	sid, err := g.intern(s)
	if err != nil {
		return err
	}
	oid, err := g.intern(o)
	if err != nil {
		return err
	}

	idx, ok := g.predicates[p]
	if !ok {
		tr, err := g.newSlice()
		if err != nil {
			return err
		}
		idx = len(g.slices)
		g.slices = append(g.slices, tr)
		g.predicates[p] = idx
	}

	return g.slices[idx].SetBit(sid, oid, true)
}

// Remove deletes the triple (s, p, o), if present. Unlike Insert, it
// never allocates: an s, p, or o the graph has never seen is reported
// as an error rather than silently creating a dictionary entry for a
// triple that, by definition, cannot already exist.
func (g *Graph) Remove(s, p, o string) error {
	sid, ok := g.dict[s]
	if !ok {
		return ErrUnknownSubject
	}
	oid, ok := g.dict[o]
	if !ok {
		return ErrUnknownSubject
	}
	idx, ok := g.predicates[p]
	if !ok {
		return ErrUnknownPredicate
	}
	return g.slices[idx].SetBit(sid, oid, false)
}

// Get reports whether (s, p, o) holds. An s, p, or o the graph has
// never seen reports an error rather than false, since "never seen"
// and "seen but not in this relation" are different answers.
func (g *Graph) Get(s, p, o string) (bool, error) {
	sid, ok := g.dict[s]
	if !ok {
		return false, ErrUnknownSubject
	}
	oid, ok := g.dict[o]
	if !ok {
		return false, ErrUnknownSubject
	}
	idx, ok := g.predicates[p]
	if !ok {
		return false, ErrUnknownPredicate
	}
	return g.slices[idx].GetBit(sid, oid), nil
}

// Predicates returns the set of predicates currently in the graph.
func (g *Graph) Predicates() []string {
	out := make([]string, 0, len(g.predicates))
	for p := range g.predicates {
		out = append(out, p)
	}
	return out
}

// Len returns the number of distinct subjects and objects interned so
// far.
func (g *Graph) Len() int {
	return len(g.dict)
}
