// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRoundTrip(t *testing.T) {
	g := New(2)

	require.NoError(t, g.Insert("alice", "knows", "bob"))
	require.NoError(t, g.Insert("alice", "knows", "carol"))
	require.NoError(t, g.Insert("bob", "likes", "carol"))

	got, err := g.Get("alice", "knows", "bob")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = g.Get("alice", "knows", "carol")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = g.Get("bob", "likes", "carol")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = g.Get("alice", "likes", "bob")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = g.Get("bob", "knows", "alice")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestGetUnknownIdentifiers(t *testing.T) {
	g := New(2)
	require.NoError(t, g.Insert("alice", "knows", "bob"))

	_, err := g.Get("dave", "knows", "bob")
	assert.ErrorIs(t, err, ErrUnknownSubject)

	_, err = g.Get("alice", "knows", "erin")
	assert.ErrorIs(t, err, ErrUnknownSubject)

	_, err = g.Get("alice", "hates", "bob")
	assert.ErrorIs(t, err, ErrUnknownPredicate)
}

func TestRemove(t *testing.T) {
	g := New(2)
	require.NoError(t, g.Insert("alice", "knows", "bob"))

	require.NoError(t, g.Remove("alice", "knows", "bob"))

	got, err := g.Get("alice", "knows", "bob")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRemoveUnknownIdentifiers(t *testing.T) {
	g := New(2)
	require.NoError(t, g.Insert("alice", "knows", "bob"))

	assert.ErrorIs(t, g.Remove("dave", "knows", "bob"), ErrUnknownSubject)
	assert.ErrorIs(t, g.Remove("alice", "hates", "bob"), ErrUnknownPredicate)
}

// TestGrowsSharedIDSpace drives enough distinct subjects/objects
// through one predicate to force several widenings of the shared id
// space, forcing root-level growth of the shared matrix_width, then
// checks that
// every previously-inserted triple still reads back correctly and that
// a second predicate created afterwards is already wide enough to hold
// the existing ids.
func TestGrowsSharedIDSpace(t *testing.T) {
	g := New(2)

	const n = 40
	for i := 0; i < n; i++ {
		s := entity(i)
		o := entity(i + 1)
		require.NoError(t, g.Insert(s, "next", o))
	}

	for i := 0; i < n; i++ {
		s := entity(i)
		o := entity(i + 1)
		got, err := g.Get(s, "next", o)
		require.NoError(t, err)
		assert.True(t, got, "triple %d missing after growth", i)
	}

	require.NoError(t, g.Insert(entity(0), "late", entity(n)))
	got, err := g.Get(entity(0), "late", entity(n))
	require.NoError(t, err)
	assert.True(t, got)

	assert.ElementsMatch(t, []string{"next", "late"}, g.Predicates())
}

func entity(i int) string {
	return "e" + string(rune('A'+i%26)) + string(rune('0'+i/26))
}

func TestLen(t *testing.T) {
	g := New(2)
	assert.Equal(t, 0, g.Len())

	require.NoError(t, g.Insert("alice", "knows", "bob"))
	assert.Equal(t, 2, g.Len())

	require.NoError(t, g.Insert("alice", "knows", "carol"))
	assert.Equal(t, 3, g.Len())
}
