package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pidro/internal/domain"
)

func TestMoveCache(t *testing.T) {
	e, s := newGame(t, 17, domain.DefaultConfig())
	cache := NewMoveCache(8)

	want := LegalActions(s, s.Turn)
	got := cache.LegalActions(s, s.Turn)
	assert.Equal(t, want, got)
	got = cache.LegalActions(s, s.Turn)
	assert.Equal(t, want, got)

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	next, err := e.ApplyAction(s, s.Turn, domain.PlaceBid{Amount: 9})
	require.NoError(t, err)
	assert.Equal(t, LegalActions(next, next.Turn), cache.LegalActions(next, next.Turn))
	assert.Equal(t, 2, cache.Len())
}

func TestMoveCacheReturnsCopies(t *testing.T) {
	_, s := newGame(t, 17, domain.DefaultConfig())
	cache := NewMoveCache(0)
	first := cache.LegalActions(s, s.Turn)
	require.NotEmpty(t, first)
	first[0] = domain.PlaceBid{Amount: 99}
	assert.NotEqual(t, first[0], cache.LegalActions(s, s.Turn)[0])
}

func TestMoveCacheEvictsWhenFull(t *testing.T) {
	_, s := newGame(t, 17, domain.DefaultConfig())
	cache := NewMoveCache(2)
	for _, pos := range domain.Positions {
		cache.LegalActions(s, pos)
	}
	assert.LessOrEqual(t, cache.Len(), 2)
}

func TestStateKey(t *testing.T) {
	e, s := newGame(t, 23, domain.DefaultConfig())
	assert.Equal(t, StateKey(&s, domain.North), StateKey(&s, domain.North))
	assert.NotEqual(t, StateKey(&s, domain.North), StateKey(&s, domain.East))

	clone := s.Clone()
	assert.Equal(t, StateKey(&s, s.Turn), StateKey(&clone, s.Turn))

	next, err := e.ApplyAction(s, s.Turn, domain.Pass{})
	require.NoError(t, err)
	assert.NotEqual(t, StateKey(&s, s.Turn), StateKey(&next, s.Turn))
}
