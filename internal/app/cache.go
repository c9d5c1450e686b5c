package app

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"pidro/internal/domain"
)

// MoveCache memoizes LegalActions by a canonical hash of (state, seat). It is owned by
// the caller and safe for concurrent use; the engine never consults it.
type MoveCache struct {
	mu      sync.Mutex
	limit   int
	entries map[uint64][]domain.Action
	hits    uint64
	misses  uint64
}

// NewMoveCache returns a cache holding at most limit entries. When full it is cleared.
func NewMoveCache(limit int) *MoveCache {
	if limit <= 0 {
		limit = DefaultMoveCacheSize
	}
	return &MoveCache{limit: limit, entries: make(map[uint64][]domain.Action, limit)}
}

// LegalActions returns the cached action list for (s, pos), computing it on a miss.
func (c *MoveCache) LegalActions(s domain.GameState, pos domain.Position) []domain.Action {
	key := StateKey(&s, pos)

	c.mu.Lock()
	if actions, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return append([]domain.Action(nil), actions...)
	}
	c.misses++
	c.mu.Unlock()

	actions := LegalActions(s, pos)

	c.mu.Lock()
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	c.entries[key] = actions
	c.mu.Unlock()
	return append([]domain.Action(nil), actions...)
}

// Stats reports cache hits and misses.
func (c *MoveCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached entries.
func (c *MoveCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StateKey hashes the parts of a state that decide legal actions, plus the seat asking.
func StateKey(s *domain.GameState, pos domain.Position) uint64 {
	h := stateHasher{d: xxhash.New()}
	h.writeInt(int(pos))
	h.writeString(string(s.Phase))
	h.writeInt(int(s.Turn))
	h.writeInt(int(s.Dealer))
	h.writeInt(int(s.Trump))
	h.writeInt(s.Config.MinBid)
	h.writeInt(s.Config.MaxBid)
	h.writeInt(s.Config.FinalHandSize)
	h.writeInt(len(s.Bids))
	for _, b := range s.Bids {
		h.writeInt(int(b.Position))
		h.writeInt(b.Amount)
		h.writeBool(b.Pass)
	}
	if s.HighestBid != nil {
		h.writeInt(int(s.HighestBid.Position))
		h.writeInt(s.HighestBid.Amount)
	} else {
		h.writeInt(-1)
	}
	h.writeBool(s.SecondDealt)
	h.writeCards(s.Deck)
	for i := range s.Players {
		p := &s.Players[i]
		h.writeBool(p.Eliminated)
		h.writeCards(p.Hand)
	}
	if s.CurrentTrick != nil {
		h.writeInt(int(s.CurrentTrick.Leader))
		h.writeInt(len(s.CurrentTrick.Plays))
		for _, p := range s.CurrentTrick.Plays {
			h.writeInt(int(p.Position))
			h.writeCard(p.Card)
		}
	} else {
		h.writeInt(-1)
	}
	return h.d.Sum64()
}

type stateHasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *stateHasher) writeInt(v int) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.d.Write(h.buf[:])
}

func (h *stateHasher) writeBool(v bool) {
	if v {
		h.writeInt(1)
		return
	}
	h.writeInt(0)
}

func (h *stateHasher) writeString(v string) {
	h.writeInt(len(v))
	_, _ = h.d.WriteString(v)
}

func (h *stateHasher) writeCard(c domain.Card) {
	h.writeInt(c.Rank<<4 | int(c.Suit))
}

func (h *stateHasher) writeCards(cards []domain.Card) {
	h.writeInt(len(cards))
	for _, c := range cards {
		h.writeCard(c)
	}
}
