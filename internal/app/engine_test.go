package app

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pidro/internal/domain"
)

func newGame(t *testing.T, seed int64, cfg domain.Config) (*Engine, domain.GameState) {
	t.Helper()
	e := NewEngine(rand.New(rand.NewSource(seed)))
	s, err := e.NewGame(cfg)
	require.NoError(t, err)
	return e, s
}

func TestNewGameStopsAtBidding(t *testing.T) {
	_, s := newGame(t, 7, domain.DefaultConfig())

	assert.Equal(t, domain.PhaseBidding, s.Phase)
	require.True(t, s.Dealer.Valid())
	assert.Equal(t, s.Dealer.Next(), s.Turn)
	assert.Equal(t, domain.DeckSize, s.CardCount())
	for _, pos := range domain.Positions {
		assert.Len(t, s.Players[pos].Hand, domain.DefaultInitialHandSize)
	}
	assert.Len(t, s.Deck, domain.DeckSize-4*domain.DefaultInitialHandSize)

	first, ok := s.Events[0].(domain.DealerSelected)
	require.True(t, ok)
	assert.NotEmpty(t, first.Cuts)
	assert.Equal(t, s.Dealer, first.Dealer)
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.NewGame(domain.Config{InitialHandSize: 14})
	assert.Error(t, err)
}

func TestBiddingScenario(t *testing.T) {
	e, s := newGame(t, 11, domain.DefaultConfig())
	first := s.Dealer.Next()
	second := first.Next()
	third := second.Next()

	var err error
	s, err = e.ApplyAction(s, first, domain.PlaceBid{Amount: 7})
	require.NoError(t, err)
	s, err = e.ApplyAction(s, second, domain.PlaceBid{Amount: 8})
	require.NoError(t, err)
	s, err = e.ApplyAction(s, third, domain.PlaceBid{Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseBidding, s.Phase)
	s, err = e.ApplyAction(s, s.Dealer, domain.Pass{})
	require.NoError(t, err)

	assert.Equal(t, domain.PhaseDeclaring, s.Phase)
	assert.Equal(t, third, s.Turn)
	require.NotNil(t, s.HighestBid)
	assert.Equal(t, third, s.HighestBid.Position)
	assert.Equal(t, 10, s.HighestBid.Amount)
	assert.Equal(t, third.Team(), s.BiddingTeam)
	assert.Len(t, s.Bids, 4)
}

func TestRejectedActionLeavesStateUnchanged(t *testing.T) {
	e, s := newGame(t, 3, domain.DefaultConfig())
	before := s.Clone()
	turn := s.Turn

	tests := []struct {
		name   string
		pos    domain.Position
		action domain.Action
		want   error
	}{
		{name: "out of turn", pos: turn.Next(), action: domain.PlaceBid{Amount: 6}, want: domain.ErrNotYourTurn},
		{name: "unknown seat", pos: domain.Position(9), action: domain.Pass{}, want: domain.ErrInvalidPosition},
		{name: "bid too high", pos: turn, action: domain.PlaceBid{Amount: 15}, want: domain.ErrBidOutOfRange},
		{name: "wrong phase", pos: turn, action: domain.DeclareTrump{Suit: domain.SuitHearts}, want: domain.ErrInvalidAction},
		{name: "nil action", pos: turn, action: nil, want: domain.ErrInvalidAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ApplyAction(s, tt.pos, tt.action)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, got)
			assert.Equal(t, before, s)
		})
	}
}

func TestForcedDealerBid(t *testing.T) {
	e, s := newGame(t, 5, domain.DefaultConfig())
	var err error
	for i := 0; i < 3; i++ {
		s, err = e.ApplyAction(s, s.Turn, domain.Pass{})
		require.NoError(t, err)
	}
	require.Equal(t, s.Dealer, s.Turn)

	_, err = e.ApplyAction(s, s.Dealer, domain.Pass{})
	require.ErrorIs(t, err, domain.ErrDealerMustBid)

	legal := LegalActions(s, s.Dealer)
	require.NotEmpty(t, legal)
	for _, a := range legal {
		assert.NotEqual(t, domain.ActionPass, a.Kind())
	}

	s, err = e.ApplyAction(s, s.Dealer, domain.PlaceBid{Amount: 6})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDeclaring, s.Phase)
	assert.Equal(t, s.Dealer, s.Turn)
}

func TestDeclareRunsRedeal(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.AutoRob = true
	e, s := newGame(t, 21, cfg)
	var err error
	s, err = e.ApplyAction(s, s.Turn, domain.PlaceBid{Amount: 6})
	require.NoError(t, err)
	for s.Phase == domain.PhaseBidding {
		s, err = e.ApplyAction(s, s.Turn, domain.Pass{})
		require.NoError(t, err)
	}
	bidder := s.Turn
	s, err = e.ApplyAction(s, bidder, domain.DeclareTrump{Suit: domain.SuitClubs})
	require.NoError(t, err)

	assert.Equal(t, domain.PhasePlaying, s.Phase)
	assert.Equal(t, domain.SuitClubs, s.Trump)
	assert.Empty(t, s.Deck)
	assert.Equal(t, domain.DeckSize, s.CardCount())
	for _, c := range s.Discard {
		// discards hold non-trump, except what a rob let go
		if domain.IsTrump(c, s.Trump) {
			assert.True(t, containsRobDiscard(s, c), "trump %s discarded outside a rob", c)
		}
	}
	for _, pos := range domain.Positions {
		p := s.Players[pos]
		if !p.Eliminated {
			assert.Positive(t, domain.CountTrump(p.Hand, s.Trump))
		}
	}
}

func containsRobDiscard(s domain.GameState, c domain.Card) bool {
	for _, ev := range s.Events {
		if rob, ok := ev.(domain.DealerRobbedPack); ok && domain.ContainsCard(rob.Discarded, c) {
			return true
		}
	}
	return false
}
