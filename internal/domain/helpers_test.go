package domain

import (
	"reflect"
	"testing"
)

func mustApply(t *testing.T, s *GameState, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if err := s.Apply(ev); err != nil {
			t.Fatalf("Apply(%s) error = %v", ev.Kind(), err)
		}
	}
}

// dealtState returns a game in bidding after an unshuffled deal.
func dealtState(t *testing.T, dealer Position) GameState {
	t.Helper()
	s := NewGameState(DefaultConfig())
	mustApply(t, &s, DealerSelected{Dealer: dealer})
	ev, err := DealHands(&s, s.Deck)
	if err != nil {
		t.Fatalf("DealHands() error = %v", err)
	}
	mustApply(t, &s, ev)
	return s
}

// playingState builds a state at the start of a trick with the given hands.
func playingState(trump Suit, leader Position, hands [4]string) GameState {
	s := NewGameState(DefaultConfig())
	s.Phase = PhasePlaying
	s.Dealer = leader.Next().Next().Next()
	s.Trump = trump
	s.HighestBid = &Bid{Position: leader, Amount: 6}
	s.BiddingTeam = leader.Team()
	s.Deck = nil
	s.SecondDealt = true
	for _, pos := range Positions {
		s.Players[pos].Hand = MustParseCards(hands[pos])
	}
	s.TrickNumber = 1
	s.CurrentTrick = &Trick{Number: 1, Leader: leader, Winner: NoPosition}
	s.Turn = leader
	return s
}

func TestRemoveCards(t *testing.T) {
	hand := MustParseCards("AH KH KH 5D")
	got := RemoveCards(hand, MustParseCards("KH 5D"))
	if want := MustParseCards("AH KH"); !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveCards() = %v, want %v", got, want)
	}
	if len(hand) != 4 {
		t.Fatalf("RemoveCards modified its input: %v", hand)
	}
}

func TestHoldsAll(t *testing.T) {
	hand := MustParseCards("AH KH 5D")
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "subset", want: "AH 5D", ok: true},
		{name: "empty", want: "", ok: true},
		{name: "missing card", want: "QH", ok: false},
		{name: "multiplicity", want: "AH AH", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoldsAll(hand, MustParseCards(tt.want)); got != tt.ok {
				t.Fatalf("HoldsAll(%s) = %v, want %v", tt.want, got, tt.ok)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := dealtState(t, North)
	c := s.Clone()
	if !reflect.DeepEqual(s, c) {
		t.Fatalf("clone differs from source")
	}
	c.Players[East].Hand[0] = Card{Rank: RankAce, Suit: SuitSpades}
	c.Deck[0] = Card{Rank: RankTwo, Suit: SuitClubs}
	if reflect.DeepEqual(s.Players[East].Hand, c.Players[East].Hand) {
		t.Fatalf("clone shares hand storage with source")
	}
	if reflect.DeepEqual(s.Deck, c.Deck) {
		t.Fatalf("clone shares deck storage with source")
	}
}
