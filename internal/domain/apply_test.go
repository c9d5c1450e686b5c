package domain

import (
	"errors"
	"reflect"
	"testing"
)

func act(t *testing.T, s *GameState, pos Position, a Action) {
	t.Helper()
	if err := Authorize(s, pos); err != nil {
		t.Fatalf("%s by %s: %v", a.Kind(), pos, err)
	}
	ev, err := ActionEvent(s, pos, a)
	if err != nil {
		t.Fatalf("%s by %s: %v", a.Kind(), pos, err)
	}
	mustApply(t, s, ev)
	settle(t, s)
	if got := s.CardCount(); got != DeckSize {
		t.Fatalf("after %s by %s: card count = %d", a.Kind(), pos, got)
	}
}

func TestUnshuffledHand(t *testing.T) {
	s := dealtState(t, North)
	if s.Phase != PhaseBidding || s.Turn != East {
		t.Fatalf("after deal: phase %s turn %s", s.Phase, s.Turn)
	}

	act(t, &s, East, PlaceBid{Amount: 6})
	act(t, &s, South, Pass{})
	act(t, &s, West, Pass{})
	act(t, &s, North, Pass{})
	if s.Phase != PhaseDeclaring || s.Turn != East {
		t.Fatalf("after bidding: phase %s turn %s", s.Phase, s.Turn)
	}

	act(t, &s, East, DeclareTrump{Suit: SuitHearts})
	if s.Phase != PhaseSecondDeal || !RobPending(&s) || s.Turn != North {
		t.Fatalf("after declaring: phase %s turn %s", s.Phase, s.Turn)
	}
	if want := MustParseCards("2H 3H 4H AH QC KC"); !reflect.DeepEqual(s.Players[East].Hand, want) {
		t.Fatalf("east hand = %v, want %v", s.Players[East].Hand, want)
	}
	if len(s.Deck) != 9 {
		t.Fatalf("deck = %d cards, want 9", len(s.Deck))
	}

	pool := RobPool(&s)
	kept := SelectRobHand(pool, s.Trump, RobSize(&s, pool))
	if want := MustParseCards("JH KH QH AS KS QS"); !reflect.DeepEqual(kept, want) {
		t.Fatalf("rob heuristic = %v, want %v", kept, want)
	}
	act(t, &s, North, SelectHand{Cards: kept})
	if s.Phase != PhasePlaying || s.Turn != East {
		t.Fatalf("after rob: phase %s turn %s", s.Phase, s.Turn)
	}
	for _, pos := range Positions {
		if len(s.Players[pos].Hand) != DefaultFinalHandSize {
			t.Fatalf("%s holds %d cards", pos, len(s.Players[pos].Hand))
		}
	}

	act(t, &s, East, PlayCard{Card: MustParseCards("AH")[0]})
	act(t, &s, South, PlayCard{Card: MustParseCards("7H")[0]})
	act(t, &s, West, PlayCard{Card: MustParseCards("TH")[0]})
	act(t, &s, North, PlayCard{Card: MustParseCards("KH")[0]})
	if len(s.Tricks) != 1 || s.Tricks[0].Winner != East || s.Tricks[0].Points != 2 {
		t.Fatalf("trick one = %+v", s.Tricks)
	}
	if s.HandPoints[TeamEastWest] != 2 || s.Turn != East {
		t.Fatalf("hand points %v turn %s", s.HandPoints, s.Turn)
	}
}

func TestApplyEventLeavesSourceOnError(t *testing.T) {
	s := dealtState(t, North)
	before := s.Clone()
	tests := []struct {
		name string
		ev   Event
	}{
		{name: "wrong phase", ev: TrumpDeclared{Position: East, Suit: SuitHearts}},
		{name: "premature close", ev: BiddingComplete{Winner: East, Amount: 6}},
		{name: "out of range", ev: BidMade{Position: East, Amount: 20}},
		{name: "nil", ev: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEvent(s, tt.ev)
			if err == nil {
				t.Fatalf("ApplyEvent() succeeded")
			}
			if !reflect.DeepEqual(got, before) || !reflect.DeepEqual(s, before) {
				t.Fatalf("rejected event changed state")
			}
		})
	}
}

func TestEventLogRoundTrip(t *testing.T) {
	s := dealtState(t, North)
	mustApply(t, &s, BidMade{Position: East, Amount: 9}, PlayerPassed{Position: South})
	data, err := MarshalEvents(s.Events)
	if err != nil {
		t.Fatalf("MarshalEvents() error = %v", err)
	}
	events, err := UnmarshalEvents(data)
	if err != nil {
		t.Fatalf("UnmarshalEvents() error = %v", err)
	}

	replayed := NewGameState(DefaultConfig())
	mustApply(t, &replayed, events...)
	if replayed.Phase != s.Phase || replayed.Turn != s.Turn || *replayed.HighestBid != *s.HighestBid {
		t.Fatalf("decoded log replays to a different state")
	}
	if !reflect.DeepEqual(replayed.Players, s.Players) {
		t.Fatalf("decoded log replays to different hands")
	}

	if _, err := UnmarshalEvents([]byte(`[{"kind":"shuffled","data":{}}]`)); err == nil {
		t.Fatalf("unknown kind should fail")
	}
}

func TestApplyRejectsUnknownDealer(t *testing.T) {
	s := NewGameState(DefaultConfig())
	_, err := ApplyEvent(s, DealerSelected{Dealer: NoPosition})
	if !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("ApplyEvent() error = %v, want ErrInvalidPosition", err)
	}
}
