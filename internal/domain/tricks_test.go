package domain

import (
	"errors"
	"testing"
)

// settle applies automatic events while the state is ready, stopping at scoring.
func settle(t *testing.T, s *GameState) {
	t.Helper()
	for i := 0; i < 64 && s.Phase != PhaseScoring && Ready(s); i++ {
		events, err := SettleEvents(s)
		if err != nil {
			t.Fatalf("SettleEvents() error = %v", err)
		}
		if len(events) == 0 {
			return
		}
		mustApply(t, s, events...)
	}
}

func play(t *testing.T, s *GameState, pos Position, card string) {
	t.Helper()
	if err := Authorize(s, pos); err != nil {
		t.Fatalf("Authorize(%s) error = %v", pos, err)
	}
	ev, err := ActionEvent(s, pos, PlayCard{Card: MustParseCards(card)[0]})
	if err != nil {
		t.Fatalf("play %s by %s: %v", card, pos, err)
	}
	mustApply(t, s, ev)
	settle(t, s)
}

func TestTrickWinnerAndPoints(t *testing.T) {
	s := playingState(SuitHearts, North, [4]string{
		North: "AH 2H",
		East:  "KH 3H",
		South: "5D 4H",
		West:  "9H 6H",
	})
	play(t, &s, North, "AH")
	play(t, &s, East, "KH")
	play(t, &s, South, "5D")
	play(t, &s, West, "9H")

	if len(s.Tricks) != 1 {
		t.Fatalf("tricks = %d, want 1", len(s.Tricks))
	}
	trick := s.Tricks[0]
	if trick.Winner != North || trick.Points != 6 {
		t.Fatalf("trick won by %s for %d, want north for 6", trick.Winner, trick.Points)
	}
	if s.HandPoints[TeamNorthSouth] != 6 || s.Players[North].TricksWon != 1 {
		t.Fatalf("hand points = %v, north tricks = %d", s.HandPoints, s.Players[North].TricksWon)
	}
	if s.CurrentTrick.Number != 2 || s.CurrentTrick.Leader != North || s.Turn != North {
		t.Fatalf("next trick = %+v, turn %s", s.CurrentTrick, s.Turn)
	}
}

func TestResolveTrick(t *testing.T) {
	tests := []struct {
		name   string
		plays  string
		trump  Suit
		winner Position
		points int
	}{
		{name: "ace beats all", plays: "AH KH 5D 9H", trump: SuitHearts, winner: North, points: 6},
		{name: "right five beats wrong five", plays: "5C 5S 4S 2S", trump: SuitSpades, winner: East, points: 11},
		{name: "six beats right five", plays: "5D 6D 5H 3D", trump: SuitDiamonds, winner: East, points: 10},
		{name: "two is lowest", plays: "2C 3C 4C", trump: SuitClubs, winner: West, points: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := MustParseCards(tt.plays)
			plays := make([]Play, len(cards))
			pos := North
			if len(cards) == 3 {
				pos = East
			}
			for i, c := range cards {
				plays[i] = Play{Position: pos, Card: c}
				pos = pos.Next()
			}
			winner, points := ResolveTrick(plays, tt.trump)
			if winner != tt.winner || points != tt.points {
				t.Fatalf("ResolveTrick() = %s, %d, want %s, %d", winner, points, tt.winner, tt.points)
			}
		})
	}
}

func TestValidatePlay(t *testing.T) {
	s := playingState(SuitHearts, North, [4]string{North: "AH 7C", East: "KH", South: "QH", West: "JH"})
	if err := ValidatePlay(&s, North, MustParseCards("7C")[0]); !errors.Is(err, ErrNotTrump) {
		t.Fatalf("non-trump play error = %v", err)
	}
	if err := ValidatePlay(&s, North, MustParseCards("KH")[0]); !errors.Is(err, ErrCardNotInHand) {
		t.Fatalf("unheld card error = %v", err)
	}
	if err := Authorize(&s, East); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out of turn error = %v", err)
	}
}

func TestGoingColdRevealsAndSkips(t *testing.T) {
	s := playingState(SuitHearts, North, [4]string{
		North: "AH 7C",
		East:  "KH QH",
		South: "3H 4H",
		West:  "9H 8H",
	})
	play(t, &s, North, "AH")

	north := s.Players[North]
	if !north.Eliminated || len(north.Hand) != 0 {
		t.Fatalf("north should be cold with an empty hand: %+v", north)
	}
	if len(north.Revealed) != 1 || north.Revealed[0] != MustParseCards("7C")[0] {
		t.Fatalf("revealed = %v, want [7C]", north.Revealed)
	}
	if err := Authorize(&s, North); !errors.Is(err, ErrEliminated) {
		t.Fatalf("cold seat error = %v, want ErrEliminated", err)
	}

	play(t, &s, East, "KH")
	play(t, &s, South, "3H")
	play(t, &s, West, "9H")

	if s.Tricks[0].Winner != North {
		t.Fatalf("trick winner = %s, want north", s.Tricks[0].Winner)
	}
	// North went cold, so the lead passes clockwise.
	if s.CurrentTrick.Leader != East || s.Turn != East {
		t.Fatalf("leader = %s, turn = %s, want east", s.CurrentTrick.Leader, s.Turn)
	}

	play(t, &s, East, "QH")
	play(t, &s, South, "4H")
	play(t, &s, West, "8H")
	if s.Phase != PhaseScoring {
		t.Fatalf("phase = %s, want scoring once every seat is cold", s.Phase)
	}
	for _, trick := range s.Tricks[1:] {
		if trick.HasPlayed(North) {
			t.Fatalf("cold seat played in trick %d", trick.Number)
		}
	}
	if got := s.CardCount(); got != 8 {
		t.Fatalf("card count = %d, want 8", got)
	}
}

func TestAllSeatsColdEndsPlay(t *testing.T) {
	s := playingState(SuitHearts, North, [4]string{North: "AH", East: "KH", South: "5D", West: "9H"})
	play(t, &s, North, "AH")
	play(t, &s, East, "KH")
	play(t, &s, South, "5D")
	play(t, &s, West, "9H")
	if s.Phase != PhaseScoring || s.CurrentTrick != nil || s.Turn != NoPosition {
		t.Fatalf("phase = %s, trick = %+v, turn = %s", s.Phase, s.CurrentTrick, s.Turn)
	}
	if s.HandPoints[TeamNorthSouth] != 6 {
		t.Fatalf("hand points = %v", s.HandPoints)
	}
}
