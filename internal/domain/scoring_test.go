package domain

import "testing"

func scoringState(bidder Position, amount int, points [2]int, scores [2]int) GameState {
	s := NewGameState(DefaultConfig())
	s.Phase = PhaseScoring
	s.Dealer = bidder.Next()
	s.Trump = SuitSpades
	s.HighestBid = &Bid{Position: bidder, Amount: amount}
	s.BiddingTeam = bidder.Team()
	s.HandPoints = points
	s.Scores = scores
	s.Deck = nil
	return s
}

func TestScoreHand(t *testing.T) {
	tests := []struct {
		name    string
		bidder  Position
		amount  int
		points  [2]int
		awarded [2]int
		made    bool
	}{
		{name: "made exactly", bidder: North, amount: 8, points: [2]int{8, 6}, awarded: [2]int{8, 6}, made: true},
		{name: "set", bidder: North, amount: 9, points: [2]int{8, 6}, awarded: [2]int{-9, 6}},
		{name: "east west set keeps opponents", bidder: West, amount: 14, points: [2]int{1, 13}, awarded: [2]int{1, -14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scoringState(tt.bidder, tt.amount, tt.points, [2]int{10, 20})
			ev, err := ScoreHand(&s)
			if err != nil {
				t.Fatalf("ScoreHand() error = %v", err)
			}
			if ev.Awarded != tt.awarded || ev.Made != tt.made {
				t.Fatalf("ScoreHand() = %+v, want awarded %v made %v", ev, tt.awarded, tt.made)
			}
			if ev.Scores != [2]int{10 + tt.awarded[0], 20 + tt.awarded[1]} {
				t.Fatalf("cumulative scores = %v", ev.Scores)
			}
		})
	}
}

func TestDecideWinner(t *testing.T) {
	tests := []struct {
		name    string
		scores  [2]int
		bidding Team
		want    Team
	}{
		{name: "nobody", scores: [2]int{61, 40}, bidding: TeamNorthSouth, want: NoTeam},
		{name: "north south", scores: [2]int{62, 40}, bidding: TeamEastWest, want: TeamNorthSouth},
		{name: "east west", scores: [2]int{12, 70}, bidding: TeamNorthSouth, want: TeamEastWest},
		{name: "both reach, bidder wins", scores: [2]int{70, 64}, bidding: TeamEastWest, want: TeamEastWest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecideWinner(tt.scores, DefaultWinningScore, tt.bidding); got != tt.want {
				t.Fatalf("DecideWinner() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScoringTransitions(t *testing.T) {
	t.Run("hand complete then next hand", func(t *testing.T) {
		s := scoringState(North, 6, [2]int{8, 6}, [2]int{0, 0})
		events, err := SettleEvents(&s)
		if err != nil {
			t.Fatalf("SettleEvents() error = %v", err)
		}
		mustApply(t, &s, events...)
		if s.Phase != PhaseHandComplete || s.Scores != [2]int{8, 6} {
			t.Fatalf("phase %s scores %v", s.Phase, s.Scores)
		}
		dealer := s.Dealer
		if err := s.BeginNextHand(); err != nil {
			t.Fatalf("BeginNextHand() error = %v", err)
		}
		if s.Phase != PhaseDealerSelection || s.Dealer != dealer.Next() || s.HandNumber != 2 {
			t.Fatalf("next hand: phase %s dealer %s hand %d", s.Phase, s.Dealer, s.HandNumber)
		}
		if s.Trump != SuitNone || s.HighestBid != nil || len(s.Deck) != DeckSize || s.Scores != [2]int{8, 6} {
			t.Fatalf("hand state not reset: %+v", s)
		}
	})

	t.Run("threshold completes the game", func(t *testing.T) {
		s := scoringState(East, 7, [2]int{3, 11}, [2]int{40, 55})
		events, err := SettleEvents(&s)
		if err != nil {
			t.Fatalf("SettleEvents() error = %v", err)
		}
		if len(events) != 2 || events[1].Kind() != EventGameWon {
			t.Fatalf("events = %v, want hand_scored then game_won", events)
		}
		mustApply(t, &s, events...)
		if s.Phase != PhaseComplete || s.Winner != TeamEastWest || !s.Phase.Terminal() {
			t.Fatalf("phase %s winner %s", s.Phase, s.Winner)
		}
		if err := Authorize(&s, North); err != ErrGameOver {
			t.Fatalf("Authorize() after game over = %v", err)
		}
	})
}

func TestCanTransition(t *testing.T) {
	valid := [][2]Phase{
		{PhaseDealerSelection, PhaseDealing},
		{PhaseSecondDeal, PhasePlaying},
		{PhaseScoring, PhaseHandComplete},
		{PhaseScoring, PhaseComplete},
		{PhaseHandComplete, PhaseDealerSelection},
	}
	for _, tr := range valid {
		if !CanTransition(tr[0], tr[1]) {
			t.Fatalf("%s -> %s should be valid", tr[0], tr[1])
		}
	}
	invalid := [][2]Phase{
		{PhaseBidding, PhasePlaying},
		{PhasePlaying, PhaseBidding},
		{PhaseComplete, PhaseDealerSelection},
		{PhaseHandComplete, PhaseComplete},
	}
	for _, tr := range invalid {
		if CanTransition(tr[0], tr[1]) {
			t.Fatalf("%s -> %s should be invalid", tr[0], tr[1])
		}
	}
}
