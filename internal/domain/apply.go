package domain

import (
	"fmt"
	"slices"
)

// ApplyEvent returns a copy of s with ev applied and appended to the log. On error the
// original state is returned untouched.
func ApplyEvent(s GameState, ev Event) (GameState, error) {
	next := s.Clone()
	if err := next.Apply(ev); err != nil {
		return s, err
	}
	return next, nil
}

// Apply mutates s by one event and appends it to the log. It is the only way state
// changes, for live play and replay alike. s may be left partially updated on error,
// so callers apply to a clone.
func (s *GameState) Apply(ev Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if err := s.apply(ev); err != nil {
		return fmt.Errorf("apply %s: %w", ev.Kind(), err)
	}
	s.Events = append(s.Events, ev)
	return nil
}

func (s *GameState) apply(ev Event) error {
	switch ev := ev.(type) {
	case DealerSelected:
		return s.applyDealerSelected(ev)
	case CardsDealt:
		return s.applyCardsDealt(ev)
	case BidMade:
		return s.applyBid(ev.Position, PlaceBid{Amount: ev.Amount})
	case PlayerPassed:
		return s.applyBid(ev.Position, Pass{})
	case BiddingComplete:
		return s.applyBiddingComplete(ev)
	case TrumpDeclared:
		return s.applyTrumpDeclared(ev)
	case CardsDiscarded:
		return s.applyCardsDiscarded(ev)
	case SecondDealComplete:
		return s.applySecondDeal(ev)
	case DealerRobbedPack:
		return s.applyRob(ev)
	case CardsKilled:
		return s.applyCardsKilled(ev)
	case CardPlayed:
		return s.applyCardPlayed(ev)
	case PlayerWentCold:
		return s.applyWentCold(ev)
	case TrickWon:
		return s.applyTrickWon(ev)
	case HandScored:
		return s.applyHandScored(ev)
	case GameWon:
		return s.applyGameWon(ev)
	}
	return fmt.Errorf("%w: unknown event %T", ErrInvalidEvent, ev)
}

func (s *GameState) expectPhase(p Phase) error {
	if s.Phase != p {
		return fmt.Errorf("%w: phase is %s, want %s", ErrInvalidEvent, s.Phase, p)
	}
	return nil
}

func (s *GameState) applyDealerSelected(ev DealerSelected) error {
	if s.Phase == PhaseHandComplete {
		if err := s.BeginNextHand(); err != nil {
			return err
		}
	}
	if err := s.expectPhase(PhaseDealerSelection); err != nil {
		return err
	}
	if !ev.Dealer.Valid() {
		return ErrInvalidPosition
	}
	s.Dealer = ev.Dealer
	return s.setPhase(PhaseDealing)
}

func (s *GameState) applyCardsDealt(ev CardsDealt) error {
	if err := s.expectPhase(PhaseDealing); err != nil {
		return err
	}
	total := len(ev.Deck)
	for _, h := range ev.Hands {
		if len(h) != s.Config.InitialHandSize {
			return fmt.Errorf("%w: dealt %d cards, want %d", ErrInvalidEvent, len(h), s.Config.InitialHandSize)
		}
		total += len(h)
	}
	if total != len(s.Deck) {
		return fmt.Errorf("%w: deal covers %d cards, deck has %d", ErrInvalidEvent, total, len(s.Deck))
	}
	for _, pos := range Positions {
		s.Players[pos].Hand = cloneCards(ev.Hands[pos])
	}
	s.Deck = cloneCards(ev.Deck)
	s.Turn = s.Dealer.Next()
	return s.setPhase(PhaseBidding)
}

func (s *GameState) applyBid(pos Position, a Action) error {
	if err := s.expectPhase(PhaseBidding); err != nil {
		return err
	}
	if pos != s.Turn {
		return ErrNotYourTurn
	}
	if _, err := BidEvent(s, pos, a); err != nil {
		return err
	}
	bid := Bid{Position: pos, Seq: len(s.Events)}
	if b, ok := a.(PlaceBid); ok {
		bid.Amount = b.Amount
		hb := bid
		s.HighestBid = &hb
	} else {
		bid.Pass = true
	}
	s.Bids = append(s.Bids, bid)
	if BiddingClosed(s) {
		s.Turn = NoPosition
	} else {
		s.Turn = pos.Next()
	}
	return nil
}

func (s *GameState) applyBiddingComplete(ev BiddingComplete) error {
	if err := s.expectPhase(PhaseBidding); err != nil {
		return err
	}
	want, err := CloseBidding(s)
	if err != nil {
		return err
	}
	if want != ev {
		return fmt.Errorf("%w: bidding closed as %+v, state says %+v", ErrInvalidEvent, ev, want)
	}
	s.BiddingTeam = ev.Winner.Team()
	s.Turn = ev.Winner
	return s.setPhase(PhaseDeclaring)
}

func (s *GameState) applyTrumpDeclared(ev TrumpDeclared) error {
	if err := s.expectPhase(PhaseDeclaring); err != nil {
		return err
	}
	if err := ValidateDeclare(s, ev.Position, ev.Suit); err != nil {
		return err
	}
	s.Trump = ev.Suit
	s.Turn = NoPosition
	return s.setPhase(PhaseDiscarding)
}

func (s *GameState) applyCardsDiscarded(ev CardsDiscarded) error {
	if err := s.expectPhase(PhaseDiscarding); err != nil {
		return err
	}
	for _, pos := range Positions {
		p := &s.Players[pos]
		if err := ValidateDiscard(p.Hand, ev.Discards[pos], s.Trump); err != nil {
			return fmt.Errorf("%s: %w", pos, err)
		}
	}
	for _, pos := range Positions {
		p := &s.Players[pos]
		p.Hand = RemoveCards(p.Hand, ev.Discards[pos])
		s.Discard = append(s.Discard, ev.Discards[pos]...)
	}
	return s.setPhase(PhaseSecondDeal)
}

func (s *GameState) applySecondDeal(ev SecondDealComplete) error {
	if err := s.expectPhase(PhaseSecondDeal); err != nil {
		return err
	}
	if s.SecondDealt {
		return fmt.Errorf("%w: second deal already done", ErrInvalidEvent)
	}
	if len(ev.Dealt[s.Dealer]) > 0 {
		return fmt.Errorf("%w: dealer receives no second deal", ErrInvalidEvent)
	}
	deck := s.Deck
	pos := s.Dealer.Next()
	for i := 0; i < 3; i++ {
		dealt := ev.Dealt[pos]
		if len(dealt) > len(deck) || !slices.Equal(dealt, deck[:len(dealt)]) {
			return fmt.Errorf("%w: %s was not dealt from the top of the deck", ErrInvalidEvent, pos)
		}
		deck = deck[len(dealt):]
		s.Players[pos].Hand = append(s.Players[pos].Hand, dealt...)
		pos = pos.Next()
	}
	s.Deck = cloneCards(deck)
	s.SecondDealt = true
	if len(s.Deck) > 0 {
		s.Turn = s.Dealer
		return nil
	}
	return s.startPlay()
}

func (s *GameState) applyRob(ev DealerRobbedPack) error {
	if !RobPending(s) {
		return fmt.Errorf("%w: no rob pending", ErrInvalidEvent)
	}
	if ev.Dealer != s.Dealer || !slices.Equal(ev.Taken, s.Deck) {
		return fmt.Errorf("%w: rob does not match the pack", ErrInvalidEvent)
	}
	if err := ValidateSelection(s, ev.Dealer, ev.Kept); err != nil {
		return err
	}
	discarded := RemoveCards(RobPool(s), ev.Kept)
	if len(discarded) != len(ev.Discarded) || !HoldsAll(discarded, ev.Discarded) {
		return fmt.Errorf("%w: rob discards do not match", ErrInvalidEvent)
	}
	s.Players[ev.Dealer].Hand = cloneCards(ev.Kept)
	s.Discard = append(s.Discard, discarded...)
	s.Deck = nil
	return s.startPlay()
}

// startPlay opens trick one, led by the bid winner.
func (s *GameState) startPlay() error {
	if err := s.setPhase(PhasePlaying); err != nil {
		return err
	}
	s.TrickNumber = 1
	s.CurrentTrick = &Trick{Number: 1, Leader: s.NextActive(s.HighestBid.Position), Winner: NoPosition}
	s.Turn = TrickTurn(s)
	return nil
}

func (s *GameState) applyCardsKilled(ev CardsKilled) error {
	if err := s.expectPhase(PhasePlaying); err != nil {
		return err
	}
	if !s.Active(ev.Position) {
		return ErrEliminated
	}
	p := &s.Players[ev.Position]
	if err := ValidateKill(p.Hand, ev.Cards, s.Trump, s.Config.FinalHandSize); err != nil {
		return err
	}
	p.Hand = RemoveCards(p.Hand, ev.Cards)
	s.Killed[ev.Position] = append(s.Killed[ev.Position], ev.Cards...)
	return nil
}

func (s *GameState) applyCardPlayed(ev CardPlayed) error {
	if err := s.expectPhase(PhasePlaying); err != nil {
		return err
	}
	if ev.Position != s.Turn {
		return ErrNotYourTurn
	}
	if err := ValidatePlay(s, ev.Position, ev.Card); err != nil {
		return err
	}
	p := &s.Players[ev.Position]
	p.Hand = RemoveCards(p.Hand, []Card{ev.Card})
	s.CurrentTrick.Plays = append(s.CurrentTrick.Plays, Play{Position: ev.Position, Card: ev.Card})
	s.Turn = TrickTurn(s)
	return nil
}

func (s *GameState) applyWentCold(ev PlayerWentCold) error {
	if err := s.expectPhase(PhasePlaying); err != nil {
		return err
	}
	if !s.Active(ev.Position) {
		return ErrEliminated
	}
	p := &s.Players[ev.Position]
	if CountTrump(p.Hand, s.Trump) > 0 {
		return fmt.Errorf("%w: %s still holds trump", ErrInvalidEvent, ev.Position)
	}
	if !slices.Equal(p.Hand, ev.Revealed) {
		return fmt.Errorf("%w: revealed cards do not match hand", ErrInvalidEvent)
	}
	p.Revealed = cloneCards(p.Hand)
	p.Hand = nil
	p.Eliminated = true

	if t := s.CurrentTrick; t != nil && len(t.Plays) == 0 {
		t.Leader = s.NextActive(t.Leader)
		if !t.Leader.Valid() {
			s.CurrentTrick = nil
			s.Turn = NoPosition
			return s.setPhase(PhaseScoring)
		}
	}
	s.Turn = TrickTurn(s)
	return nil
}

func (s *GameState) applyTrickWon(ev TrickWon) error {
	want, err := CloseTrick(s)
	if err != nil {
		return err
	}
	if want != ev {
		return fmt.Errorf("%w: trick closed as %+v, state says %+v", ErrInvalidEvent, ev, want)
	}
	done := *s.CurrentTrick
	done.Winner = ev.Winner
	done.Points = ev.Points
	s.Tricks = append(s.Tricks, done)
	s.Players[ev.Winner].TricksWon++
	s.HandPoints[ev.Winner.Team()] += ev.Points

	leader := s.NextActive(ev.Winner)
	if !leader.Valid() {
		s.CurrentTrick = nil
		s.Turn = NoPosition
		return s.setPhase(PhaseScoring)
	}
	s.TrickNumber++
	s.CurrentTrick = &Trick{Number: s.TrickNumber, Leader: leader, Winner: NoPosition}
	s.Turn = TrickTurn(s)
	return nil
}

func (s *GameState) applyHandScored(ev HandScored) error {
	if err := s.expectPhase(PhaseScoring); err != nil {
		return err
	}
	want, err := ScoreHand(s)
	if err != nil {
		return err
	}
	if want != ev {
		return fmt.Errorf("%w: hand scored as %+v, state says %+v", ErrInvalidEvent, ev, want)
	}
	s.Scores = ev.Scores
	if winner := DecideWinner(s.Scores, s.Config.WinningScore, s.BiddingTeam); winner.Valid() {
		s.Winner = winner
		return s.setPhase(PhaseComplete)
	}
	return s.setPhase(PhaseHandComplete)
}

func (s *GameState) applyGameWon(ev GameWon) error {
	if err := s.expectPhase(PhaseComplete); err != nil {
		return err
	}
	if ev.Team != s.Winner || ev.Scores != s.Scores {
		return fmt.Errorf("%w: game won by %s, state says %s", ErrInvalidEvent, ev.Team, s.Winner)
	}
	return nil
}
