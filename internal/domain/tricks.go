package domain

import "fmt"

// TrickTurn returns the seat due to play into the current trick: the first active seat
// clockwise from the leader that has not played yet. NoPosition means nobody is due.
func TrickTurn(s *GameState) Position {
	t := s.CurrentTrick
	if t == nil || !t.Leader.Valid() {
		return NoPosition
	}
	pos := t.Leader
	for i := 0; i < 4; i++ {
		if s.Active(pos) && !t.HasPlayed(pos) {
			return pos
		}
		pos = pos.Next()
	}
	return NoPosition
}

// TrickComplete reports whether every active seat has played into a non-empty trick.
func TrickComplete(s *GameState) bool {
	t := s.CurrentTrick
	if s.Phase != PhasePlaying || t == nil || len(t.Plays) == 0 {
		return false
	}
	return TrickTurn(s) == NoPosition
}

// ResolveTrick returns the winning seat and point value of a set of plays.
func ResolveTrick(plays []Play, trump Suit) (winner Position, points int) {
	winner = NoPosition
	best := -1
	for _, p := range plays {
		if st := TrumpStrength(p.Card, trump); st > best {
			best = st
			winner = p.Position
		}
		points += PointValue(p.Card, trump)
	}
	return winner, points
}

// ValidatePlay checks that pos can play card into the current trick.
func ValidatePlay(s *GameState, pos Position, card Card) error {
	if !ContainsCard(s.Players[pos].Hand, card) {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, card)
	}
	if !IsTrump(card, s.Trump) {
		return fmt.Errorf("%w: %s", ErrNotTrump, card)
	}
	return nil
}

// PlayEvent validates and builds the event for a playing action.
func PlayEvent(s *GameState, pos Position, a Action) (Event, error) {
	p, ok := a.(PlayCard)
	if !ok {
		return nil, &PhaseError{Phase: s.Phase, Action: a.Kind()}
	}
	if err := ValidatePlay(s, pos, p.Card); err != nil {
		return nil, err
	}
	return CardPlayed{Position: pos, Card: p.Card}, nil
}

// PlayableCards lists the cards pos may play, strongest first.
func PlayableCards(s *GameState, pos Position) []Card {
	cards := FilterTrump(s.Players[pos].Hand, s.Trump)
	SortByTrumpStrength(cards, s.Trump)
	return cards
}

// PendingCold lists active seats holding no trump, clockwise from the dealer's left.
func PendingCold(s *GameState) []PlayerWentCold {
	if s.Phase != PhasePlaying {
		return nil
	}
	var cold []PlayerWentCold
	pos := s.Dealer.Next()
	for i := 0; i < 4; i++ {
		p := s.Players[pos]
		if !p.Eliminated && CountTrump(p.Hand, s.Trump) == 0 {
			cold = append(cold, PlayerWentCold{Position: pos, Revealed: cloneCards(p.Hand)})
		}
		pos = pos.Next()
	}
	return cold
}

// CloseTrick builds the TrickWon event for a complete trick.
func CloseTrick(s *GameState) (TrickWon, error) {
	if !TrickComplete(s) {
		return TrickWon{}, fmt.Errorf("%w: trick not complete", ErrInvalidEvent)
	}
	winner, points := ResolveTrick(s.CurrentTrick.Plays, s.Trump)
	return TrickWon{Number: s.CurrentTrick.Number, Winner: winner, Points: points}, nil
}
