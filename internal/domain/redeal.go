package domain

import "fmt"

// ValidateDiscard checks that cards can be shed from hand: all held, none trump.
func ValidateDiscard(hand, cards []Card, trump Suit) error {
	for _, c := range cards {
		if IsTrump(c, trump) {
			return fmt.Errorf("%w: %s", ErrCannotDiscardTrump, c)
		}
	}
	if !HoldsAll(hand, cards) {
		return ErrCardNotInHand
	}
	return nil
}

// PlanDiscards builds the automatic discard of every non-trump card.
func PlanDiscards(s *GameState) CardsDiscarded {
	var ev CardsDiscarded
	for _, pos := range Positions {
		ev.Discards[pos] = FilterNonTrump(s.Players[pos].Hand, s.Trump)
	}
	return ev
}

// SecondDealDone reports whether the second deal has been handed out this hand.
func SecondDealDone(s *GameState) bool {
	return s.SecondDealt
}

// PlanSecondDeal deals from the top of the deck clockwise from the dealer's left,
// bringing each non-dealer to the final hand size. Seats already at or above it get nothing.
func PlanSecondDeal(s *GameState) SecondDealComplete {
	var ev SecondDealComplete
	deck := s.Deck
	pos := s.Dealer.Next()
	for i := 0; i < 3; i++ {
		need := s.Config.FinalHandSize - len(s.Players[pos].Hand)
		if need > 0 {
			var dealt []Card
			dealt, deck = DrawCards(deck, need)
			ev.Dealt[pos] = dealt
		}
		pos = pos.Next()
	}
	return ev
}

// RobPending reports whether the dealer still has to take the pack.
func RobPending(s *GameState) bool {
	return s.Phase == PhaseSecondDeal && s.SecondDealt && s.Dealer.Valid() && s.Turn == s.Dealer
}

// RobPool returns the dealer's hand followed by the remaining deck.
func RobPool(s *GameState) []Card {
	dealer := s.Players[s.Dealer].Hand
	pool := make([]Card, 0, len(dealer)+len(s.Deck))
	pool = append(pool, dealer...)
	return append(pool, s.Deck...)
}

// RobSize is the number of cards the dealer keeps from a pool.
func RobSize(s *GameState, pool []Card) int {
	if len(pool) < s.Config.FinalHandSize {
		return len(pool)
	}
	return s.Config.FinalHandSize
}

// ValidateSelection checks a rob selection against the pool.
func ValidateSelection(s *GameState, pos Position, cards []Card) error {
	if pos != s.Dealer {
		return ErrNotYourTurn
	}
	pool := RobPool(s)
	if want := RobSize(s, pool); len(cards) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongSelectionSize, len(cards), want)
	}
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
		if !ContainsCard(pool, c) {
			return fmt.Errorf("%w: %s", ErrCardNotInPool, c)
		}
	}
	return nil
}

// RobEvent builds the DealerRobbedPack event for a validated selection.
func RobEvent(s *GameState, kept []Card) DealerRobbedPack {
	pool := RobPool(s)
	return DealerRobbedPack{
		Dealer:    s.Dealer,
		Taken:     cloneCards(s.Deck),
		Kept:      cloneCards(kept),
		Discarded: RemoveCards(pool, kept),
	}
}

// SelectEvent validates and builds the event for a manual rob.
func SelectEvent(s *GameState, pos Position, a Action) (Event, error) {
	sel, ok := a.(SelectHand)
	if !ok || !RobPending(s) {
		return nil, &PhaseError{Phase: s.Phase, Action: a.Kind()}
	}
	if err := ValidateSelection(s, pos, sel.Cards); err != nil {
		return nil, err
	}
	return RobEvent(s, sel.Cards), nil
}

// AutoRobEvent applies the rob heuristic for the dealer.
func AutoRobEvent(s *GameState) DealerRobbedPack {
	pool := RobPool(s)
	return RobEvent(s, SelectRobHand(pool, s.Trump, RobSize(s, pool)))
}

// PlanKill returns the cards a hand must kill to reach size trump cards: the lowest
// non-point trump first. ok is false when no kill is required or the non-point trump
// cannot cover the excess, in which case the hand is kept whole.
func PlanKill(hand []Card, trump Suit, size int) (kill []Card, ok bool) {
	trumps := FilterTrump(hand, trump)
	excess := len(trumps) - size
	if excess <= 0 {
		return nil, false
	}
	var candidates []Card
	for _, c := range trumps {
		if !IsPointCard(c, trump) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) < excess {
		return nil, false
	}
	SortByTrumpStrength(candidates, trump)
	// weakest are at the end
	return cloneCards(candidates[len(candidates)-excess:]), true
}

// ValidateKill checks that cards are a legal kill from hand down to size trump.
func ValidateKill(hand, cards []Card, trump Suit, size int) error {
	for _, c := range cards {
		if !IsTrump(c, trump) {
			return fmt.Errorf("%w: %s", ErrNotTrump, c)
		}
		if IsPointCard(c, trump) {
			return fmt.Errorf("%w: %s", ErrCannotKillPointCard, c)
		}
	}
	if !HoldsAll(hand, cards) {
		return ErrCardNotInHand
	}
	if want := CountTrump(hand, trump) - size; len(cards) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrKillCount, len(cards), want)
	}
	return nil
}

// PendingKills lists the kills that must happen before the first card is played,
// clockwise from the dealer's left.
func PendingKills(s *GameState) []CardsKilled {
	if s.Phase != PhasePlaying || len(s.Tricks) > 0 || (s.CurrentTrick != nil && len(s.CurrentTrick.Plays) > 0) {
		return nil
	}
	var kills []CardsKilled
	pos := s.Dealer.Next()
	for i := 0; i < 4; i++ {
		p := s.Players[pos]
		if !p.Eliminated {
			if cards, ok := PlanKill(p.Hand, s.Trump, s.Config.FinalHandSize); ok {
				kills = append(kills, CardsKilled{Position: pos, Cards: cards})
			}
		}
		pos = pos.Next()
	}
	return kills
}
