package domain

// ValidateDeclare checks that pos may name suit as trump.
func ValidateDeclare(s *GameState, pos Position, suit Suit) error {
	if s.HighestBid == nil || s.HighestBid.Position != pos {
		return ErrNotBidWinner
	}
	if s.Trump != SuitNone {
		return ErrTrumpAlreadySet
	}
	if !suit.Valid() {
		return ErrInvalidSuit
	}
	return nil
}

// DeclareEvent validates and builds the event for a declaring action.
func DeclareEvent(s *GameState, pos Position, a Action) (Event, error) {
	d, ok := a.(DeclareTrump)
	if !ok {
		return nil, &PhaseError{Phase: s.Phase, Action: a.Kind()}
	}
	if err := ValidateDeclare(s, pos, d.Suit); err != nil {
		return nil, err
	}
	return TrumpDeclared{Position: pos, Suit: d.Suit}, nil
}
