package domain

import "fmt"

// BiddingClosed reports whether the round is closed: exactly one entry per seat.
func BiddingClosed(s *GameState) bool {
	return len(s.Bids) >= 4
}

// HasBid reports whether pos already acted in this round.
func HasBid(s *GameState, pos Position) bool {
	for _, b := range s.Bids {
		if b.Position == pos {
			return true
		}
	}
	return false
}

// DealerMustBid reports whether pos is the dealer and the three other seats passed.
func DealerMustBid(s *GameState, pos Position) bool {
	if pos != s.Dealer || len(s.Bids) != 3 {
		return false
	}
	for _, b := range s.Bids {
		if !b.Pass {
			return false
		}
	}
	return true
}

// MinimumBid returns the lowest amount pos could bid now.
func MinimumBid(s *GameState) int {
	lowest := s.Config.MinBid
	if s.HighestBid != nil && s.HighestBid.Amount+1 > lowest {
		lowest = s.HighestBid.Amount + 1
	}
	return lowest
}

// ValidateBid checks a bid of amount by pos against the round so far.
func ValidateBid(s *GameState, pos Position, amount int) error {
	if HasBid(s, pos) {
		return ErrAlreadyBid
	}
	if amount < s.Config.MinBid || amount > s.Config.MaxBid {
		return fmt.Errorf("%w: %d not in %d..%d", ErrBidOutOfRange, amount, s.Config.MinBid, s.Config.MaxBid)
	}
	if s.HighestBid != nil && amount <= s.HighestBid.Amount {
		return fmt.Errorf("%w: %d <= %d", ErrBidTooLow, amount, s.HighestBid.Amount)
	}
	return nil
}

// ValidatePass checks that pos may pass.
func ValidatePass(s *GameState, pos Position) error {
	if HasBid(s, pos) {
		return ErrAlreadyBid
	}
	if DealerMustBid(s, pos) {
		return ErrDealerMustBid
	}
	return nil
}

// BidEvent validates and builds the event for a bidding action.
func BidEvent(s *GameState, pos Position, a Action) (Event, error) {
	switch a := a.(type) {
	case PlaceBid:
		if err := ValidateBid(s, pos, a.Amount); err != nil {
			return nil, err
		}
		return BidMade{Position: pos, Amount: a.Amount}, nil
	case Pass:
		if err := ValidatePass(s, pos); err != nil {
			return nil, err
		}
		return PlayerPassed{Position: pos}, nil
	}
	return nil, &PhaseError{Phase: s.Phase, Action: a.Kind()}
}

// CloseBidding builds the BiddingComplete event for a finished round.
func CloseBidding(s *GameState) (BiddingComplete, error) {
	if !BiddingClosed(s) {
		return BiddingComplete{}, fmt.Errorf("%w: bidding has %d entries", ErrInvalidEvent, len(s.Bids))
	}
	if s.HighestBid == nil {
		return BiddingComplete{}, fmt.Errorf("%w: bidding closed without a bid", ErrInvalidEvent)
	}
	return BiddingComplete{Winner: s.HighestBid.Position, Amount: s.HighestBid.Amount}, nil
}
