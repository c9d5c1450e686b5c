package domain

import "fmt"

// Phase is a stage of the hand lifecycle.
type Phase string

const (
	PhaseDealerSelection Phase = "dealer_selection"
	PhaseDealing         Phase = "dealing"
	PhaseBidding         Phase = "bidding"
	PhaseDeclaring       Phase = "declaring"
	PhaseDiscarding      Phase = "discarding"
	PhaseSecondDeal      Phase = "second_deal"
	PhasePlaying         Phase = "playing"
	PhaseScoring         Phase = "scoring"
	PhaseHandComplete    Phase = "hand_complete"
	PhaseComplete        Phase = "complete"
)

var transitions = map[Phase][]Phase{
	PhaseDealerSelection: {PhaseDealing},
	PhaseDealing:         {PhaseBidding},
	PhaseBidding:         {PhaseDeclaring},
	PhaseDeclaring:       {PhaseDiscarding},
	PhaseDiscarding:      {PhaseSecondDeal},
	PhaseSecondDeal:      {PhasePlaying},
	PhasePlaying:         {PhaseScoring},
	PhaseScoring:         {PhaseHandComplete, PhaseComplete},
	PhaseHandComplete:    {PhaseDealerSelection},
}

// CanTransition reports whether from -> to is an edge of the phase graph.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further action or transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseComplete
}

// setPhase moves s to the given phase, rejecting edges outside the graph.
func (s *GameState) setPhase(to Phase) error {
	if s.Phase == to {
		return nil
	}
	if !CanTransition(s.Phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidPhase, s.Phase, to)
	}
	s.Phase = to
	return nil
}

// Ready reports whether the current phase can make progress without input from a seat.
// The dispatcher polls it after every mutation.
func Ready(s *GameState) bool {
	switch s.Phase {
	case PhaseDealerSelection, PhaseDiscarding, PhaseScoring, PhaseHandComplete:
		return true
	case PhaseDealing:
		return s.Dealer.Valid()
	case PhaseBidding:
		return BiddingClosed(s)
	case PhaseDeclaring:
		// Waits on the bid winner.
		return false
	case PhaseSecondDeal:
		return !SecondDealDone(s) || (RobPending(s) && s.Config.AutoRob)
	case PhasePlaying:
		return len(PendingKills(s)) > 0 || len(PendingCold(s)) > 0 || TrickComplete(s)
	}
	return false
}
