package domain

import "fmt"

// Authorize runs the seat checks that every action must pass, in order: game over,
// unknown seat, cold seat, out of turn.
func Authorize(s *GameState, pos Position) error {
	if s.Phase.Terminal() {
		return ErrGameOver
	}
	if !pos.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, int(pos))
	}
	if s.Players[pos].Eliminated {
		return ErrEliminated
	}
	if s.Turn != pos {
		return ErrNotYourTurn
	}
	return nil
}

// ActionEvent routes an authorized action to the module for the current phase and
// returns the event it produces.
func ActionEvent(s *GameState, pos Position, a Action) (Event, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil action", ErrInvalidAction)
	}
	switch s.Phase {
	case PhaseBidding:
		return BidEvent(s, pos, a)
	case PhaseDeclaring:
		return DeclareEvent(s, pos, a)
	case PhaseSecondDeal:
		return SelectEvent(s, pos, a)
	case PhasePlaying:
		return PlayEvent(s, pos, a)
	}
	return nil, &PhaseError{Phase: s.Phase, Action: a.Kind()}
}

// SettleEvents returns the automatic events for a Ready phase that needs no randomness.
// Dealer selection and dealing draw on a shuffle and are produced by the caller.
func SettleEvents(s *GameState) ([]Event, error) {
	switch s.Phase {
	case PhaseBidding:
		ev, err := CloseBidding(s)
		if err != nil {
			return nil, err
		}
		return []Event{ev}, nil

	case PhaseDiscarding:
		return []Event{PlanDiscards(s)}, nil

	case PhaseSecondDeal:
		if !SecondDealDone(s) {
			return []Event{PlanSecondDeal(s)}, nil
		}
		if RobPending(s) && s.Config.AutoRob {
			return []Event{AutoRobEvent(s)}, nil
		}

	case PhasePlaying:
		if kills := PendingKills(s); len(kills) > 0 {
			return asEvents(kills), nil
		}
		if cold := PendingCold(s); len(cold) > 0 {
			return asEvents(cold), nil
		}
		if TrickComplete(s) {
			ev, err := CloseTrick(s)
			if err != nil {
				return nil, err
			}
			return []Event{ev}, nil
		}

	case PhaseScoring:
		scored, err := ScoreHand(s)
		if err != nil {
			return nil, err
		}
		events := []Event{scored}
		if winner := DecideWinner(scored.Scores, s.Config.WinningScore, s.BiddingTeam); winner.Valid() {
			events = append(events, GameWon{Team: winner, Scores: scored.Scores})
		}
		return events, nil
	}
	return nil, nil
}

func asEvents[E Event](in []E) []Event {
	out := make([]Event, len(in))
	for i, ev := range in {
		out[i] = ev
	}
	return out
}
