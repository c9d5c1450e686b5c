package domain

import (
	"errors"
	"fmt"
)

var (
	ErrGameOver        = errors.New("game is over")
	ErrInvalidPosition = errors.New("invalid position")
	ErrEliminated      = errors.New("seat has gone cold")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrInvalidAction   = errors.New("invalid action")

	ErrBidOutOfRange = errors.New("bid out of range")
	ErrBidTooLow     = errors.New("bid must exceed the highest bid")
	ErrAlreadyBid    = errors.New("seat has already bid")
	ErrDealerMustBid = errors.New("dealer must bid when all others pass")

	ErrNotBidWinner    = errors.New("only the bid winner may declare trump")
	ErrTrumpAlreadySet = errors.New("trump already declared")
	ErrInvalidSuit     = errors.New("invalid suit")

	ErrCardNotInHand = errors.New("card not in hand")
	ErrNotTrump      = errors.New("only trump cards may be played")

	ErrCannotKillPointCard = errors.New("point cards cannot be killed")
	ErrCannotDiscardTrump  = errors.New("trump cards cannot be discarded")
	ErrKillCount           = errors.New("wrong number of cards killed")

	ErrWrongSelectionSize = errors.New("wrong number of cards selected")
	ErrCardNotInPool      = errors.New("selected card not in pool")
	ErrDuplicateCard      = errors.New("card selected twice")

	ErrInvalidEvent = errors.New("event does not apply to state")
	ErrInvalidPhase = errors.New("invalid phase transition")
)

// PhaseError reports an action that the current phase does not accept.
// It matches ErrInvalidAction under errors.Is.
type PhaseError struct {
	Phase  Phase
	Action ActionKind
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("invalid action %s in phase %s", e.Action, e.Phase)
}

func (e *PhaseError) Is(target error) bool {
	return target == ErrInvalidAction
}
