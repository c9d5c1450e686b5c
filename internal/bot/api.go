package bot

import (
	"errors"

	"pidro/internal/domain"
)

// ErrNoLegalAction is returned when a bot is asked to move with nothing to choose from.
var ErrNoLegalAction = errors.New("bot: no legal action")

// Brain is the interface that all bot players implement. legal is the list
// produced by app.LegalActions for pos; a Brain must return one of its entries.
type Brain interface {
	ChooseAction(state domain.GameState, pos domain.Position, legal []domain.Action) (domain.Action, error)
}
