package bot

import (
	"pidro/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent to pick its move for pos from the legal actions.
func (a *Agent) Play(state domain.GameState, pos domain.Position, legal []domain.Action) (domain.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalAction
	}
	return a.Strategy.ChooseAction(state, pos, legal)
}
