package app

import (
	"errors"
	"fmt"

	"pidro/internal/domain"
)

// ErrNothingToUndo is returned by Undo on a state with an empty log.
var ErrNothingToUndo = errors.New("no events to undo")

// Replay rebuilds a state by applying events in order to a fresh game.
func Replay(cfg domain.Config, events []domain.Event) (domain.GameState, error) {
	s := domain.NewGameState(cfg)
	for i, ev := range events {
		if err := s.Apply(ev); err != nil {
			return domain.GameState{}, fmt.Errorf("replay event %d: %w", i, err)
		}
	}
	return s, nil
}

// Undo re-derives s without its most recent event. It replays the whole log.
func Undo(s domain.GameState) (domain.GameState, error) {
	if len(s.Events) == 0 {
		return s, ErrNothingToUndo
	}
	return Replay(s.Config, s.Events[:len(s.Events)-1])
}

// Redo applies one more event and appends it to the log.
func Redo(s domain.GameState, ev domain.Event) (domain.GameState, error) {
	return domain.ApplyEvent(s, ev)
}
