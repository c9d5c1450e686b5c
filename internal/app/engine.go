package app

import (
	"fmt"
	"math/rand"
	"time"

	"pidro/internal/domain"
)

// Engine is the action dispatcher. It owns the shuffle source; game state itself never
// holds randomness, so replaying a log reproduces it exactly.
//
// An Engine is not safe for concurrent use. Give each game its own.
type Engine struct {
	rng *rand.Rand
}

// NewEngine constructs an Engine with provided rng or a time-seeded default.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// NewGame returns a fresh game advanced to the first decision: bidding of hand one.
func (e *Engine) NewGame(cfg domain.Config) (domain.GameState, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return domain.GameState{}, err
	}
	s := domain.NewGameState(cfg)
	if err := e.advance(&s); err != nil {
		return domain.GameState{}, err
	}
	return s, nil
}

// ApplyAction validates an action by pos and returns the resulting state, advanced until
// a seat must act again. On error the input state is returned and is left unchanged.
func (e *Engine) ApplyAction(s domain.GameState, pos domain.Position, a domain.Action) (domain.GameState, error) {
	if err := domain.Authorize(&s, pos); err != nil {
		return s, err
	}
	ev, err := domain.ActionEvent(&s, pos, a)
	if err != nil {
		return s, err
	}
	next := s.Clone()
	if err := next.Apply(ev); err != nil {
		return s, err
	}
	if err := e.advance(&next); err != nil {
		return s, err
	}
	return next, nil
}

// Advance runs the automatic phase loop on s in place. Hosts only need it after
// restoring a state that was captured mid-cascade.
func (e *Engine) Advance(s *domain.GameState) error {
	return e.advance(s)
}

func (e *Engine) advance(s *domain.GameState) error {
	for step := 0; step < maxAdvanceSteps; step++ {
		if !domain.Ready(s) {
			return nil
		}
		if s.Phase == domain.PhaseHandComplete {
			if err := s.BeginNextHand(); err != nil {
				return err
			}
			continue
		}
		events, err := e.autoEvents(s)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return fmt.Errorf("phase %s is ready but produced no events", s.Phase)
		}
		for _, ev := range events {
			if err := s.Apply(ev); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("phase loop did not settle after %d steps", maxAdvanceSteps)
}

// autoEvents produces the automatic work for the current phase. Only dealer selection
// and dealing need the shuffle source.
func (e *Engine) autoEvents(s *domain.GameState) ([]domain.Event, error) {
	switch s.Phase {
	case domain.PhaseDealerSelection:
		if s.Dealer.Valid() {
			return []domain.Event{domain.DealerSelected{Dealer: s.Dealer}}, nil
		}
		return []domain.Event{domain.CutForDeal(domain.ShuffleDeck(domain.NewDeck(), e.rng))}, nil
	case domain.PhaseDealing:
		ev, err := domain.DealHands(s, domain.ShuffleDeck(s.Deck, e.rng))
		if err != nil {
			return nil, err
		}
		return []domain.Event{ev}, nil
	}
	return domain.SettleEvents(s)
}
