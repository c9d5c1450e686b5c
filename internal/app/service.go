package app

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pidro/internal/domain"
)

var (
	ErrUnknownTable  = errors.New("table not found")
	ErrUnknownPlayer = errors.New("player not seated at table")
	ErrSeatsMissing  = errors.New("every seat must be filled to start")
	ErrNothingToRedo = errors.New("no undone action to redo")
)

// Table is one hosted game. Its methods are not safe for concurrent use on their own;
// Service serializes access per table.
type Table struct {
	ID    uuid.UUID
	Seats [4]string
	State domain.GameState

	mu     sync.Mutex
	engine *Engine
	marks  []int            // log length before each accepted action
	undone [][]domain.Event // event groups removed by Undo, most recent last
}

// Position returns the seat held by userID.
func (t *Table) Position(userID string) (domain.Position, bool) {
	for _, pos := range domain.Positions {
		if userID != "" && t.Seats[pos] == userID {
			return pos, true
		}
	}
	return domain.NoPosition, false
}

// Service contains Pidro use-cases operating on hosted tables.
type Service struct {
	log   logrus.FieldLogger
	cache *MoveCache

	mu     sync.Mutex
	rng    *rand.Rand
	tables map[uuid.UUID]*Table
}

// NewService constructs a Service with provided rng or a time-seeded default. Each table
// gets its own engine seeded from rng.
func NewService(rng *rand.Rand, log logrus.FieldLogger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return &Service{
		log:    log,
		cache:  NewMoveCache(DefaultMoveCacheSize),
		rng:    rng,
		tables: make(map[uuid.UUID]*Table),
	}
}

// CreateTable starts a game for four seated users and registers the table.
func (s *Service) CreateTable(cfg domain.Config, seats [4]string) (*Table, []Event, error) {
	for _, userID := range seats {
		if userID == "" {
			return nil, nil, ErrSeatsMissing
		}
	}

	s.mu.Lock()
	engine := NewEngine(rand.New(rand.NewSource(s.rng.Int63())))
	s.mu.Unlock()

	state, err := engine.NewGame(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("new game: %w", err)
	}
	t := &Table{ID: uuid.New(), Seats: seats, State: state, engine: engine}

	s.mu.Lock()
	s.tables[t.ID] = t
	s.mu.Unlock()

	events := []Event{{
		Kind:    EventTableCreated,
		Payload: TableCreatedPayload{TableID: t.ID.String(), Seats: seats, Config: state.Config},
	}}
	for _, ev := range state.Events {
		events = append(events, project(seats, ev)...)
	}
	s.log.WithFields(logrus.Fields{"table": t.ID, "dealer": state.Dealer}).Info("table created")
	return t, events, nil
}

// Restore rebuilds a table from a persisted event log and registers it under id.
func (s *Service) Restore(id uuid.UUID, cfg domain.Config, seats [4]string, events []domain.Event) (*Table, error) {
	state, err := Replay(cfg, events)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	engine := NewEngine(rand.New(rand.NewSource(s.rng.Int63())))
	s.mu.Unlock()

	if err := engine.Advance(&state); err != nil {
		return nil, err
	}
	t := &Table{ID: id, Seats: seats, State: state, engine: engine}

	s.mu.Lock()
	s.tables[id] = t
	s.mu.Unlock()
	s.log.WithFields(logrus.Fields{"table": id, "events": len(events)}).Info("table restored")
	return t, nil
}

// Table looks up a registered table.
func (s *Service) Table(id uuid.UUID) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[id]
	if !ok {
		return nil, ErrUnknownTable
	}
	return t, nil
}

// CloseTable drops a table from the registry.
func (s *Service) CloseTable(id uuid.UUID) {
	s.mu.Lock()
	delete(s.tables, id)
	s.mu.Unlock()
}

// Tables returns the number of registered tables.
func (s *Service) Tables() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables)
}

// Apply processes an action by the seat held by userID.
func (s *Service) Apply(t *Table, userID string, a domain.Action) ([]Event, error) {
	pos, ok := t.Position(userID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return s.ApplyAt(t, pos, a)
}

// ApplyAt processes an action by pos and returns notifications for every event it caused.
func (s *Service) ApplyAt(t *Table, pos domain.Position, a domain.Action) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{"table": t.ID, "seat": pos, "phase": t.State.Phase})
	if a != nil {
		log = log.WithField("action", a.Kind())
	}

	before := len(t.State.Events)
	next, err := t.engine.ApplyAction(t.State, pos, a)
	if err != nil {
		log.WithError(err).Warn("action rejected")
		return nil, err
	}
	t.State = next
	t.marks = append(t.marks, before)
	t.undone = nil

	var events []Event
	for _, ev := range next.Events[before:] {
		events = append(events, project(t.Seats, ev)...)
	}
	log.WithField("events", len(next.Events)-before).Debug("action applied")
	if next.Phase == domain.PhaseComplete {
		log.WithFields(logrus.Fields{"winner": next.Winner, "scores": next.Scores}).Info("game complete")
	}
	return events, nil
}

// LegalActions lists the actions pos may take at the table.
func (s *Service) LegalActions(t *Table, pos domain.Position) []domain.Action {
	t.mu.Lock()
	state := t.State
	t.mu.Unlock()
	return s.cache.LegalActions(state, pos)
}

// Undo rewinds the table to the state before its most recent action.
func (s *Service) Undo(t *Table) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.marks) == 0 {
		return nil, ErrNothingToUndo
	}
	mark := t.marks[len(t.marks)-1]
	state, err := Replay(t.State.Config, t.State.Events[:mark])
	if err != nil {
		return nil, err
	}
	removed := append([]domain.Event(nil), t.State.Events[mark:]...)
	t.undone = append(t.undone, removed)
	t.marks = t.marks[:len(t.marks)-1]
	t.State = state

	s.log.WithFields(logrus.Fields{"table": t.ID, "events": len(removed)}).Info("action undone")
	return []Event{{Kind: EventStateRewound, Payload: StateRewoundPayload{Events: len(state.Events)}}}, nil
}

// Redo reapplies the most recently undone action.
func (s *Service) Redo(t *Table) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.undone) == 0 {
		return nil, ErrNothingToRedo
	}
	group := t.undone[len(t.undone)-1]
	before := len(t.State.Events)
	state := t.State
	for _, ev := range group {
		next, err := Redo(state, ev)
		if err != nil {
			return nil, err
		}
		state = next
	}
	t.undone = t.undone[:len(t.undone)-1]
	t.marks = append(t.marks, before)
	t.State = state

	var events []Event
	for _, ev := range group {
		events = append(events, project(t.Seats, ev)...)
	}
	return events, nil
}
