package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"

	"golang.org/x/sync/errgroup"

	"pidro/internal/app"
	"pidro/internal/bot"
	"pidro/internal/domain"
)

// maxActions bounds one simulated game.
const maxActions = 100000

var errReplayMismatch = errors.New("replayed state differs from live state")

type simOptions struct {
	Games   int
	Workers int
	Seed    int64
	Level   bot.BotLevel
	Verify  bool
	Rules   domain.Config
}

// gameResult summarizes one finished game.
type gameResult struct {
	Seed    int64
	Winner  domain.Team
	Scores  [2]int
	Hands   int
	Actions int
	Sets    int
	Events  int
}

type summary struct {
	Games    int
	Wins     [2]int
	Hands    int
	Actions  int
	Sets     int
	MaxHands int
}

func summarize(results []gameResult) summary {
	var s summary
	for _, r := range results {
		s.Games++
		if r.Winner.Valid() {
			s.Wins[r.Winner]++
		}
		s.Hands += r.Hands
		s.Actions += r.Actions
		s.Sets += r.Sets
		s.MaxHands = max(s.MaxHands, r.Hands)
	}
	return s
}

// runGames plays opts.Games bot games in parallel. Results are ordered by game index.
func runGames(ctx context.Context, opts simOptions) ([]gameResult, error) {
	results := make([]gameResult, opts.Games)
	cache := app.NewMoveCache(app.DefaultMoveCacheSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i := 0; i < opts.Games; i++ {
		i := i
		seed := opts.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := playGame(seed, opts, cache)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func playGame(seed int64, opts simOptions, cache *app.MoveCache) (gameResult, error) {
	engine := app.NewEngine(rand.New(rand.NewSource(seed)))
	state, err := engine.NewGame(opts.Rules)
	if err != nil {
		return gameResult{}, err
	}

	var agents [4]*bot.Agent
	for _, pos := range domain.Positions {
		brain, err := bot.NewBrain(opts.Level, rand.New(rand.NewSource(seed*10+int64(pos))))
		if err != nil {
			return gameResult{}, err
		}
		agents[pos] = &bot.Agent{ID: fmt.Sprintf("bot-%d", pos), Name: pos.String(), Strategy: brain}
	}

	r := gameResult{Seed: seed}
	for state.Phase != domain.PhaseComplete {
		if r.Actions >= maxActions {
			return r, fmt.Errorf("no winner after %d actions", r.Actions)
		}
		pos, legal := actor(state, cache)
		if pos == domain.NoPosition {
			return r, fmt.Errorf("no seat can act in phase %s", state.Phase)
		}
		action, err := agents[pos].Play(state, pos, legal)
		if err != nil {
			return r, err
		}
		if state, err = engine.ApplyAction(state, pos, action); err != nil {
			return r, fmt.Errorf("%s %v: %w", pos, action, err)
		}
		r.Actions++
	}

	if opts.Verify {
		if err := verifyReplay(state); err != nil {
			return r, err
		}
	}

	r.Winner = state.Winner
	r.Scores = state.Scores
	r.Hands = state.HandNumber
	r.Events = len(state.Events)
	for _, ev := range state.Events {
		if hs, ok := ev.(domain.HandScored); ok && !hs.Made {
			r.Sets++
		}
	}
	return r, nil
}

// actor finds the seat that must act. Only one seat has legal actions at a time.
func actor(state domain.GameState, cache *app.MoveCache) (domain.Position, []domain.Action) {
	if legal := cache.LegalActions(state, state.Turn); len(legal) > 0 {
		return state.Turn, legal
	}
	for _, pos := range domain.Positions {
		if legal := cache.LegalActions(state, pos); len(legal) > 0 {
			return pos, legal
		}
	}
	return domain.NoPosition, nil
}

// verifyReplay replays the in-memory log and a JSON round trip of it. The
// in-memory replay must match exactly; the decoded one must reach the same result.
func verifyReplay(state domain.GameState) error {
	replayed, err := app.Replay(state.Config, state.Events)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(replayed, state) {
		return errReplayMismatch
	}

	raw, err := domain.MarshalEvents(state.Events)
	if err != nil {
		return err
	}
	events, err := domain.UnmarshalEvents(raw)
	if err != nil {
		return err
	}
	decoded, err := app.Replay(state.Config, events)
	if err != nil {
		return fmt.Errorf("decoded log: %w", err)
	}
	if decoded.Phase != state.Phase || decoded.Winner != state.Winner ||
		decoded.Scores != state.Scores || len(decoded.Events) != len(state.Events) {
		return fmt.Errorf("decoded log: %w", errReplayMismatch)
	}
	return nil
}
