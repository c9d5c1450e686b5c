package bot

import (
	"math/rand"
	"sync"

	"pidro/internal/domain"
)

// RandomBrain picks uniformly from the legal actions, except that in bidding it only
// passes or bids the minimum. Uniform overbidding sets the bidder nearly every hand
// and the game never reaches the winning score.
type RandomBrain struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomBrain(rng *rand.Rand) *RandomBrain {
	return &RandomBrain{rng: rng}
}

func (b *RandomBrain) ChooseAction(_ domain.GameState, _ domain.Position, legal []domain.Action) (domain.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalAction
	}
	legal = modestBids(legal)
	b.mu.Lock()
	i := b.rng.Intn(len(legal))
	b.mu.Unlock()
	return legal[i], nil
}

// modestBids narrows a bidding choice to pass and the lowest bid. Other choices are
// returned unchanged.
func modestBids(legal []domain.Action) []domain.Action {
	var out []domain.Action
	lowest := -1
	for _, a := range legal {
		switch a := a.(type) {
		case domain.Pass:
			out = append(out, a)
		case domain.PlaceBid:
			if lowest < 0 || a.Amount < lowest {
				lowest = a.Amount
			}
		default:
			return legal
		}
	}
	if lowest >= 0 {
		out = append(out, domain.PlaceBid{Amount: lowest})
	}
	return out
}

// FirstLegalBrain always takes the first legal action. Useful for reproducible games.
type FirstLegalBrain struct{}

func (FirstLegalBrain) ChooseAction(_ domain.GameState, _ domain.Position, legal []domain.Action) (domain.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalAction
	}
	return legal[0], nil
}
