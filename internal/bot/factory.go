package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// BotLevel selects how a bot picks among legal actions.
type BotLevel int

const (
	BotLevelRandom BotLevel = iota
	BotLevelFirst
)

// ParseBotLevel maps an identity difficulty string to a level. Unknown values
// fall back to BotLevelRandom.
func ParseBotLevel(difficulty string) BotLevel {
	switch difficulty {
	case "first", "steady":
		return BotLevelFirst
	default:
		return BotLevelRandom
	}
}

// NewBrain creates a new brain for the level. rng seeds random brains; nil uses the clock.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelRandom:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return NewRandomBrain(rng), nil
	case BotLevelFirst:
		return FirstLegalBrain{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for the identity at index in the bot pool.
func NewAgent(index int, rng *rand.Rand) (*Agent, error) {
	identity := GetBotIdentity(index)
	brain, err := NewBrain(ParseBotLevel(identity.Difficulty), rng)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain}, nil
}
