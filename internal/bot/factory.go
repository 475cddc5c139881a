package bot

import (
	"fmt"
	"math/rand"
)

// BotLevel selects a strategy implementation.
type BotLevel int

const (
	BotLevelDrifter BotLevel = iota
	BotLevelStandard
	BotLevelSharp
)

// LevelFromDifficulty maps an identity difficulty string to a level,
// defaulting to the standard opponent for unknown values.
func LevelFromDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "easy":
		return BotLevelDrifter
	case "hard":
		return BotLevelSharp
	default:
		return BotLevelStandard
	}
}

// NewBrain creates an AI brain for the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelDrifter:
		return &DrifterBot{rng: rng, tuning: DrifterTuning}, nil
	case BotLevelStandard:
		return &StandardBot{rng: rng, tuning: StandardTuning}, nil
	case BotLevelSharp:
		return &SharpBot{rng: rng, tuning: SharpTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
