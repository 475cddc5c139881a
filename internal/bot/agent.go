package bot

import (
	"math/rand"

	"showdown/internal/domain"
)

// Agent represents an autonomous seat at the table.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent for a pooled identity, picking the strategy from
// the identity's difficulty. Unknown IDs get the standard strategy.
func NewAgent(userID string, rng *rand.Rand) (*Agent, error) {
	level := BotLevelStandard
	name := GetBotDisplayName(userID)
	if identity, ok := GetBotConfig(userID); ok {
		level = LevelFromDifficulty(identity.Difficulty)
	}

	brain, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}

// PlayAtSeat asks the agent for its play-phase move.
func (a *Agent) PlayAtSeat(round *domain.Round, seat int) ([]domain.Card, error) {
	return a.Strategy.ChoosePlay(round, seat)
}

// DrawAtSeat asks the agent which pile to draw from.
func (a *Agent) DrawAtSeat(round *domain.Round, seat int) (domain.DrawSource, error) {
	return a.Strategy.ChooseDraw(round, seat)
}

// DiscardAtSeat asks the agent for its classic-rules discard.
func (a *Agent) DiscardAtSeat(round *domain.Round, seat int) (domain.Card, error) {
	return a.Strategy.ChooseDiscard(round, seat)
}

// WantsShow asks the agent whether it declares this turn.
func (a *Agent) WantsShow(round *domain.Round, seat int) bool {
	return a.Strategy.ShouldDeclare(round, seat)
}
