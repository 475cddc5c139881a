package bot

import (
	"math/rand"

	botinternal "showdown/internal/bot/internal"
	"showdown/internal/domain"
)

// DrifterBot is the easy opponent. It plays one card at a time, flips a coin
// between the piles, and declares on a whim whether or not the show is there.
type DrifterBot struct {
	rng    *rand.Rand
	tuning Tuning
}

func (b *DrifterBot) ChoosePlay(round *domain.Round, seat int) ([]domain.Card, error) {
	hand := round.Hand(seat)
	if len(hand) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return []domain.Card{hand[b.rng.Intn(len(hand))]}, nil
}

func (b *DrifterBot) ChooseDraw(round *domain.Round, seat int) (domain.DrawSource, error) {
	if _, ok := round.DiscardTop(); !ok {
		return domain.DrawClosed, nil
	}
	if len(round.Deck) == 0 && len(round.Discard) < 2 {
		return domain.DrawOpen, nil
	}
	if b.rng.Float64() < b.tuning.OpenDrawProbability {
		return domain.DrawOpen, nil
	}
	return domain.DrawClosed, nil
}

func (b *DrifterBot) ChooseDiscard(round *domain.Round, seat int) (domain.Card, error) {
	card, ok := botinternal.HighestCard(round.Hand(seat))
	if !ok {
		return domain.Card{}, domain.ErrEmptySelection
	}
	return card, nil
}

// ShouldDeclare rolls blind. A bad call just loses the drifter its stake.
func (b *DrifterBot) ShouldDeclare(round *domain.Round, seat int) bool {
	return round.AllSeatsActed() && b.rng.Float64() < b.tuning.DeclareCheckProbability
}
