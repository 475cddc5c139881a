package bot

import (
	"math/rand"

	botinternal "showdown/internal/bot/internal"
	"showdown/internal/domain"
)

// SharpBot is the hard opponent. It protects its biggest group, feeds the
// discard from its weakest rank, and calls the show the moment it is legal.
type SharpBot struct {
	rng    *rand.Rand
	tuning Tuning
}

func (b *SharpBot) ChoosePlay(round *domain.Round, seat int) ([]domain.Card, error) {
	groups := botinternal.Groups(round.Hand(seat))
	if len(groups) == 0 {
		return nil, domain.ErrEmptySelection
	}
	// One group covering the whole hand leaves nothing to protect.
	if len(groups) == 1 {
		if b.rng.Float64() < b.tuning.PlayFullGroupProbability {
			return groups[0].Cards, nil
		}
		return groups[0].Cards[:1], nil
	}
	// Shed a card from the weakest group and keep the show material intact.
	weakest := groups[len(groups)-1]
	return weakest.Cards[:1], nil
}

func (b *SharpBot) ChooseDraw(round *domain.Round, seat int) (domain.DrawSource, error) {
	top, ok := round.DiscardTop()
	if !ok {
		return domain.DrawClosed, nil
	}
	if len(round.Deck) == 0 && len(round.Discard) < 2 {
		return domain.DrawOpen, nil
	}
	if botinternal.HoldsRank(round.Hand(seat), top.Rank) && b.rng.Float64() < b.tuning.OpenDrawProbability {
		return domain.DrawOpen, nil
	}
	return domain.DrawClosed, nil
}

func (b *SharpBot) ChooseDiscard(round *domain.Round, seat int) (domain.Card, error) {
	card, ok := botinternal.HighestSingleton(round.Hand(seat))
	if !ok {
		return domain.Card{}, domain.ErrEmptySelection
	}
	return card, nil
}

func (b *SharpBot) ShouldDeclare(round *domain.Round, seat int) bool {
	return domain.HasShow(round.Hand(seat)) && round.AllSeatsActed()
}
