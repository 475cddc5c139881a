package bot

import (
	"math/rand"

	botinternal "showdown/internal/bot/internal"
	"showdown/internal/domain"
)

// StandardBot is the default opponent. It leads with its largest rank group,
// chases matching open discards, and occasionally checks for a show.
type StandardBot struct {
	rng    *rand.Rand
	tuning Tuning
}

func (b *StandardBot) ChoosePlay(round *domain.Round, seat int) ([]domain.Card, error) {
	group := domain.LargestRankGroup(round.Hand(seat))
	if len(group) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if len(group) > 1 && b.rng.Float64() < b.tuning.PlayFullGroupProbability {
		return group, nil
	}
	return group[:1], nil
}

func (b *StandardBot) ChooseDraw(round *domain.Round, seat int) (domain.DrawSource, error) {
	top, ok := round.DiscardTop()
	if !ok {
		return domain.DrawClosed, nil
	}
	// A closed draw needs either deck cards or enough discards to rebuild
	// the deck from; when neither holds, the open pile is the only source.
	if len(round.Deck) == 0 && len(round.Discard) < 2 {
		return domain.DrawOpen, nil
	}
	if botinternal.HoldsRank(round.Hand(seat), top.Rank) && b.rng.Float64() < b.tuning.OpenDrawProbability {
		return domain.DrawOpen, nil
	}
	return domain.DrawClosed, nil
}

func (b *StandardBot) ChooseDiscard(round *domain.Round, seat int) (domain.Card, error) {
	card, ok := botinternal.HighestSingleton(round.Hand(seat))
	if !ok {
		return domain.Card{}, domain.ErrEmptySelection
	}
	return card, nil
}

func (b *StandardBot) ShouldDeclare(round *domain.Round, seat int) bool {
	if b.rng.Float64() >= b.tuning.DeclareCheckProbability {
		return false
	}
	return domain.HasShow(round.Hand(seat)) && round.AllSeatsActed()
}
