package internal

import (
	"sort"

	"showdown/internal/domain"
)

// RankGroup is the set of held cards sharing one rank.
type RankGroup struct {
	Rank  int
	Cards []domain.Card
}

// Groups splits a hand into rank groups ordered by count descending, then
// rank descending, so the head of the slice is the strongest play candidate.
func Groups(hand []domain.Card) []RankGroup {
	byRank := make(map[int][]domain.Card)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	groups := make([]RankGroup, 0, len(byRank))
	for rank, cards := range byRank {
		groups = append(groups, RankGroup{Rank: rank, Cards: cards})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Cards) != len(groups[j].Cards) {
			return len(groups[i].Cards) > len(groups[j].Cards)
		}
		return groups[i].Rank > groups[j].Rank
	})
	return groups
}

// HoldsRank reports whether the hand carries at least one card of the rank.
func HoldsRank(hand []domain.Card, rank int) bool {
	for _, c := range hand {
		if c.Rank == rank {
			return true
		}
	}
	return false
}

// HighestCard returns the highest-rank card in the hand.
func HighestCard(hand []domain.Card) (domain.Card, bool) {
	if len(hand) == 0 {
		return domain.Card{}, false
	}
	best := hand[0]
	for _, c := range hand[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best, true
}

// HighestSingleton returns the highest-rank card that belongs to no pair or
// better, falling back to the overall highest card when every rank is
// grouped. Discarding it sheds dead weight without breaking groups.
func HighestSingleton(hand []domain.Card) (domain.Card, bool) {
	counts := domain.RankCounts(hand)
	var best domain.Card
	found := false
	for _, c := range hand {
		if counts[c.Rank] != 1 {
			continue
		}
		if !found || c.Rank > best.Rank {
			best = c
			found = true
		}
	}
	if found {
		return best, true
	}
	return HighestCard(hand)
}
