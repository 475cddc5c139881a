package domain

import "math/rand"

// NewDeck returns the 52-card deck in canonical suit-major, rank-minor order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := RankAce; r <= RankKing; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck. The input is not mutated.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal removes n cards from the top of the deck (the end of the slice) and
// returns them alongside the remaining deck. Dealt cards keep draw order.
func Deal(deck []Card, n int) ([]Card, []Card) {
	if n < 0 || n > len(deck) {
		return nil, deck
	}
	cut := len(deck) - n
	dealt := make([]Card, n)
	copy(dealt, deck[cut:])
	return dealt, deck[:cut]
}

// RemoveCards removes the specified cards from a hand and returns the updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// ContainsAll reports whether hand holds every card in want, duplicates included.
func ContainsAll(hand []Card, want []Card) bool {
	wantCounts := make(map[Card]int, len(want))
	for _, card := range want {
		wantCounts[card]++
	}
	for _, card := range hand {
		if wantCounts[card] > 0 {
			wantCounts[card]--
		}
	}
	for _, remaining := range wantCounts {
		if remaining > 0 {
			return false
		}
	}
	return true
}

// RankCounts tallies how many cards of each rank the hand holds.
func RankCounts(hand []Card) map[int]int {
	counts := make(map[int]int)
	for _, card := range hand {
		counts[card.Rank]++
	}
	return counts
}

// LargestRankGroup returns the cards of the most numerous rank in the hand.
// Ties resolve to the higher rank. An empty hand yields nil.
func LargestRankGroup(hand []Card) []Card {
	counts := RankCounts(hand)
	bestRank, bestCount := -1, 0
	for rank, count := range counts {
		if count > bestCount || (count == bestCount && rank > bestRank) {
			bestRank, bestCount = rank, count
		}
	}
	if bestRank < 0 {
		return nil
	}
	group := make([]Card, 0, bestCount)
	for _, card := range hand {
		if card.Rank == bestRank {
			group = append(group, card)
		}
	}
	return group
}
