package internal

import (
	"testing"

	"showdown/internal/domain"
)

func TestGroupsOrdering(t *testing.T) {
	hand := []domain.Card{
		{Suit: "H", Rank: 4}, {Suit: "D", Rank: 4},
		{Suit: "S", Rank: 9}, {Suit: "C", Rank: 9},
		{Suit: "H", Rank: 1},
	}

	groups := Groups(hand)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	// Pairs first, tie broken toward the higher rank, singleton last.
	if groups[0].Rank != 9 || len(groups[0].Cards) != 2 {
		t.Fatalf("expected rank-9 pair first, got rank %d size %d", groups[0].Rank, len(groups[0].Cards))
	}
	if groups[1].Rank != 4 {
		t.Fatalf("expected rank-4 pair second, got rank %d", groups[1].Rank)
	}
	if groups[2].Rank != 1 || len(groups[2].Cards) != 1 {
		t.Fatalf("expected rank-1 singleton last, got rank %d size %d", groups[2].Rank, len(groups[2].Cards))
	}
}

func TestHoldsRank(t *testing.T) {
	hand := []domain.Card{{Suit: "H", Rank: 4}, {Suit: "S", Rank: 9}}
	if !HoldsRank(hand, 4) {
		t.Fatalf("expected rank 4 to be held")
	}
	if HoldsRank(hand, 7) {
		t.Fatalf("did not expect rank 7 to be held")
	}
}

func TestHighestSingleton(t *testing.T) {
	hand := []domain.Card{
		{Suit: "H", Rank: 11}, {Suit: "D", Rank: 11}, // pair, protected
		{Suit: "S", Rank: 3}, {Suit: "C", Rank: 8},
	}
	card, ok := HighestSingleton(hand)
	if !ok {
		t.Fatalf("expected a singleton")
	}
	if card.Rank != 8 {
		t.Fatalf("expected the rank-8 singleton, got rank %d", card.Rank)
	}
}

func TestHighestSingletonFallsBackToHighestCard(t *testing.T) {
	hand := []domain.Card{
		{Suit: "H", Rank: 11}, {Suit: "D", Rank: 11},
		{Suit: "S", Rank: 3}, {Suit: "C", Rank: 3},
	}
	card, ok := HighestSingleton(hand)
	if !ok {
		t.Fatalf("expected a fallback card")
	}
	if card.Rank != 11 {
		t.Fatalf("expected rank 11 fallback, got rank %d", card.Rank)
	}

	if _, ok := HighestSingleton(nil); ok {
		t.Fatalf("empty hand must report no card")
	}
}
