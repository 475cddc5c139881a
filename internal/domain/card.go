package domain

import "fmt"

// Card is a single playing card in the Showdown deck.
type Card struct {
	Suit string `json:"suit"` // "S","H","D","C"
	Rank int    `json:"rank"` // 0..12 (A=0, K=12)
}

// Suits in canonical deck order.
var Suits = []string{"S", "H", "D", "C"}

var rankNames = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const (
	// RankAce is the lowest rank; Showdown does not treat aces as high.
	RankAce = 0
	// RankKing is the highest rank.
	RankKing = 12
)

// RankName returns the display name for a rank index.
func RankName(rank int) string {
	if rank < 0 || rank >= len(rankNames) {
		return "?"
	}
	return rankNames[rank]
}

// String renders the card in the compact rank+suit form used on the wire, e.g. "10H".
func (c Card) String() string {
	return fmt.Sprintf("%s%s", RankName(c.Rank), c.Suit)
}

// Valid reports whether the card is one of the 52 legal combinations.
func (c Card) Valid() bool {
	if c.Rank < RankAce || c.Rank > RankKing {
		return false
	}
	switch c.Suit {
	case "S", "H", "D", "C":
		return true
	default:
		return false
	}
}
