package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// countAllCards verifies the 52-card partition invariant: deck, discard and
// every hand together hold each of the 52 cards exactly once.
func countAllCards(t *testing.T, r *Round) {
	t.Helper()

	seen := make(map[Card]int)
	total := 0
	add := func(cards []Card) {
		for _, c := range cards {
			seen[c]++
			total++
		}
	}
	add(r.Deck)
	add(r.Discard)
	for _, s := range r.Seats {
		add(s.Hand)
	}

	if total != 52 {
		t.Fatalf("card total = %d, want 52", total)
	}
	for card, n := range seen {
		if n != 1 {
			t.Fatalf("card %s appears %d times", card, n)
		}
	}
}

func TestNewRoundDealsSevenEach(t *testing.T) {
	r, err := NewRound("r1", []string{"u1", "b1", "b2", "b3"}, RulesPlayThenDraw, testRng())
	if err != nil {
		t.Fatalf("NewRound error: %v", err)
	}

	for i, s := range r.Seats {
		if len(s.Hand) != StartingHandSize {
			t.Fatalf("seat %d hand size = %d, want %d", i, len(s.Hand), StartingHandSize)
		}
		if s.HasActedOnce {
			t.Fatalf("seat %d should not have acted yet", i)
		}
	}
	if len(r.Discard) != 1 {
		t.Fatalf("opening discard size = %d, want 1", len(r.Discard))
	}
	if len(r.Deck) != 52-4*StartingHandSize-1 {
		t.Fatalf("deck size = %d, want %d", len(r.Deck), 52-4*StartingHandSize-1)
	}
	if r.TurnSeat != 0 || r.Phase != PhasePlay || r.LastPlay != nil {
		t.Fatalf("unexpected initial turn state: seat=%d phase=%s lastPlay=%v", r.TurnSeat, r.Phase, r.LastPlay)
	}
	countAllCards(t, r)
}

func TestNewRoundRejectsImpossibleRosters(t *testing.T) {
	tests := []struct {
		name  string
		seats int
		want  error
	}{
		{name: "one seat", seats: 1, want: ErrTooFewSeats},
		{name: "seven seats fits", seats: 7, want: nil},
		{name: "eight seats exceeds the deck", seats: 8, want: ErrNotEnoughCards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.seats)
			for i := range ids {
				ids[i] = "u"
			}
			_, err := NewRound("r", ids, RulesPlayThenDraw, testRng())
			if err != tt.want {
				t.Fatalf("NewRound(%d seats) error = %v, want %v", tt.seats, err, tt.want)
			}
		})
	}
}

// fixedRound builds a round with hand-picked state for scenario tests.
func fixedRound(rules RuleSet, hands ...[]Card) *Round {
	full := NewDeck()
	seats := make([]*SeatState, len(hands))
	inHands := make(map[Card]bool)
	for i, hand := range hands {
		seats[i] = &SeatState{UserID: "u", Hand: append([]Card{}, hand...)}
		for _, c := range hand {
			inHands[c] = true
		}
	}

	var deck []Card
	for _, c := range full {
		if !inHands[c] {
			deck = append(deck, c)
		}
	}
	// Bottom deck card opens the discard pile.
	opening := deck[0]
	deck = deck[1:]

	r := &Round{
		ID:      "fixed",
		Rules:   rules,
		Deck:    deck,
		Discard: []Card{opening},
		Seats:   seats,
		rng:     testRng(),
	}
	r.Phase = r.startPhase()
	return r
}

func TestPlayThenDrawScenario(t *testing.T) {
	// Seat 0 holds [3H 3D 3C 7S 9H KD 2C] and plays the threes.
	hand := []Card{
		{Suit: "H", Rank: 2}, {Suit: "D", Rank: 2}, {Suit: "C", Rank: 2},
		{Suit: "S", Rank: 6}, {Suit: "H", Rank: 8}, {Suit: "D", Rank: 12}, {Suit: "C", Rank: 1},
	}
	r := fixedRound(RulesPlayThenDraw, hand, nil, nil, nil)

	for _, c := range hand[:3] {
		if err := r.Select(0, c); err != nil {
			t.Fatalf("Select(%s) error: %v", c, err)
		}
	}
	if err := r.PlaySelected(0); err != nil {
		t.Fatalf("PlaySelected error: %v", err)
	}

	if top, _ := r.DiscardTop(); top != (Card{Suit: "C", Rank: 2}) {
		t.Fatalf("discard top = %s, want 3C", top)
	}
	wantHand := []Card{{Suit: "S", Rank: 6}, {Suit: "H", Rank: 8}, {Suit: "D", Rank: 12}, {Suit: "C", Rank: 1}}
	if !reflect.DeepEqual(r.Seats[0].Hand, wantHand) {
		t.Fatalf("hand after play = %v, want %v", r.Seats[0].Hand, wantHand)
	}
	if r.Phase != PhaseDraw {
		t.Fatalf("phase = %s, want draw", r.Phase)
	}
	if r.LastPlay == nil || r.LastPlay.Seat != 0 || r.LastPlay.Rank != 2 || r.LastPlay.Count != 3 {
		t.Fatalf("lastPlay = %+v, want seat 0 rank 2 count 3", r.LastPlay)
	}

	if _, err := r.Draw(0, DrawClosed); err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if len(r.Seats[0].Hand) != 5 {
		t.Fatalf("hand size after draw = %d, want 5", len(r.Seats[0].Hand))
	}
	if r.Phase != PhasePlay || r.TurnSeat != 1 {
		t.Fatalf("after draw: phase=%s turnSeat=%d, want play/1", r.Phase, r.TurnSeat)
	}
	if !r.Seats[0].HasActedOnce {
		t.Fatalf("seat 0 should be marked as having acted")
	}
}

func TestSelectRestartsOnDifferentRank(t *testing.T) {
	hand := []Card{{Suit: "H", Rank: 2}, {Suit: "D", Rank: 2}, {Suit: "S", Rank: 6}}
	r := fixedRound(RulesPlayThenDraw, hand, nil)

	if err := r.Select(0, hand[0]); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if err := r.Select(0, hand[1]); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if len(r.Selection) != 2 {
		t.Fatalf("selection size = %d, want 2", len(r.Selection))
	}

	// A different rank must restart the staging with only the new card.
	if err := r.Select(0, hand[2]); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if !reflect.DeepEqual(r.Selection, []Card{hand[2]}) {
		t.Fatalf("selection = %v, want just %s", r.Selection, hand[2])
	}

	// Re-selecting a staged card is a no-op.
	if err := r.Select(0, hand[2]); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if len(r.Selection) != 1 {
		t.Fatalf("selection grew on duplicate select: %v", r.Selection)
	}
}

func TestRejectionsLeaveStateUntouched(t *testing.T) {
	hand0 := []Card{{Suit: "H", Rank: 2}, {Suit: "D", Rank: 2}, {Suit: "S", Rank: 6}}
	hand1 := []Card{{Suit: "C", Rank: 9}}

	tests := []struct {
		name string
		op   func(r *Round) error
		want error
	}{
		{
			name: "select out of turn",
			op:   func(r *Round) error { return r.Select(1, Card{Suit: "C", Rank: 9}) },
			want: ErrNotYourTurn,
		},
		{
			name: "draw in play phase",
			op: func(r *Round) error {
				_, err := r.Draw(0, DrawClosed)
				return err
			},
			want: ErrWrongPhase,
		},
		{
			name: "play with empty selection",
			op:   func(r *Round) error { return r.PlaySelected(0) },
			want: ErrEmptySelection,
		},
		{
			name: "play mixed ranks",
			op: func(r *Round) error {
				return r.PlayGroup(0, []Card{{Suit: "H", Rank: 2}, {Suit: "S", Rank: 6}})
			},
			want: ErrMixedRanks,
		},
		{
			name: "play unheld card",
			op: func(r *Round) error {
				return r.PlayGroup(0, []Card{{Suit: "S", Rank: 2}})
			},
			want: ErrCardNotHeld,
		},
		{
			name: "seat out of range",
			op:   func(r *Round) error { return r.Select(9, Card{Suit: "H", Rank: 2}) },
			want: ErrUnknownSeat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fixedRound(RulesPlayThenDraw, hand0, hand1)
			beforeDeck := append([]Card{}, r.Deck...)
			beforeDiscard := append([]Card{}, r.Discard...)
			beforeHand := append([]Card{}, r.Seats[0].Hand...)

			if err := tt.op(r); err != tt.want {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if !reflect.DeepEqual(r.Deck, beforeDeck) ||
				!reflect.DeepEqual(r.Discard, beforeDiscard) ||
				!reflect.DeepEqual(r.Seats[0].Hand, beforeHand) {
				t.Fatalf("rejected operation mutated round state")
			}
			if r.TurnSeat != 0 || r.Phase != PhasePlay {
				t.Fatalf("rejected operation advanced the turn")
			}
			countAllCards(t, r)
		})
	}
}

func TestDrawFromEmptyPiles(t *testing.T) {
	hand := []Card{{Suit: "H", Rank: 2}}
	r := fixedRound(RulesPlayThenDraw, hand, nil)
	r.Phase = PhaseDraw

	r.Discard = nil
	if _, err := r.Draw(0, DrawOpen); err != ErrEmptyPile {
		t.Fatalf("open draw from empty pile error = %v, want %v", err, ErrEmptyPile)
	}
	if r.Phase != PhaseDraw || len(r.Seats[0].Hand) != 1 {
		t.Fatalf("failed draw mutated state")
	}

	// Closed draw with nothing to rebuild from.
	r.Deck = nil
	r.Discard = []Card{{Suit: "C", Rank: 9}}
	if _, err := r.Draw(0, DrawClosed); err != ErrEmptyPile {
		t.Fatalf("closed draw with bare piles error = %v, want %v", err, ErrEmptyPile)
	}
}

func TestClosedDrawReshufflesFromDiscard(t *testing.T) {
	hand := []Card{{Suit: "H", Rank: 2}}
	r := fixedRound(RulesPlayThenDraw, hand, nil)
	r.Phase = PhaseDraw

	top := Card{Suit: "C", Rank: 9}
	buried := []Card{{Suit: "D", Rank: 4}, {Suit: "S", Rank: 11}}
	r.Deck = nil
	r.Discard = append(append([]Card{}, buried...), top)

	card, err := r.Draw(0, DrawClosed)
	if err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if card == top {
		t.Fatalf("reshuffle must keep the discard top out of the deck")
	}
	if gotTop, _ := r.DiscardTop(); gotTop != top {
		t.Fatalf("discard top after reshuffle = %s, want %s", gotTop, top)
	}
	// Two buried cards: one drawn, one back in the deck.
	if len(r.Deck) != 1 {
		t.Fatalf("deck size after reshuffle = %d, want 1", len(r.Deck))
	}
}

func TestClassicTurnStructure(t *testing.T) {
	hand0 := []Card{{Suit: "H", Rank: 2}, {Suit: "D", Rank: 5}}
	hand1 := []Card{{Suit: "C", Rank: 9}}
	r := fixedRound(RulesClassic, hand0, hand1)

	if r.Phase != PhaseDraw {
		t.Fatalf("classic round should open in the draw phase, got %s", r.Phase)
	}

	// No play requirement: group plays are rejected outright.
	if err := r.PlayGroup(0, []Card{hand0[0]}); err != ErrWrongPhase {
		t.Fatalf("PlayGroup in classic error = %v, want %v", err, ErrWrongPhase)
	}

	drawn, err := r.Draw(0, DrawOpen)
	if err != nil {
		t.Fatalf("Draw error: %v", err)
	}
	if r.Phase != PhaseDiscard || r.TurnSeat != 0 {
		t.Fatalf("after classic draw: phase=%s seat=%d, want discard/0", r.Phase, r.TurnSeat)
	}

	if err := r.DiscardCard(0, drawn); err != nil {
		t.Fatalf("DiscardCard error: %v", err)
	}
	if r.Phase != PhaseDraw || r.TurnSeat != 1 {
		t.Fatalf("after classic discard: phase=%s seat=%d, want draw/1", r.Phase, r.TurnSeat)
	}
	countAllCards(t, r)
}

func TestTurnAdvancesRoundRobin(t *testing.T) {
	r, err := NewRound("r1", []string{"a", "b", "c"}, RulesClassic, testRng())
	if err != nil {
		t.Fatalf("NewRound error: %v", err)
	}

	for turn := 0; turn < 6; turn++ {
		seat := r.TurnSeat
		if seat != turn%3 {
			t.Fatalf("turn %d at seat %d, want %d", turn, seat, turn%3)
		}
		card, err := r.Draw(seat, DrawClosed)
		if err != nil {
			t.Fatalf("Draw error: %v", err)
		}
		if err := r.DiscardCard(seat, card); err != nil {
			t.Fatalf("DiscardCard error: %v", err)
		}
		countAllCards(t, r)
	}
}
