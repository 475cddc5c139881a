package domain

import (
	"errors"
	"math/rand"
)

// RuleSet selects which of the two turn structures a round uses.
type RuleSet string

const (
	// RulesPlayThenDraw requires a same-rank group play before the draw.
	RulesPlayThenDraw RuleSet = "play_then_draw"
	// RulesClassic is the simpler draw-then-discard turn with no play requirement.
	RulesClassic RuleSet = "classic"
)

// TurnPhase is the step of the acting seat's turn.
type TurnPhase string

const (
	// PhasePlay expects a staged same-rank group commit (play_then_draw only).
	PhasePlay TurnPhase = "play"
	// PhaseDraw expects exactly one draw from the open or closed pile.
	PhaseDraw TurnPhase = "draw"
	// PhaseDiscard expects a single discard (classic only).
	PhaseDiscard TurnPhase = "discard"
)

// DrawSource identifies which pile a draw takes from.
type DrawSource string

const (
	// DrawOpen takes the top of the discard pile.
	DrawOpen DrawSource = "open"
	// DrawClosed takes the top of the face-down deck.
	DrawClosed DrawSource = "closed"
)

// StartingHandSize is the number of cards dealt to each seat.
const StartingHandSize = 7

var (
	ErrNotEnoughCards = errors.New("not enough cards for requested seats")
	ErrTooFewSeats    = errors.New("a round needs at least two seats")
	ErrUnknownSeat    = errors.New("seat index out of range")
	ErrRoundOver      = errors.New("round is already over")
	ErrNotYourTurn    = errors.New("not the acting seat")
	ErrWrongPhase     = errors.New("action not legal in current phase")
	ErrEmptySelection = errors.New("no cards staged to play")
	ErrCardNotHeld    = errors.New("card not in seat's hand")
	ErrMixedRanks     = errors.New("played group must share one rank")
	ErrEmptyPile      = errors.New("draw source is empty")
	ErrShowTooEarly   = errors.New("show requires every seat to have completed a turn")
)

// LastPlay records the most recent committed group for observers.
type LastPlay struct {
	Seat  int `json:"seat"`
	Rank  int `json:"rank"`
	Count int `json:"count"`
}

// SeatState holds the per-seat round state.
type SeatState struct {
	UserID       string
	Hand         []Card
	HasActedOnce bool
}

// Round is the authoritative mutable state of one Showdown round. It is owned
// by the caller and mutated only through the turn-engine methods below; every
// rejected operation returns an error and leaves the round untouched.
type Round struct {
	ID      string
	Rules   RuleSet
	Deck    []Card
	Discard []Card
	Seats   []*SeatState

	TurnSeat int
	Phase    TurnPhase
	LastPlay *LastPlay

	// Selection is the acting seat's staged cards. It never survives past
	// the turn that created it.
	Selection []Card

	Over bool

	rng *rand.Rand
}

// NewRound builds, shuffles and deals a fresh round for the given seat roster.
// Seat count and card supply are validated before any dealing happens.
func NewRound(id string, seatIDs []string, rules RuleSet, rng *rand.Rand) (*Round, error) {
	if len(seatIDs) < 2 {
		return nil, ErrTooFewSeats
	}
	if len(seatIDs)*StartingHandSize+1 > 52 {
		return nil, ErrNotEnoughCards
	}

	deck := ShuffleDeck(NewDeck(), rng)

	seats := make([]*SeatState, len(seatIDs))
	for i, userID := range seatIDs {
		var hand []Card
		hand, deck = Deal(deck, StartingHandSize)
		seats[i] = &SeatState{UserID: userID, Hand: hand}
	}

	var opening []Card
	opening, deck = Deal(deck, 1)

	r := &Round{
		ID:      id,
		Rules:   rules,
		Deck:    deck,
		Discard: opening,
		Seats:   seats,
		rng:     rng,
	}
	r.Phase = r.startPhase()
	return r, nil
}

func (r *Round) startPhase() TurnPhase {
	if r.Rules == RulesClassic {
		return PhaseDraw
	}
	return PhasePlay
}

// DiscardTop returns the visible top of the discard pile.
func (r *Round) DiscardTop() (Card, bool) {
	if len(r.Discard) == 0 {
		return Card{}, false
	}
	return r.Discard[len(r.Discard)-1], true
}

// Hand returns the cards held by a seat.
func (r *Round) Hand(seat int) []Card {
	if seat < 0 || seat >= len(r.Seats) {
		return nil
	}
	return r.Seats[seat].Hand
}

// AllSeatsActed reports whether every seat has completed at least one turn.
func (r *Round) AllSeatsActed() bool {
	for _, s := range r.Seats {
		if !s.HasActedOnce {
			return false
		}
	}
	return true
}

func (r *Round) requireTurn(seat int, phase TurnPhase) error {
	if r.Over {
		return ErrRoundOver
	}
	if seat < 0 || seat >= len(r.Seats) {
		return ErrUnknownSeat
	}
	if seat != r.TurnSeat {
		return ErrNotYourTurn
	}
	if r.Phase != phase {
		return ErrWrongPhase
	}
	return nil
}

// Select stages a card for the acting seat in the play phase. Staging a card
// of a different rank than the current selection restarts the selection with
// just the new card.
func (r *Round) Select(seat int, card Card) error {
	if err := r.requireTurn(seat, PhasePlay); err != nil {
		return err
	}
	if !ContainsAll(r.Seats[seat].Hand, []Card{card}) {
		return ErrCardNotHeld
	}
	if len(r.Selection) > 0 && r.Selection[0].Rank != card.Rank {
		r.Selection = []Card{card}
		return nil
	}
	for _, staged := range r.Selection {
		if staged == card {
			return nil
		}
	}
	r.Selection = append(r.Selection, card)
	return nil
}

// Deselect removes a staged card from the acting seat's selection.
func (r *Round) Deselect(seat int, card Card) error {
	if err := r.requireTurn(seat, PhasePlay); err != nil {
		return err
	}
	for i, staged := range r.Selection {
		if staged == card {
			r.Selection = append(r.Selection[:i], r.Selection[i+1:]...)
			return nil
		}
	}
	return ErrCardNotHeld
}

// PlaySelected commits the staged selection as the turn's group play.
func (r *Round) PlaySelected(seat int) error {
	if err := r.requireTurn(seat, PhasePlay); err != nil {
		return err
	}
	if len(r.Selection) == 0 {
		return ErrEmptySelection
	}
	return r.PlayGroup(seat, r.Selection)
}

// PlayGroup commits a same-rank group directly, bypassing the staging step.
// Automated seats use this path; legality checks are identical to PlaySelected.
func (r *Round) PlayGroup(seat int, cards []Card) error {
	if err := r.requireTurn(seat, PhasePlay); err != nil {
		return err
	}
	if len(cards) == 0 {
		return ErrEmptySelection
	}
	rank := cards[0].Rank
	for _, card := range cards[1:] {
		if card.Rank != rank {
			return ErrMixedRanks
		}
	}
	if !ContainsAll(r.Seats[seat].Hand, cards) {
		return ErrCardNotHeld
	}

	played := append([]Card{}, cards...)
	r.Seats[seat].Hand = RemoveCards(r.Seats[seat].Hand, played)
	r.Discard = append(r.Discard, played...)
	r.LastPlay = &LastPlay{Seat: seat, Rank: rank, Count: len(played)}
	r.Selection = nil
	r.Phase = PhaseDraw
	return nil
}

// Draw takes exactly one card from the chosen pile into the acting seat's
// hand. In play_then_draw rules this completes the turn; in classic rules the
// seat still owes a discard.
func (r *Round) Draw(seat int, source DrawSource) (Card, error) {
	if err := r.requireTurn(seat, PhaseDraw); err != nil {
		return Card{}, err
	}

	var card Card
	switch source {
	case DrawOpen:
		if len(r.Discard) == 0 {
			return Card{}, ErrEmptyPile
		}
		card = r.Discard[len(r.Discard)-1]
		r.Discard = r.Discard[:len(r.Discard)-1]
	case DrawClosed:
		if len(r.Deck) == 0 {
			// Rebuild the closed pile from everything under the discard top.
			if len(r.Discard) < 2 {
				return Card{}, ErrEmptyPile
			}
			top := r.Discard[len(r.Discard)-1]
			r.Deck = ShuffleDeck(r.Discard[:len(r.Discard)-1], r.rng)
			r.Discard = []Card{top}
		}
		card = r.Deck[len(r.Deck)-1]
		r.Deck = r.Deck[:len(r.Deck)-1]
	default:
		return Card{}, ErrEmptyPile
	}

	r.Seats[seat].Hand = append(r.Seats[seat].Hand, card)
	r.Seats[seat].HasActedOnce = true

	if r.Rules == RulesClassic {
		r.Phase = PhaseDiscard
	} else {
		r.advanceTurn()
	}
	return card, nil
}

// DiscardCard puts one held card onto the discard pile and ends the turn.
// Only legal in classic rules after the draw.
func (r *Round) DiscardCard(seat int, card Card) error {
	if err := r.requireTurn(seat, PhaseDiscard); err != nil {
		return err
	}
	if !ContainsAll(r.Seats[seat].Hand, []Card{card}) {
		return ErrCardNotHeld
	}
	r.Seats[seat].Hand = RemoveCards(r.Seats[seat].Hand, []Card{card})
	r.Discard = append(r.Discard, card)
	r.advanceTurn()
	return nil
}

func (r *Round) advanceTurn() {
	r.TurnSeat = (r.TurnSeat + 1) % len(r.Seats)
	r.Selection = nil
	r.Phase = r.startPhase()
}
