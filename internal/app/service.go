package app

import (
	"errors"
	"math/rand"
	"time"

	"showdown/internal/domain"

	"github.com/google/uuid"
)

// Stakes is the coin settlement policy applied when a round ends. The engine
// never stores balances; the host settles the reported deltas.
type Stakes struct {
	WinReward   int64
	LosePenalty int64
}

// Service contains Showdown use-cases operating on caller-owned round state.
type Service struct {
	rng    *rand.Rand
	stakes Stakes
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand, stakes Stakes) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, stakes: stakes}
}

var (
	ErrNoActiveRound   = errors.New("no active round")
	ErrRoundInProgress = errors.New("a round is already in progress")
	ErrNoOccupiedSeats = errors.New("no occupied seats in roster")
)

// Rng exposes the service's random source for decision policies that must
// share it.
func (s *Service) Rng() *rand.Rand {
	return s.rng
}

// StartRound deals a fresh round for the occupied seats in the roster, in
// roster order. Empty strings mark unoccupied seats and are skipped.
func (s *Service) StartRound(roster []string, rules domain.RuleSet) (*domain.Round, []Event, error) {
	seatIDs := make([]string, 0, len(roster))
	for _, userID := range roster {
		if userID != "" {
			seatIDs = append(seatIDs, userID)
		}
	}
	if len(seatIDs) == 0 {
		return nil, nil, ErrNoOccupiedSeats
	}

	round, err := domain.NewRound(uuid.NewString(), seatIDs, rules, s.rng)
	if err != nil {
		return nil, nil, err
	}

	events := make([]Event, 0, len(seatIDs)+1)
	discardTop, _ := round.DiscardTop()
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundID:       round.ID,
			Rules:         round.Rules,
			FirstTurnSeat: round.TurnSeat,
			DeckSize:      len(round.Deck),
			DiscardTop:    discardTop,
		},
	})
	for i, seat := range round.Seats {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				Seat:   i,
				UserID: seat.UserID,
				Hand:   seat.Hand,
			},
			Recipients: []string{seat.UserID},
		})
	}

	return round, events, nil
}

// SelectCard stages a card for the acting seat. No event is emitted; staging
// is visible only to the actor and the host re-reads the selection directly.
func (s *Service) SelectCard(round *domain.Round, seat int, card domain.Card) error {
	if round == nil {
		return ErrNoActiveRound
	}
	return round.Select(seat, card)
}

// DeselectCard removes a staged card for the acting seat.
func (s *Service) DeselectCard(round *domain.Round, seat int, card domain.Card) error {
	if round == nil {
		return ErrNoActiveRound
	}
	return round.Deselect(seat, card)
}

// PlaySelected commits the staged selection as the seat's group play.
func (s *Service) PlaySelected(round *domain.Round, seat int) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	staged := append([]domain.Card{}, round.Selection...)
	if err := round.PlaySelected(seat); err != nil {
		return nil, err
	}
	return s.playedEvents(round, seat, staged), nil
}

// PlayGroup commits a same-rank group for an automated seat through the same
// legality checks as PlaySelected.
func (s *Service) PlayGroup(round *domain.Round, seat int, cards []domain.Card) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	if err := round.PlayGroup(seat, cards); err != nil {
		return nil, err
	}
	return s.playedEvents(round, seat, cards), nil
}

func (s *Service) playedEvents(round *domain.Round, seat int, cards []domain.Card) []Event {
	return []Event{{
		Kind: EventCardsPlayed,
		Payload: CardsPlayedPayload{
			Seat:         seat,
			Rank:         round.LastPlay.Rank,
			Cards:        append([]domain.Card{}, cards...),
			HandSize:     len(round.Hand(seat)),
			NextPhase:    round.Phase,
			NextTurnSeat: round.TurnSeat,
		},
	}}
}

// DrawCard takes one card from the chosen pile for the acting seat. Two
// events result: a public one without the card and a targeted reveal for the
// drawing seat.
func (s *Service) DrawCard(round *domain.Round, seat int, source domain.DrawSource) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	card, err := round.Draw(seat, source)
	if err != nil {
		return nil, err
	}

	public := CardDrawnPayload{
		Seat:         seat,
		Source:       source,
		HandSize:     len(round.Hand(seat)),
		DeckSize:     len(round.Deck),
		NextPhase:    round.Phase,
		NextTurnSeat: round.TurnSeat,
	}
	if top, ok := round.DiscardTop(); ok {
		public.DiscardTop = &top
	}

	private := public
	private.Card = &card

	return []Event{
		{Kind: EventCardDrawn, Payload: public},
		{Kind: EventCardDrawn, Payload: private, Recipients: []string{round.Seats[seat].UserID}},
	}, nil
}

// DiscardCard ends a classic-rules turn by discarding one held card.
func (s *Service) DiscardCard(round *domain.Round, seat int, card domain.Card) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	if err := round.DiscardCard(seat, card); err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventCardDiscarded,
		Payload: CardDiscardedPayload{
			Seat:         seat,
			Card:         card,
			HandSize:     len(round.Hand(seat)),
			NextTurnSeat: round.TurnSeat,
		},
	}}, nil
}

// DeclareShow adjudicates the acting seat's show claim and reports the coin
// settlement for the host to apply.
func (s *Service) DeclareShow(round *domain.Round, seat int) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	outcome, err := round.DeclareShow(seat)
	if err != nil {
		return nil, err
	}

	return []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			RoundID:        round.ID,
			Outcome:        outcome,
			DeclarerSeat:   seat,
			BalanceChanges: s.settle(round, seat, outcome),
		},
	}}, nil
}

// VoidRound tears down an abandoned round with a draw outcome and no
// settlement.
func (s *Service) VoidRound(round *domain.Round) []Event {
	if round == nil || round.Over {
		return nil
	}
	round.Over = true
	return []Event{{
		Kind: EventRoundEnded,
		Payload: RoundEndedPayload{
			RoundID:        round.ID,
			Outcome:        domain.OutcomeDraw,
			DeclarerSeat:   -1,
			BalanceChanges: map[string]int64{},
		},
	}}
}

// settle computes per-user coin deltas. A winning declarer collects the
// reward while every other seat pays the penalty; a failed show costs only
// the declarer.
func (s *Service) settle(round *domain.Round, declarer int, outcome domain.Outcome) map[string]int64 {
	changes := make(map[string]int64, len(round.Seats))
	switch outcome {
	case domain.OutcomeWin:
		for i, seat := range round.Seats {
			if i == declarer {
				changes[seat.UserID] = s.stakes.WinReward
			} else {
				changes[seat.UserID] = -s.stakes.LosePenalty
			}
		}
	case domain.OutcomeLose:
		changes[round.Seats[declarer].UserID] = -s.stakes.LosePenalty
	}
	return changes
}
