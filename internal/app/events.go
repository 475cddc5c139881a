package app

import "showdown/internal/domain"

// EventKind identifies emitted app events for host dispatch.
type EventKind string

const (
	EventRoundStarted  EventKind = "round_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventCardsPlayed   EventKind = "cards_played"
	EventCardDrawn     EventKind = "card_drawn"
	EventCardDiscarded EventKind = "card_discarded"
	EventRoundEnded    EventKind = "round_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// Payload structs are marshalled to JSON by the host, so every field carries
// a wire name.

type RoundStartedPayload struct {
	RoundID       string         `json:"round_id"`
	Rules         domain.RuleSet `json:"rules"`
	FirstTurnSeat int            `json:"first_turn_seat"`
	DeckSize      int            `json:"deck_size"`
	DiscardTop    domain.Card    `json:"discard_top"`
}

type HandDealtPayload struct {
	Seat   int           `json:"seat"`
	UserID string        `json:"user_id"`
	Hand   []domain.Card `json:"hand"`
}

type CardsPlayedPayload struct {
	Seat         int              `json:"seat"`
	Rank         int              `json:"rank"`
	Cards        []domain.Card    `json:"cards"`
	HandSize     int              `json:"hand_size"`
	NextPhase    domain.TurnPhase `json:"next_phase"`
	NextTurnSeat int              `json:"next_turn_seat"`
}

// CardDrawnPayload is broadcast without the card; the drawn card itself goes
// only to the drawing seat via the Card field on a targeted copy.
type CardDrawnPayload struct {
	Seat         int               `json:"seat"`
	Source       domain.DrawSource `json:"source"`
	Card         *domain.Card      `json:"card,omitempty"`
	HandSize     int               `json:"hand_size"`
	DeckSize     int               `json:"deck_size"`
	DiscardTop   *domain.Card      `json:"discard_top,omitempty"`
	NextPhase    domain.TurnPhase  `json:"next_phase"`
	NextTurnSeat int               `json:"next_turn_seat"`
}

type CardDiscardedPayload struct {
	Seat         int         `json:"seat"`
	Card         domain.Card `json:"card"`
	HandSize     int         `json:"hand_size"`
	NextTurnSeat int         `json:"next_turn_seat"`
}

type RoundEndedPayload struct {
	RoundID      string         `json:"round_id"`
	Outcome      domain.Outcome `json:"outcome"`
	DeclarerSeat int            `json:"declarer_seat"`
	// BalanceChanges maps user ID to the coin delta the host settles.
	BalanceChanges map[string]int64 `json:"balance_changes"`
}
