package domain

// Outcome is the terminal result of a declared show.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	// OutcomeDraw is reported when a round is torn down with no adjudication,
	// e.g. the match terminates mid-round.
	OutcomeDraw Outcome = "draw"
)

// ShowGroupSize is the minimum same-rank group that makes a hand a winning show.
const ShowGroupSize = 3

// HasShow reports whether the hand holds at least one rank with three or more
// cards. This is the entire win condition; Showdown does not score full rummy
// melds.
func HasShow(hand []Card) bool {
	for _, count := range RankCounts(hand) {
		if count >= ShowGroupSize {
			return true
		}
	}
	return false
}

// DeclareShow adjudicates the acting seat's claim to a winning hand. It is
// legal from either phase of the declarer's turn, but only once every seat
// has completed at least one full turn. The round is over afterwards; no
// further state mutation happens either way.
func (r *Round) DeclareShow(seat int) (Outcome, error) {
	if r.Over {
		return "", ErrRoundOver
	}
	if seat < 0 || seat >= len(r.Seats) {
		return "", ErrUnknownSeat
	}
	if seat != r.TurnSeat {
		return "", ErrNotYourTurn
	}
	if !r.AllSeatsActed() {
		return "", ErrShowTooEarly
	}

	r.Over = true
	if HasShow(r.Seats[seat].Hand) {
		return OutcomeWin, nil
	}
	return OutcomeLose, nil
}
