package bot

import "showdown/internal/domain"

// Brain is the decision interface automated seats implement. Each method is
// one decision point of a turn; scheduling between decisions stays with the
// host so the policy itself is testable without timers.
type Brain interface {
	// ChoosePlay picks the same-rank group to commit in the play phase.
	ChoosePlay(round *domain.Round, seat int) ([]domain.Card, error)
	// ChooseDraw picks the pile for the turn's single draw.
	ChooseDraw(round *domain.Round, seat int) (domain.DrawSource, error)
	// ChooseDiscard picks the card to throw in a classic-rules turn.
	ChooseDiscard(round *domain.Round, seat int) (domain.Card, error)
	// ShouldDeclare reports whether the seat wants to call a show this turn.
	ShouldDeclare(round *domain.Round, seat int) bool
}
