package app

import (
	"math/rand"
	"testing"

	"showdown/internal/domain"

	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return NewService(rand.New(rand.NewSource(42)), Stakes{WinReward: 150, LosePenalty: 50})
}

func TestStartRoundDealsHands(t *testing.T) {
	svc := testService()

	round, evs, err := svc.StartRound([]string{"u1", "", "b1", "b2"}, domain.RulesPlayThenDraw)
	require.NoError(t, err)
	require.Len(t, round.Seats, 3, "empty roster slots must be skipped")

	handEvents := 0
	for _, ev := range evs {
		switch ev.Kind {
		case EventRoundStarted:
			payload := ev.Payload.(RoundStartedPayload)
			require.Equal(t, 0, payload.FirstTurnSeat)
			require.Equal(t, domain.RulesPlayThenDraw, payload.Rules)
			require.Empty(t, ev.Recipients, "round_started is public")
		case EventHandDealt:
			payload := ev.Payload.(HandDealtPayload)
			require.Len(t, payload.Hand, domain.StartingHandSize)
			require.Equal(t, []string{payload.UserID}, ev.Recipients, "hands are private")
			handEvents++
		}
	}
	require.Equal(t, 3, handEvents)
}

func TestStartRoundRejectsOversizedRoster(t *testing.T) {
	svc := testService()

	_, _, err := svc.StartRound(make([]string, 9), domain.RulesPlayThenDraw)
	require.ErrorIs(t, err, ErrNoOccupiedSeats)

	roster := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	_, _, err = svc.StartRound(roster, domain.RulesPlayThenDraw)
	require.ErrorIs(t, err, domain.ErrNotEnoughCards)
}

func TestDrawCardEmitsPublicAndPrivateEvents(t *testing.T) {
	svc := testService()
	round, _, err := svc.StartRound([]string{"u1", "b1"}, domain.RulesClassic)
	require.NoError(t, err)

	evs, err := svc.DrawCard(round, 0, domain.DrawClosed)
	require.NoError(t, err)
	require.Len(t, evs, 2)

	public := evs[0].Payload.(CardDrawnPayload)
	require.Nil(t, public.Card, "public draw event must not reveal the card")
	require.Empty(t, evs[0].Recipients)
	require.Equal(t, 8, public.HandSize)

	private := evs[1].Payload.(CardDrawnPayload)
	require.NotNil(t, private.Card)
	require.Equal(t, []string{"u1"}, evs[1].Recipients)
}

func TestPlaySelectedFlow(t *testing.T) {
	svc := testService()
	round, _, err := svc.StartRound([]string{"u1", "b1", "b2"}, domain.RulesPlayThenDraw)
	require.NoError(t, err)

	// Stage the largest rank group the dealt hand happens to hold.
	group := domain.LargestRankGroup(round.Hand(0))
	for _, c := range group {
		require.NoError(t, svc.SelectCard(round, 0, c))
	}

	evs, err := svc.PlaySelected(round, 0)
	require.NoError(t, err)
	require.Len(t, evs, 1)

	payload := evs[0].Payload.(CardsPlayedPayload)
	require.Equal(t, 0, payload.Seat)
	require.Equal(t, group[0].Rank, payload.Rank)
	require.Equal(t, domain.PhaseDraw, payload.NextPhase)
	require.Equal(t, domain.StartingHandSize-len(group), payload.HandSize)
}

func TestDeclareShowSettlement(t *testing.T) {
	svc := testService()
	round, _, err := svc.StartRound([]string{"u1", "b1", "b2"}, domain.RulesPlayThenDraw)
	require.NoError(t, err)

	for _, seat := range round.Seats {
		seat.HasActedOnce = true
	}
	round.Seats[0].Hand = []domain.Card{
		{Suit: "H", Rank: 4}, {Suit: "D", Rank: 4}, {Suit: "C", Rank: 4}, {Suit: "S", Rank: 8},
	}

	evs, err := svc.DeclareShow(round, 0)
	require.NoError(t, err)
	require.Len(t, evs, 1)

	payload := evs[0].Payload.(RoundEndedPayload)
	require.Equal(t, domain.OutcomeWin, payload.Outcome)
	require.Equal(t, 0, payload.DeclarerSeat)
	require.Equal(t, int64(150), payload.BalanceChanges["u1"])
	require.Equal(t, int64(-50), payload.BalanceChanges["b1"])
	require.Equal(t, int64(-50), payload.BalanceChanges["b2"])
}

func TestDeclareShowFailedClaimCostsOnlyDeclarer(t *testing.T) {
	svc := testService()
	round, _, err := svc.StartRound([]string{"u1", "b1"}, domain.RulesPlayThenDraw)
	require.NoError(t, err)

	for _, seat := range round.Seats {
		seat.HasActedOnce = true
	}
	round.Seats[0].Hand = []domain.Card{{Suit: "H", Rank: 4}, {Suit: "D", Rank: 7}}

	evs, err := svc.DeclareShow(round, 0)
	require.NoError(t, err)

	payload := evs[0].Payload.(RoundEndedPayload)
	require.Equal(t, domain.OutcomeLose, payload.Outcome)
	require.Equal(t, map[string]int64{"u1": -50}, payload.BalanceChanges)
}

func TestDeclareShowGatingPropagates(t *testing.T) {
	svc := testService()
	round, _, err := svc.StartRound([]string{"u1", "b1"}, domain.RulesPlayThenDraw)
	require.NoError(t, err)

	_, err = svc.DeclareShow(round, 0)
	require.ErrorIs(t, err, domain.ErrShowTooEarly)
}

func TestVoidRound(t *testing.T) {
	svc := testService()
	round, _, err := svc.StartRound([]string{"u1", "b1"}, domain.RulesPlayThenDraw)
	require.NoError(t, err)

	evs := svc.VoidRound(round)
	require.Len(t, evs, 1)
	payload := evs[0].Payload.(RoundEndedPayload)
	require.Equal(t, domain.OutcomeDraw, payload.Outcome)
	require.Empty(t, payload.BalanceChanges)
	require.True(t, round.Over)

	require.Nil(t, svc.VoidRound(round), "voiding twice is a no-op")
	require.Nil(t, svc.VoidRound(nil))
}

func TestNilRoundOperations(t *testing.T) {
	svc := testService()

	_, err := svc.PlaySelected(nil, 0)
	require.ErrorIs(t, err, ErrNoActiveRound)
	_, err = svc.DrawCard(nil, 0, domain.DrawClosed)
	require.ErrorIs(t, err, ErrNoActiveRound)
	_, err = svc.DeclareShow(nil, 0)
	require.ErrorIs(t, err, ErrNoActiveRound)
	require.ErrorIs(t, svc.SelectCard(nil, 0, domain.Card{}), ErrNoActiveRound)
}
