package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"showdown/internal/app"
	"showdown/internal/bot"
	"showdown/internal/config"
	"showdown/internal/domain"
	"showdown/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// matchLabel is the JSON label indexed by Nakama's match listing.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	State string `json:"state"`
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats            []string                    `json:"seats"`      // user IDs, empty string means the seat is free
	OwnerSeat        int                         `json:"owner_seat"` // seat index of the match owner
	Rules            domain.RuleSet              `json:"rules"`
	MinPlayers       int                         `json:"min_players"`
	Tick             int64                       `json:"tick"`
	Presences        map[string]runtime.Presence `json:"-"`
	App              *app.Service                `json:"-"`
	Round            *domain.Round               `json:"-"` // active round, nil while in lobby
	BotsEnabled      bool                        `json:"bots_enabled"`
	BotMinDelay      int                         `json:"bot_min_delay"`
	BotMaxDelay      int                         `json:"bot_max_delay"`
	BotAutoFillDelay int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil     int64                       `json:"bot_wait_until"`  // tick when the bot on turn acts next
	LastSoloTick     int64                       `json:"last_solo_tick"`  // tick when a lone human started waiting
	Bots             map[string]*bot.Agent       `json:"-"`
	Economy          ports.EconomyPort           `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !ms.isBotSeat(seat) {
			count++
		}
	}
	return count
}

// isBotSeat reports whether the given user id belongs to a bot, pooled or placeholder.
func (ms *MatchState) isBotSeat(userID string) bool {
	if _, ok := ms.Bots[userID]; ok {
		return true
	}
	return bot.IsBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant, or -1.
func (ms *MatchState) findFirstHumanSeat() int {
	for i, userID := range ms.Seats {
		if userID != "" && !ms.isBotSeat(userID) {
			return i
		}
	}
	return -1
}

// seatOf returns the lobby seat index of a user, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserID := range ms.Seats {
		if seatUserID == userID {
			return i
		}
	}
	return -1
}

// roundSeatOf returns the in-round seat index of a user, or -1. Round seats
// are compacted over occupied lobby seats, so the two indices can differ.
func roundSeatOf(round *domain.Round, userID string) int {
	if round == nil {
		return -1
	}
	for i, seat := range round.Seats {
		if seat.UserID == userID {
			return i
		}
	}
	return -1
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: initializing match handler.")

	loadRuntimeData(logger)
	cfg := config.GetGameConfig()

	// table_size arrives as an int from rpcCreateMatch and as a float64 when
	// the params round-trip through JSON.
	tableSize := cfg.TableSize
	switch val := params["table_size"].(type) {
	case int:
		if val >= 2 && val <= cfg.MaxTableSize {
			tableSize = val
		}
	case float64:
		if int(val) >= 2 && int(val) <= cfg.MaxTableSize {
			tableSize = int(val)
		}
	}
	rules := domain.RuleSet(cfg.Rules)
	if val, ok := params["rules"].(string); ok && val != "" {
		rules = domain.RuleSet(val)
	}

	state := &MatchState{
		Seats:            make([]string, tableSize),
		OwnerSeat:        -1,
		Rules:            rules,
		MinPlayers:       cfg.MinPlayersToStart,
		Tick:             time.Now().Unix(),
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil, app.Stakes{WinReward: cfg.WinReward, LosePenalty: cfg.LosePenalty}),
		BotsEnabled:      true,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Bots:             make(map[string]*bot.Agent),
		Economy:          NewNakamaEconomyAdapter(nk),
	}

	// Environment overrides for operational tuning.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["showdown_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["showdown_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["showdown_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["showdown_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if state.BotMinDelay <= 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}
	if state.BotAutoFillDelay <= 0 {
		state.BotAutoFillDelay = 5
	}

	labelBytes, err := json.Marshal(matchLabel{Open: state.GetOpenSeatsCount(), Game: "showdown", State: "lobby"})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join when a seat is free, or a lobby bot can be displaced.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Round == nil {
			for _, seat := range matchState.Seats {
				if matchState.isBotSeat(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		// In the lobby a bot gives up its seat for a human.
		if !assigned && matchState.Round == nil {
			for i, seatUserID := range matchState.Seats {
				if matchState.isBotSeat(seatUserID) {
					logger.Info("MatchJoin: replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: user %s joined but no seat was available.", p.GetUserId())
		}
	}

	// The owner seat must belong to a human.
	if matchState.OwnerSeat < 0 || !mh.isHumanSeat(matchState, matchState.OwnerSeat) {
		matchState.OwnerSeat = matchState.findFirstHumanSeat()
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, OpPlayerJoined)

	return matchState
}

func (mh *matchHandler) isHumanSeat(state *MatchState, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(state.Seats) {
		return false
	}
	userID := state.Seats[seatIndex]
	return userID != "" && !state.isBotSeat(userID)
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	voided := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		if seat := matchState.seatOf(p.GetUserId()); seat >= 0 {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: user %s left, seat %d freed.", p.GetUserId(), seat)
		}

		// A leaver who held a seat in the active round voids it for everyone.
		if !voided && roundSeatOf(matchState.Round, p.GetUserId()) >= 0 {
			for _, ev := range matchState.App.VoidRound(matchState.Round) {
				mh.broadcastEvent(ctx, matchState, dispatcher, logger, ev)
			}
			matchState.Round = nil
			voided = true
		}
	}

	matchState.OwnerSeat = matchState.findFirstHumanSeat()

	if matchState.findFirstHumanSeat() == -1 {
		logger.Info("MatchLeave: terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastTableState(matchState, dispatcher, OpPlayerLeft)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpSelectCard:
			mh.handleSelectCard(matchState, dispatcher, logger, msg, true)
		case OpDeselectCard:
			mh.handleSelectCard(matchState, dispatcher, logger, msg, false)
		case OpPlaySelected:
			mh.handlePlaySelected(ctx, matchState, dispatcher, logger, msg)
		case OpDrawCard:
			mh.handleDrawCard(ctx, matchState, dispatcher, logger, msg)
		case OpDiscardCard:
			mh.handleDiscardCard(ctx, matchState, dispatcher, logger, msg)
		case OpDeclareShow:
			mh.handleDeclareShow(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill the lobby when a lone human has waited long enough.
	if state.Round == nil {
		if state.GetHumanPlayerCount() == 1 {
			if state.LastSoloTick == 0 {
				state.LastSoloTick = state.Tick
				logger.Debug("processBots: lone player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSoloTick >= int64(state.BotAutoFillDelay) {
				added := false
				nextIdentity := 0
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					// Walk the pool past unprovisioned or already-seated
					// entries; indices beyond the pool yield unique
					// placeholders, so this terminates with a free identity.
					var identity bot.BotIdentity
					for {
						identity = bot.GetBotIdentity(nextIdentity)
						nextIdentity++
						if identity.UserID != "" && state.seatOf(identity.UserID) < 0 {
							break
						}
					}
					agent, err := bot.NewAgent(identity.UserID, state.App.Rng())
					if err != nil {
						logger.Error("processBots: failed to create bot agent for %s: %v", identity.UserID, err)
						continue
					}
					if agent.Name == "" {
						agent.Name = identity.DisplayName
					}
					state.Seats[i] = identity.UserID
					state.Bots[identity.UserID] = agent
					logger.Info("processBots: added bot %s (%s) to seat %d", identity.DisplayName, identity.UserID, i)
					added = true
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastTableState(state, dispatcher, OpPlayerJoined)
				}
				state.LastSoloTick = 0
			}
		} else {
			state.LastSoloTick = 0
		}
		return
	}

	// Drive the bot whose turn it is, one decision per scheduled tick so
	// humans see the play land before the draw happens.
	if state.Round.Over {
		return
	}
	turnUserID := state.Round.Seats[state.Round.TurnSeat].UserID
	agent, isBot := state.Bots[turnUserID]
	if !isBot {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.App.Rng().Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	seat := state.Round.TurnSeat

	// Legal declares preempt the normal turn flow.
	if agent.WantsShow(state.Round, seat) {
		events, err := state.App.DeclareShow(state.Round, seat)
		if err != nil {
			logger.Warn("processBots: bot %s declare rejected: %v", turnUserID, err)
		} else {
			for _, ev := range events {
				mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
			}
			return
		}
	}

	switch state.Round.Phase {
	case domain.PhasePlay:
		cards, err := agent.PlayAtSeat(state.Round, seat)
		if err != nil {
			logger.Error("processBots: bot %s failed to pick a play: %v", turnUserID, err)
			return
		}
		events, err := state.App.PlayGroup(state.Round, seat, cards)
		if err != nil {
			logger.Error("processBots: bot %s play rejected: %v", turnUserID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		}
	case domain.PhaseDraw:
		source, err := agent.DrawAtSeat(state.Round, seat)
		if err != nil {
			logger.Error("processBots: bot %s failed to pick a pile: %v", turnUserID, err)
			return
		}
		events, err := state.App.DrawCard(state.Round, seat, source)
		if err != nil {
			logger.Error("processBots: bot %s draw rejected: %v", turnUserID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		}
	case domain.PhaseDiscard:
		card, err := agent.DiscardAtSeat(state.Round, seat)
		if err != nil {
			logger.Error("processBots: bot %s failed to pick a discard: %v", turnUserID, err)
			return
		}
		events, err := state.App.DiscardCard(state.Round, seat, card)
		if err != nil {
			logger.Error("processBots: bot %s discard rejected: %v", turnUserID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		}
	}
}

// tableSeat is one entry of the table snapshot broadcast on join/leave.
type tableSeat struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

type tableSnapshot struct {
	Seats     []string    `json:"seats"`
	OwnerSeat int         `json:"owner_seat"`
	Players   []tableSeat `json:"players"`
}

func (mh *matchHandler) broadcastTableState(state *MatchState, dispatcher runtime.MatchDispatcher, opCode int64) {
	var players []tableSeat
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		username := bot.GetBotUsername(userID)
		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			username = p.GetUsername()
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userID); name != "" {
			displayName = name
		} else if agent, ok := state.Bots[userID]; ok && agent.Name != "" {
			username = agent.Name
			displayName = agent.Name
		}

		cardsRemaining := 0
		if seat := roundSeatOf(state.Round, userID); seat >= 0 {
			cardsRemaining = len(state.Round.Hand(seat))
		}

		players = append(players, tableSeat{
			UserID:         userID,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          state.isBotSeat(userID),
			Username:       username,
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
		})
	}

	bytes, _ := json.Marshal(tableSnapshot{Seats: state.Seats, OwnerSeat: state.OwnerSeat, Players: players})
	dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true)
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartRound: request from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartRound: user %s is not the owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the table owner can start a round")
		return
	}
	if state.Round != nil && !state.Round.Over {
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrRoundInProgress.Error())
		return
	}
	minPlayers := state.MinPlayers
	if minPlayers < app.MinPlayersToStartRound {
		minPlayers = app.MinPlayersToStartRound
	}
	if occupied := state.GetOccupiedSeatCount(); occupied < minPlayers {
		logger.Warn("StartRound: cannot start with %d players, need at least %d.", occupied, minPlayers)
		mh.sendError(state, dispatcher, logger, senderID, 400, "not enough players")
		return
	}

	round, events, err := state.App.StartRound(state.Seats, state.Rules)
	if err != nil {
		logger.Error("StartRound: failed to start round: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 500, err.Error())
		return
	}
	state.Round = round
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// cardMessage is the JSON body of select, deselect and discard requests.
type cardMessage struct {
	Card domain.Card `json:"card"`
}

// drawMessage is the JSON body of a draw request.
type drawMessage struct {
	Source string `json:"source"`
}

func (mh *matchHandler) handleSelectCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData, selecting bool) {
	senderID := msg.GetUserId()
	seat := roundSeatOf(state.Round, senderID)
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	request := cardMessage{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleSelectCard: invalid payload from %s: %v", senderID, err)
		return
	}

	var err error
	if selecting {
		err = state.App.SelectCard(state.Round, seat, request.Card)
	} else {
		err = state.App.DeselectCard(state.Round, seat, request.Card)
	}
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
	}
}

func (mh *matchHandler) handlePlaySelected(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat := roundSeatOf(state.Round, senderID)
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	events, err := state.App.PlaySelected(state.Round, seat)
	if err != nil {
		logger.Warn("handlePlaySelected: user %s (seat %d): %v", senderID, seat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDrawCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat := roundSeatOf(state.Round, senderID)
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	request := drawMessage{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleDrawCard: invalid payload from %s: %v", senderID, err)
		return
	}
	source := domain.DrawSource(request.Source)
	if source != domain.DrawOpen && source != domain.DrawClosed {
		mh.sendError(state, dispatcher, logger, senderID, 400, "unknown draw source")
		return
	}

	events, err := state.App.DrawCard(state.Round, seat, source)
	if err != nil {
		logger.Warn("handleDrawCard: user %s (seat %d): %v", senderID, seat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDiscardCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat := roundSeatOf(state.Round, senderID)
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	request := cardMessage{}
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleDiscardCard: invalid payload from %s: %v", senderID, err)
		return
	}

	events, err := state.App.DiscardCard(state.Round, seat, request.Card)
	if err != nil {
		logger.Warn("handleDiscardCard: user %s (seat %d): %v", senderID, seat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDeclareShow(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seat := roundSeatOf(state.Round, senderID)
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no active round")
		return
	}

	events, err := state.App.DeclareShow(state.Round, seat)
	if err != nil {
		logger.Warn("handleDeclareShow: user %s (seat %d): %v", senderID, seat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts an app event into a Nakama broadcast. Round-ended
// events also settle the table wallets.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventRoundStarted:
		opCode = OpRoundStarted
	case app.EventHandDealt:
		opCode = OpHandDealt
	case app.EventCardsPlayed:
		opCode = OpCardsPlayed
	case app.EventCardDrawn:
		opCode = OpCardDrawn
	case app.EventCardDiscarded:
		opCode = OpCardDiscarded
	case app.EventRoundEnded:
		opCode = OpRoundEnded
		mh.settleRound(ctx, state, logger, ev.Payload.(app.RoundEndedPayload))
		state.Round = nil
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("broadcastEvent: unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: failed to marshal %v: %v", ev.Kind, err)
		return
	}

	// Default to broadcast; targeted events go only to connected recipients.
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// The intended recipients are not connected (bots). Broadcasting
		// the private payload instead would leak a hand.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// settleRound applies the round's balance changes to human wallets.
func (mh *matchHandler) settleRound(ctx context.Context, state *MatchState, logger runtime.Logger, payload app.RoundEndedPayload) {
	if state.Economy == nil || len(payload.BalanceChanges) == 0 {
		return
	}

	updates := make([]ports.WalletUpdate, 0, len(payload.BalanceChanges))
	for userID, amount := range payload.BalanceChanges {
		if state.isBotSeat(userID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"round_id": payload.RoundID,
				"reason":   "round_settlement",
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settleRound: failed to update balances: %v", err)
	}
}

// gameError is sent privately to the user whose request was rejected.
type gameError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		// Bots do not receive errors.
		return
	}

	bytes, err := json.Marshal(gameError{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Round != nil && !state.Round.Over {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(matchLabel{Open: state.GetOpenSeatsCount(), Game: "showdown", State: phase})
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
