package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"tarot/internal/app"
	"tarot/internal/bot"
	"tarot/internal/config"
	"tarot/internal/domain"
	"tarot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/lmittmann/tint"
)

// matchPhase is the coarse table state exposed through the match label.
type matchPhase string

const (
	phaseLobby   matchPhase = "lobby"
	phaseBidding matchPhase = "bidding"
	phaseDog     matchPhase = "dog"
	phasePlaying matchPhase = "playing"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats        []string `json:"seats"`         // user IDs by seat, "" means empty
	OwnerSeat    int      `json:"owner_seat"`    // seat index of the match owner
	StartingSeat int      `json:"starting_seat"` // seat that opens the bidding, rotates on redeals
	Redeals      int      `json:"redeals"`       // all-pass redeals in the current round
	Tick         int64    `json:"tick"`

	Phase       matchPhase `json:"phase"`
	DogRevealed bool       `json:"dog_revealed"` // human taker has seen the dog and owes a discard

	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Game      *domain.GameState           `json:"-"`
	Bots      map[string]*bot.Agent       `json:"-"`
	Economy   ports.EconomyPort           `json:"-"`
	Recorder  *app.Recorder               `json:"-"`

	BotsEnabled          bool  `json:"bots_enabled"`
	BotMinDelay          int   `json:"bot_min_delay"`           // min seconds a bot waits
	BotMaxDelay          int   `json:"bot_max_delay"`           // max seconds a bot waits
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`     // seconds before a solo lobby fills with bots
	BotWaitUntil         int64 `json:"bot_wait_until"`          // tick when the pending bot acts
	LastSinglePlayerTick int64 `json:"last_single_player_tick"` // tick when a single player started waiting
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
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat index for a user ID, -1 when absent.
func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	recorder := app.NewRecorder(
		NewNakamaStorageSink(nk),
		slog.New(tint.NewHandler(os.Stderr, nil)),
	)

	state := &MatchState{
		Seats:        make([]string, config.GetNumPlayers()),
		OwnerSeat:    -1,
		StartingSeat: 0,
		Tick:         time.Now().Unix(),
		Phase:        phaseLobby,
		Presences:    make(map[string]runtime.Presence),
		App:          app.NewService(nil),
		Bots:         make(map[string]*bot.Agent),
		Economy:      NewNakamaEconomyAdapter(nk),
		Recorder:     recorder,
	}

	// Bot behaviour env overrides.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["tarot_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	} else {
		state.BotsEnabled = true
	}
	if val, ok := env["tarot_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["tarot_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["tarot_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
		if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
		}
	}

	labelBytes, err := json.Marshal(Label{Open: state.GetOpenSeatsCount(), Game: "tarot", Phase: string(phaseLobby)})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
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

	// Allow join if there is an empty seat OR a bot to replace (if round hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
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

		// Assign seat: try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Owner seat belongs to a human player only.
	if !isHumanSeat(matchState.Seats, matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats)
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)

				if matchState.OwnerSeat == i {
					ownerLeft = true
				}
				break
			}
		}

		evt, _ := json.Marshal(PlayerLeftEvent{UserID: p.GetUserId()})
		dispatcher.BroadcastMessage(OpPlayerLeft, evt, nil, nil, true)
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats)
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

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
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlaceBid:
			mh.handlePlaceBid(ctx, matchState, dispatcher, logger, msg)
		case OpDiscardDog:
			mh.handleDiscardDog(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		logger.Warn("StartGame: Round already in progress.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	// Every seat must be occupied for a deal; fill leftovers with bots.
	if state.GetOpenSeatsCount() > 0 {
		if !state.BotsEnabled {
			logger.Warn("StartGame: Cannot start with %d open seats and bots disabled.", state.GetOpenSeatsCount())
			return
		}
		mh.fillSeatsWithBots(state, dispatcher, logger)
	}

	game, events, err := state.App.StartRound(state.Seats)
	if err != nil {
		logger.Error("StartGame: Failed to start round: %v", err)
		return
	}

	state.Game = game
	state.Phase = phaseBidding
	state.Redeals = 0
	state.DogRevealed = false
	state.App.OpenBidding(game, state.StartingSeat)

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Round started with %d players, seat %d opens the bidding.", len(state.Seats), state.StartingSeat)
}

func (mh *matchHandler) handlePlaceBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil || state.Phase != phaseBidding {
		logger.Warn("handlePlaceBid: No bidding in progress.")
		return
	}

	var request PlaceBidRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlaceBid: Failed to unmarshal PlaceBidRequest: %v", err)
		return
	}
	bid, err := domain.ParseBid(request.Bid)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	if next, ok := state.Game.BiddingRound.NextBidder(); !ok || next != senderID {
		mh.sendError(state, dispatcher, logger, senderID, 400, domain.ErrNotYourTurn.Error())
		return
	}

	mh.placeBid(ctx, state, dispatcher, logger, senderID, bid)
}

// placeBid runs one declaration through the app service and advances the
// table when the round closes. Shared by human messages and bot turns.
func (mh *matchHandler) placeBid(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, bid domain.BidType) {
	events, complete, err := state.App.PlaceBid(state.Game, userID, bid)
	if err != nil {
		logger.Warn("placeBid: User %s failed to bid: %v", userID, err)
		mh.sendError(state, dispatcher, logger, userID, 400, err.Error())
		return
	}

	if complete && !state.Game.BiddingRound.HasTaker() {
		state.Redeals++
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	if !complete {
		return
	}

	if state.Game.BiddingRound.HasTaker() {
		mh.beginDogPhase(ctx, state, dispatcher, logger)
	} else {
		mh.redealVoidedRound(ctx, state, dispatcher, logger)
	}
}

// redealVoidedRound gathers and redeals the hands after an all-pass round
// and reopens the bidding one seat later.
func (mh *matchHandler) redealVoidedRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	events, err := state.App.RedealVoidedRound(state.Game)
	if err != nil {
		logger.Error("redealVoidedRound: %v", err)
		return
	}

	state.StartingSeat = (state.StartingSeat + 1) % len(state.Seats)
	state.App.OpenBidding(state.Game, state.StartingSeat)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	logger.Info("redealVoidedRound: Redeal %d, seat %d opens the bidding.", state.Redeals, state.StartingSeat)
}

// beginDogPhase moves the table into the dog phase. A human taker gets
// the dog revealed and owes a discard; a bot taker is handled on its
// think-delay tick in processBots.
func (mh *matchHandler) beginDogPhase(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Phase = phaseDog
	mh.updateLabel(state, dispatcher, logger)

	takerID := state.Game.BiddingRound.TakerID()
	if isBotUserId(takerID) {
		return
	}

	events, err := state.App.RevealDog(state.Game, takerID)
	if err != nil {
		logger.Error("beginDogPhase: Failed to reveal dog to %s: %v", takerID, err)
		return
	}
	state.DogRevealed = true
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleDiscardDog(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil || state.Phase != phaseDog || !state.DogRevealed {
		logger.Warn("handleDiscardDog: No discard expected.")
		return
	}
	if senderID != state.Game.BiddingRound.TakerID() {
		mh.sendError(state, dispatcher, logger, senderID, 400, "only the taker discards")
		return
	}

	var request DiscardDogRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleDiscardDog: Failed to unmarshal DiscardDogRequest: %v", err)
		return
	}
	cards, err := fromWireCards(request.Cards)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.App.DiscardDog(state.Game, senderID, cards)
	if err != nil {
		logger.Warn("handleDiscardDog: User %s failed to discard: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	mh.finalizeContract(ctx, state, dispatcher, logger)
}

// finalizeContract fixes the oudler threshold from the taker's kept hand
// and opens trick play.
func (mh *matchHandler) finalizeContract(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	contract, events, err := state.App.FinalizeContract(state.Game)
	if err != nil {
		logger.Error("finalizeContract: %v", err)
		return
	}

	state.Phase = phasePlaying
	state.DogRevealed = false
	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	logger.Info("finalizeContract: %s", contract)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Game == nil || state.Phase != phasePlaying {
		logger.Warn("handlePlayCard: No trick play in progress.")
		return
	}
	if senderSeat < 0 {
		logger.Warn("handlePlayCard: User %s has no seat.", senderID)
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal PlayCardRequest: %v", err)
		return
	}
	card, err := domain.DecodeCard(request.Card)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	events, err := state.App.PlayCard(state.Game, senderSeat, card)
	if err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play %s: %v", senderID, senderSeat, card, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	mh.settleIfOver(ctx, state, dispatcher, logger)
}

// settleIfOver scores and settles the round once every hand is empty.
func (mh *matchHandler) settleIfOver(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || !state.Game.IsGameOver() {
		return
	}

	_, events, err := state.App.SettleScores(state.Game)
	if err != nil {
		logger.Error("settleIfOver: %v", err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) fillSeatsWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		botID := identity.UserID
		state.Seats[i] = botID

		agent, err := bot.AgentFor(identity)
		if err != nil {
			logger.Error("Failed to create bot agent for %s: %v", botID, err)
		} else {
			state.Bots[botID] = agent
		}

		logger.Info("fillSeatsWithBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastMatchState(state, dispatcher, logger)
	}
}

// pendingBot returns the bot whose action the table is waiting on, if any.
func (mh *matchHandler) pendingBot(state *MatchState) (string, bool) {
	if state.Game == nil {
		return "", false
	}

	switch state.Phase {
	case phaseBidding:
		uid, ok := state.Game.BiddingRound.NextBidder()
		if ok && isBotUserId(uid) {
			return uid, true
		}
	case phaseDog:
		uid := state.Game.BiddingRound.TakerID()
		if isBotUserId(uid) {
			return uid, true
		}
	case phasePlaying:
		uid := state.Game.CurrentPlayer().ID
		if isBotUserId(uid) {
			return uid, true
		}
	}
	return "", false
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				mh.fillSeatsWithBots(state, dispatcher, logger)
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle the bot action the table is waiting on
	botID, ok := mh.pendingBot(state)
	if !ok {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", botID, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[botID]
	if !exists {
		identity, _ := bot.GetBotConfig(botID)
		var err error
		agent, err = bot.AgentFor(identity)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[botID] = agent
	}

	switch state.Phase {
	case phaseBidding:
		player := state.Game.PlayerByID(botID)
		bidType := agent.Bid(player.Hand, state.Game.BiddingRound.ContractType())
		mh.placeBid(ctx, state, dispatcher, logger, botID, bidType)

	case phaseDog:
		events, err := state.App.RunDogPhase(state.Game, botID, agent.Discard)
		if err != nil {
			logger.Error("processBots: Bot %s failed the dog phase: %v", botID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		}
		mh.finalizeContract(ctx, state, dispatcher, logger)

	case phasePlaying:
		events, err := state.App.PlayAgentCard(state.Game, state.Bots)
		if err != nil {
			logger.Error("processBots: Bot %s failed to play: %v", botID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		}
		mh.settleIfOver(ctx, state, dispatcher, logger)
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if identity, ok := bot.GetBotConfig(userId); ok && identity.DisplayName != "" {
			displayName = identity.DisplayName
		}

		cardsRemaining := 0
		if state.Game != nil {
			if p := state.Game.PlayerByID(userId); p != nil {
				cardsRemaining = p.CardCount()
			}
		}

		playerStates = append(playerStates, PlayerState{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBotUserId(userId),
			CardsRemaining: cardsRemaining,
			DisplayName:    displayName,
		})
	}

	snapshot := PlayerJoinedEvent{
		Seats:     state.Seats,
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   playerStates,
	}
	bytes, _ := json.Marshal(snapshot)
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		logger.Debug("Event: hand_dealt (player=%s, cards=%d)", p.PlayerID, len(p.Hand))
		payload = HandDealtEvent{Hand: toWireCards(p.Hand)}
	case app.EventBidPlaced:
		opCode = OpBidPlaced
		p := ev.Payload.(app.BidPlacedPayload)
		payload = BidPlacedEvent{UserID: p.PlayerID, Bid: p.Bid.String()}
	case app.EventBiddingWon:
		opCode = OpBiddingWon
		p := ev.Payload.(app.BiddingWonPayload)
		payload = BiddingWonEvent{TakerID: p.TakerID, Contract: p.Contract.String()}
	case app.EventRoundVoided:
		opCode = OpRoundVoided
		payload = RoundVoidedEvent{Redeals: state.Redeals}
	case app.EventDogRevealed:
		opCode = OpDogRevealed
		p := ev.Payload.(app.DogRevealedPayload)
		payload = DogRevealedEvent{Dog: toWireCards(p.Dog)}
	case app.EventDogDiscarded:
		opCode = OpDogDiscarded
		p := ev.Payload.(app.DogDiscardedPayload)
		payload = DogDiscardedEvent{TakerID: p.TakerID, Count: p.Count}
	case app.EventContractFinal:
		opCode = OpContractFinal
		p := ev.Payload.(app.ContractFinalPayload)
		payload = ContractFinalEvent{
			TakerID:      p.TakerID,
			Contract:     p.Contract.String(),
			Oudlers:      p.Oudlers,
			PointsNeeded: p.PointsNeeded,
		}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		payload = CardPlayedEvent{
			UserID:     p.PlayerID,
			Card:       domain.EncodeCard(p.Card),
			NextUserID: p.NextPlayerID,
		}
	case app.EventTrickWon:
		opCode = OpTrickWon
		p := ev.Payload.(app.TrickWonPayload)
		payload = TrickWonEvent{WinnerID: p.WinnerID, Cards: toWireCards(p.Cards)}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		payload = GameEndedEvent{
			TakerID:     p.TakerID,
			TakerPoints: p.TakerPoints,
			Success:     p.Success,
			Scores:      p.Scores,
		}

		// Apply score deltas to Nakama wallets
		if state.Economy != nil {
			updates := make([]ports.WalletUpdate, 0, len(p.Scores))
			for userID, amount := range p.Scores {
				// Skip bots
				if isBotUserId(userID) {
					continue
				}
				updates = append(updates, ports.WalletUpdate{
					UserID: userID,
					Amount: int64(amount),
					Metadata: map[string]interface{}{
						"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
						"reason":   "game_settlement",
					},
				})
			}
			if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
				logger.Error("Failed to update balances: %v", err)
			}
		}

		state.Recorder.RecordGame(state.Game, p.Scores)

		// Round over, back to the lobby; the next deal opens one seat later.
		state.StartingSeat = (state.StartingSeat + 1) % len(state.Seats)
		state.Game = nil
		state.Phase = phaseLobby
		state.Redeals = 0
		state.DogRevealed = false
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := state.Phase
	if state.Game == nil {
		phase = phaseLobby
	}

	labelBytes, err := json.Marshal(Label{Open: state.GetOpenSeatsCount(), Game: "tarot", Phase: string(phase)})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}
