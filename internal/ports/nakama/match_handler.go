package nakama

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"pidro/internal/app"
	"pidro/internal/bot"
	"pidro/internal/config"
	"pidro/internal/domain"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [app.SeatCount]string       `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat            int                         `json:"owner_seat"` // seat index of the match owner
	Tick                 int64                       `json:"tick"`
	Presences            map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App                  *app.Service                `json:"-"`
	Table                *app.Table                  `json:"-"` // nil while in lobby
	Config               config.GameConfig           `json:"config"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"` // seconds before a solo human lobby is filled
	BotDelayTicks        int64                       `json:"bot_delay_ticks"`     // ticks a bot waits before acting
	BotWaitUntil         int64                       `json:"bot_wait_until"`
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent       `json:"-"`
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

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// InGame reports whether a game is running and not yet won.
func (ms *MatchState) InGame() bool {
	return ms.Table != nil && ms.Table.State.Phase != domain.PhaseComplete
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if userID != "" && seat == userID {
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

// shouldTerminateNoHumans returns true when no connected human remains.
func shouldTerminateNoHumans(state *MatchState) bool {
	for userID := range state.Presences {
		if !isBotUserId(userID) {
			return false
		}
	}
	return true
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	state := newMatchState(matchID, env, logger)

	labelBytes, err := encodeLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, labelBytes
}

func newMatchState(matchID string, env map[string]string, logger runtime.Logger) *MatchState {
	cfg, err := config.GetGameConfig().ApplyEnv(env)
	if err != nil {
		logger.Warn("MatchInit: %v", err)
	}

	state := &MatchState{
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		App:              app.NewService(nil, logrus.WithField("match", matchID)),
		Config:           cfg,
		BotsEnabled:      cfg.BotsEnabled,
		BotAutoFillDelay: defaultBotAutoFillDelay,
		BotDelayTicks:    defaultBotDelayTicks,
		Bots:             make(map[string]*bot.Agent),
	}
	if val, ok := env[envBotAutoFillKey]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= 0 {
			state.BotAutoFillDelay = i
		}
	}
	if val, ok := env[envBotDelayTickKey]; ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil && i >= 0 {
			state.BotDelayTicks = i
		}
	}
	return state
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Seated players may always reconnect.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.InGame() {
		return state, false, "Match in progress"
	}
	if matchState.GetOpenSeatsCount() == 0 && !hasBotSeat(matchState) {
		return state, false, "Match full"
	}
	return state, true, ""
}

func hasBotSeat(state *MatchState) bool {
	for _, seat := range state.Seats {
		if isBotUserId(seat) {
			return true
		}
	}
	return false
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		if matchState.seatOf(userID) >= 0 {
			logger.Debug("MatchJoin: User %s reconnected.", userID)
			continue
		}
		if !seatPlayer(matchState, userID, logger) {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	mh.sendLegalActions(matchState, dispatcher, logger)
	return matchState
}

// seatPlayer puts userID in the first empty seat, or replaces a bot while in lobby.
func seatPlayer(state *MatchState, userID string, logger runtime.Logger) bool {
	for i, seat := range state.Seats {
		if seat == "" {
			state.Seats[i] = userID
			return true
		}
	}
	if state.InGame() {
		return false
	}
	for i, seat := range state.Seats {
		if isBotUserId(seat) {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seat, userID, i)
			delete(state.Bots, seat)
			state.Seats[i] = userID
			return true
		}
	}
	return false
}

// MatchLeave is called when one or more players leave the match. Seats are kept
// during a game so the player can reconnect.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		if matchState.InGame() {
			continue
		}
		if i := matchState.seatOf(userID); i >= 0 {
			matchState.Seats[i] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, i)
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
	}

	if shouldTerminateNoHumans(matchState) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		if matchState.Table != nil {
			matchState.App.CloseTable(matchState.Table.ID)
		}
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, op int64, data []byte) {
	switch op {
	case OpStartGame:
		mh.handleStartGame(state, dispatcher, logger, userID)
	case OpBid, OpPass, OpDeclareTrump, OpPlayCard, OpSelectHand:
		mh.handleAction(state, dispatcher, logger, userID, op, data)
	case OpUndo, OpRedo:
		mh.handleRewind(state, dispatcher, logger, userID, op)
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", op)
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	senderSeat := state.seatOf(userID)
	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d)", userID, senderSeat, state.OwnerSeat)

	if senderSeat != state.OwnerSeat {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeForbidden, "only the match owner can start the game")
		return
	}
	if state.InGame() {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeConflict, "game already in progress")
		return
	}
	if state.BotsEnabled {
		mh.fillWithBots(state, logger)
	}
	if state.GetOpenSeatsCount() > 0 {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeConflict, app.ErrSeatsMissing.Error())
		return
	}

	if state.Table != nil {
		state.App.CloseTable(state.Table.ID)
		state.Table = nil
	}
	table, events, err := state.App.CreateTable(state.Config.Rules(), state.Seats)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, userID, errorCode(err), err.Error())
		return
	}
	state.Table = table
	state.BotWaitUntil = 0

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.afterChange(state, dispatcher, logger)
	logger.Info("StartGame: Table %s started, dealer %s.", table.ID, table.State.Dealer)
}

func (mh *matchHandler) handleAction(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, op int64, data []byte) {
	if state.Table == nil {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeConflict, "game not started")
		return
	}
	req, err := decodeRequest(data)
	if err != nil {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeBadRequest, err.Error())
		return
	}
	action, err := actionFromRequest(op, req)
	if err != nil {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeBadRequest, err.Error())
		return
	}

	events, err := state.App.Apply(state.Table, userID, action)
	if err != nil {
		logger.Warn("handleAction: User %s failed to %v: %v", userID, action, err)
		mh.sendError(state, dispatcher, logger, userID, errorCode(err), err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.afterChange(state, dispatcher, logger)
}

func (mh *matchHandler) handleRewind(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, op int64) {
	if state.seatOf(userID) != state.OwnerSeat {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeForbidden, "only the match owner can rewind")
		return
	}
	if state.Table == nil {
		mh.sendError(state, dispatcher, logger, userID, ErrCodeConflict, "game not started")
		return
	}

	var events []app.Event
	var err error
	if op == OpUndo {
		events, err = state.App.Undo(state.Table)
	} else {
		events, err = state.App.Redo(state.Table)
	}
	if err != nil {
		mh.sendError(state, dispatcher, logger, userID, errorCode(err), err.Error())
		return
	}
	state.BotWaitUntil = 0
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.afterChange(state, dispatcher, logger)
}

// afterChange publishes everything that follows a state change.
func (mh *matchHandler) afterChange(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
	mh.sendLegalActions(state, dispatcher, logger)
}

// fillWithBots seats a bot in every empty seat.
func (mh *matchHandler) fillWithBots(state *MatchState, logger runtime.Logger) bool {
	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		agent, err := bot.NewAgent(i, nil)
		if err != nil {
			logger.Error("Failed to create bot agent for seat %d: %v", i, err)
			continue
		}
		if agent.ID == "" || state.seatOf(agent.ID) >= 0 {
			logger.Warn("processBots: Bot identity %d is not provisioned or already seated", i)
			continue
		}
		state.Seats[i] = agent.ID
		state.Bots[agent.ID] = agent
		logger.Info("processBots: Added bot %s (%s) to seat %d", agent.Name, agent.ID, i)
		added = true
	}
	return added
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill a lobby holding a single human after a delay.
	if state.Table == nil {
		if state.GetHumanPlayerCount() != 1 {
			state.LastSinglePlayerTick = 0
			return
		}
		if state.LastSinglePlayerTick == 0 {
			state.LastSinglePlayerTick = state.Tick
			logger.Debug("processBots: Single player detected, starting auto-fill timer.")
		}
		if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay*tickRate) {
			if mh.fillWithBots(state, logger) {
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastMatchState(state, dispatcher, logger)
			}
			state.LastSinglePlayerTick = 0
		}
		return
	}

	if !state.InGame() {
		return
	}
	pos, agent := nextBot(state)
	if agent == nil {
		state.BotWaitUntil = 0
		return
	}
	if state.BotWaitUntil == 0 {
		state.BotWaitUntil = state.Tick + state.BotDelayTicks
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	legal := state.App.LegalActions(state.Table, pos)
	action, err := agent.Play(state.Table.State, pos, legal)
	if err != nil {
		logger.Error("processBots: Bot %s failed to choose an action: %v", agent.ID, err)
		return
	}
	events, err := state.App.ApplyAt(state.Table, pos, action)
	if err != nil {
		logger.Error("processBots: Bot %s action %v rejected: %v", agent.ID, action, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.afterChange(state, dispatcher, logger)
}

// nextBot returns the bot seat that can act, if any.
func nextBot(state *MatchState) (domain.Position, *bot.Agent) {
	for _, pos := range domain.Positions {
		userID := state.Seats[pos]
		if !isBotUserId(userID) {
			continue
		}
		if len(state.App.LegalActions(state.Table, pos)) == 0 {
			continue
		}
		agent, ok := state.Bots[userID]
		if !ok {
			agent = &bot.Agent{ID: userID, Name: bot.GetBotDisplayName(userID), Strategy: bot.FirstLegalBrain{}}
			state.Bots[userID] = agent
		}
		return pos, agent
	}
	return domain.NoPosition, nil
}

// broadcastMatchState sends every connected player their own snapshot.
func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]map[string]any, 0, len(state.Seats))
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := userID
		if p, ok := state.Presences[userID]; ok {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userID); name != "" {
			displayName = name
		}
		players = append(players, map[string]any{
			"user_id":      userID,
			"seat":         i,
			"is_owner":     i == state.OwnerSeat,
			"is_bot":       isBotUserId(userID),
			"display_name": displayName,
		})
	}

	for userID, presence := range state.Presences {
		snapshot := map[string]any{
			"seats":      state.Seats,
			"owner_seat": state.OwnerSeat,
			"tick":       state.Tick,
			"players":    players,
		}
		if state.Table != nil {
			snapshot["view"] = app.NewView(state.Table, domain.Position(state.seatOf(userID)))
		}
		mh.send(dispatcher, logger, OpMatchState, snapshot, []runtime.Presence{presence})
	}
}

// sendLegalActions tells each connected seat what it may do. A rob is sent as its
// card pool and keep size instead of every combination.
func (mh *matchHandler) sendLegalActions(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.InGame() {
		return
	}
	for _, pos := range domain.Positions {
		presence, ok := state.Presences[state.Seats[pos]]
		if !ok {
			continue
		}
		legal := state.App.LegalActions(state.Table, pos)
		if len(legal) == 0 {
			continue
		}
		payload := map[string]any{"seat": pos}
		if sel, ok := legal[0].(domain.SelectHand); ok {
			payload["select"] = map[string]any{
				"op":   OpSelectHand,
				"pool": cardStrings(domain.RobPool(&state.Table.State)),
				"size": len(sel.Cards),
			}
		} else {
			actions := make([]map[string]any, len(legal))
			for i, a := range legal {
				actions[i] = actionToMap(a)
			}
			payload["actions"] = actions
		}
		mh.send(dispatcher, logger, OpLegalActions, payload, []runtime.Presence{presence})
	}
}

// dispatchEvents sends app events to their recipients.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// Private events for unconnected seats (bots) must not fall back to broadcast.
			if len(recipients) == 0 {
				continue
			}
		}
		mh.send(dispatcher, logger, OpGameEvent, map[string]any{"kind": ev.Kind, "data": ev.Payload}, recipients)
	}
}

func (mh *matchHandler) send(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, recipients []runtime.Presence) {
	msg, err := toStruct(payload)
	if err != nil {
		logger.Error("Failed to encode message %d: %v", opCode, err)
		return
	}
	bytes, err := proto.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal message %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to send message %d: %v", opCode, err)
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	mh.send(dispatcher, logger, OpGameError, map[string]any{"code": code, "message": message}, []runtime.Presence{presence})
}

// errorCode maps engine and service errors onto client error codes.
func errorCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return ErrCodeBadRequest
	case errors.Is(err, app.ErrUnknownPlayer), errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrEliminated), errors.Is(err, domain.ErrInvalidPosition):
		return ErrCodeForbidden
	case errors.Is(err, domain.ErrInvalidAction), errors.Is(err, domain.ErrGameOver),
		errors.Is(err, app.ErrNothingToUndo), errors.Is(err, app.ErrNothingToRedo),
		errors.Is(err, app.ErrSeatsMissing):
		return ErrCodeConflict
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidPhase):
		return ErrCodeInternal
	}
	return ErrCodeRule
}

func labelPhase(state *MatchState) string {
	if state.Table == nil {
		return labelPhaseLobby
	}
	return string(state.Table.State.Phase)
}

func encodeLabel(state *MatchState) (string, error) {
	open := 0
	if !state.InGame() {
		open = state.GetOpenSeatsCount()
	}
	label, err := structpb.NewStruct(map[string]any{
		MatchLabelKey_OpenSeats: open,
		MatchLabelKey_Game:      GameName,
		MatchLabelKey_Phase:     labelPhase(state),
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok && matchState.Table != nil {
		matchState.App.CloseTable(matchState.Table.ID)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
