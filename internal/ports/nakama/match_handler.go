package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/sankhadeeproy007/naga-poker/internal/app"
	"github.com/sankhadeeproy007/naga-poker/internal/config"
	"github.com/sankhadeeproy007/naga-poker/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Label is the match label advertised for quick-match queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

const labelGameName = "nagapoker"

// Match phases advertised in the label.
const (
	PhaseLobby   = "lobby"
	PhasePlaying = "playing"
	PhaseWon     = "won"
)

// MatchState holds the authoritative runtime state for the match handler. Exactly one
// game occupies the match at a time; all mutation happens inside the single-threaded
// match loop.
type MatchState struct {
	// Roster is the stable player identities in join order, up to three. A seat
	// survives disconnects once a game has been dealt.
	Roster []string

	// Presences maps username to the live connection handle. A reconnect replaces
	// the handle; the identity stays.
	Presences map[string]runtime.Presence

	App  *app.Service
	Game *domain.Game

	Poll *app.RestartPoll

	// TurnUnlockAtTick is the advisory undo window deadline. Zero means no window
	// is armed; at most one is outstanding.
	TurnUnlockAtTick int64
}

func (ms *MatchState) phase() string {
	switch {
	case ms.Game == nil:
		return PhaseLobby
	case ms.Game.Active:
		return PhasePlaying
	default:
		return PhaseWon
	}
}

func (ms *MatchState) usernameForSender(userID string) (string, bool) {
	for name, p := range ms.Presences {
		if p != nil && p.GetUserId() == userID {
			return name, true
		}
	}
	return "", false
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
	}

	labelBytes, err := json.Marshal(Label{Open: true, Game: labelGameName, Phase: PhaseLobby})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second; the turn lock deadline counts ticks
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt admits the first three distinct usernames, and reconnects by name
// once a game exists. Everyone else is told the game is full.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	username := presence.GetUsername()
	if username == "" {
		return state, false, "username required"
	}

	if matchState.Game != nil {
		// Mid-game only the three dealt identities may (re)connect.
		if matchState.Game.SeatOf(username) >= 0 {
			return state, true, ""
		}
		return state, false, "game_full"
	}

	for _, name := range matchState.Roster {
		if name == username {
			return state, true, "" // lobby rejoin
		}
	}
	if len(matchState.Roster) >= domain.NumSeats {
		return state, false, "game_full"
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
		username := p.GetUsername()

		if matchState.Game != nil {
			// Reconnect: swap in the new handle and replay the player's state.
			matchState.Presences[username] = p
			logger.Info("MatchJoin: Player %s reconnected.", username)

			ev, err := matchState.App.ReplayState(matchState.Game, username)
			if err != nil {
				logger.Error("MatchJoin: Replay failed for %s: %v", username, err)
				continue
			}
			mh.dispatchEvent(matchState, dispatcher, logger, ev)
			continue
		}

		matchState.Presences[username] = p
		if !containsName(matchState.Roster, username) {
			matchState.Roster = append(matchState.Roster, username)
		}
		mh.broadcastRoster(matchState, dispatcher, logger)

		if len(matchState.Roster) == domain.NumSeats {
			mh.startGame(matchState, dispatcher, logger)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave frees a lobby seat. Once a game has been dealt the seat is retained so
// the roster never shrinks mid-game; only the stale connection handle is dropped.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		username := p.GetUsername()
		delete(matchState.Presences, username)

		if matchState.Game == nil {
			matchState.Roster = removeName(matchState.Roster, username)
			logger.Debug("MatchLeave: %s left the lobby.", username)
			mh.broadcastRoster(matchState, dispatcher, logger)
		} else {
			logger.Debug("MatchLeave: %s disconnected mid-game, seat retained.", username)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlayTurn:
			mh.handlePlayTurn(matchState, dispatcher, logger, tick, msg)
		case OpPassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		case OpUndoTurn:
			mh.handleUndoTurn(matchState, dispatcher, logger, msg)
		case OpRequestRestart:
			mh.handleRequestRestart(matchState, dispatcher, logger, msg)
		case OpVoteRestart:
			mh.handleVoteRestart(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	// Advisory undo window: broadcast the unlock once the deadline passes.
	if matchState.TurnUnlockAtTick > 0 && tick >= matchState.TurnUnlockAtTick {
		matchState.TurnUnlockAtTick = 0
		mh.broadcast(dispatcher, logger, OpTurnUnlocked, nil)
	}

	return matchState
}

func (mh *matchHandler) handlePlayTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, tick int64, msg runtime.MatchData) {
	username, seat, ok := mh.resolveActor(state, logger, msg)
	if !ok {
		return
	}

	var payload struct {
		Indices []int `json:"indices"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("PlayTurn: Malformed payload from %s: %v", username, err)
		return
	}

	events, err := state.App.PlayTurn(state.Game, seat, payload.Indices)
	if err != nil {
		logger.Warn("PlayTurn: Rejected play by %s (seat %d): %v", username, seat, err)
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(state, dispatcher, logger, ev)
	}

	if state.Game.Active {
		// Arm the undo grace window; a new play supersedes any pending unlock.
		state.TurnUnlockAtTick = tick + int64(config.GetTurnLockSeconds())
	} else {
		// Game won: cancel the pending window and advertise the phase change.
		state.TurnUnlockAtTick = 0
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	username, seat, ok := mh.resolveActor(state, logger, msg)
	if !ok {
		return
	}

	events, err := state.App.PassTurn(state.Game, seat)
	if err != nil {
		logger.Warn("PassTurn: Rejected pass by %s (seat %d): %v", username, seat, err)
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleUndoTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	username, _, ok := mh.resolveActor(state, logger, msg)
	if !ok {
		return
	}

	events, err := state.App.UndoTurn(state.Game, username)
	if err != nil {
		logger.Warn("UndoTurn: Rejected undo by %s: %v", username, err)
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleRequestRestart(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	username, _, ok := mh.resolveActor(state, logger, msg)
	if !ok {
		return
	}

	state.Poll = app.NewRestartPoll(username)
	logger.Info("Restart: Requested by %s.", username)

	mh.dispatchEvent(state, dispatcher, logger, app.Event{
		Kind:    app.EventRestartRequested,
		Payload: app.RestartRequestedPayload{Requester: username},
	})
	mh.dispatchEvent(state, dispatcher, logger, app.Event{
		Kind:    app.EventRestartTally,
		Payload: app.RestartTallyPayload{Count: state.Poll.Count()},
	})
}

func (mh *matchHandler) handleVoteRestart(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	username, _, ok := mh.resolveActor(state, logger, msg)
	if !ok {
		return
	}
	if state.Poll == nil {
		logger.Warn("VoteRestart: No restart poll pending, vote from %s ignored.", username)
		return
	}

	var payload struct {
		Vote bool `json:"vote"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("VoteRestart: Malformed payload from %s: %v", username, err)
		return
	}

	if !payload.Vote {
		logger.Info("Restart: %s voted no, poll cancelled.", username)
		state.Poll = nil
		mh.dispatchEvent(state, dispatcher, logger, app.Event{Kind: app.EventRestartCancelled})
		return
	}

	state.Poll.VoteYes(username)
	mh.dispatchEvent(state, dispatcher, logger, app.Event{
		Kind:    app.EventRestartTally,
		Payload: app.RestartTallyPayload{Count: state.Poll.Count()},
	})

	if state.Poll.Unanimous(domain.NumSeats) {
		logger.Info("Restart: Unanimous, dealing a new game.")
		state.Poll = nil
		mh.startGame(state, dispatcher, logger)
		mh.updateLabel(state, dispatcher, logger)
	}
}

// startGame deals a fresh game for the current roster, preserving seat order, and
// fans the private hands out.
func (mh *matchHandler) startGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	roster := state.Roster
	if state.Game != nil {
		roster = state.Game.Players // restart inherits the dealt seat order
	}

	game, events, err := state.App.StartGame(roster)
	if err != nil {
		logger.Error("StartGame: Failed to deal: %v", err)
		return
	}

	state.Game = game
	state.TurnUnlockAtTick = 0
	logger.Info("StartGame: Dealt %d players, seat %d opens.", len(game.Players), game.TurnIndex)

	for _, ev := range events {
		mh.dispatchEvent(state, dispatcher, logger, ev)
	}
	mh.updateLabel(state, dispatcher, logger)
}

// resolveActor maps an inbound message to a seated player. Messages from unknown
// senders or before a deal are dropped.
func (mh *matchHandler) resolveActor(state *MatchState, logger runtime.Logger, msg runtime.MatchData) (string, int, bool) {
	if state.Game == nil {
		logger.Warn("MatchLoop: Message before game start, dropped.")
		return "", -1, false
	}
	username, ok := state.usernameForSender(msg.GetUserId())
	if !ok {
		logger.Warn("MatchLoop: Message from unknown sender %s, dropped.", msg.GetUserId())
		return "", -1, false
	}
	return username, state.Game.SeatOf(username), true
}

func (mh *matchHandler) broadcastRoster(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.dispatchEvent(state, dispatcher, logger, app.Event{
		Kind:    app.EventRosterUpdated,
		Payload: app.RosterUpdatedPayload{Players: state.Roster},
	})
}

// dispatchEvent converts an app event to its opcode and sends it, narrowing delivery
// to the named recipients when set.
func (mh *matchHandler) dispatchEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	switch ev.Kind {
	case app.EventRosterUpdated:
		opCode = OpPlayerUpdate
	case app.EventGameStarted:
		opCode = OpGameStarted
	case app.EventGameUpdated:
		opCode = OpGameUpdate
	case app.EventHandUpdated:
		opCode = OpHandUpdate
	case app.EventUndoUpdated:
		opCode = OpUndoUpdate
	case app.EventGameWon:
		opCode = OpGameWon
	case app.EventRestartRequested:
		opCode = OpRestartRequested
	case app.EventRestartTally:
		opCode = OpRestartVoteUpdate
	case app.EventRestartCancelled:
		opCode = OpRestartCancelled
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	var data []byte
	if ev.Payload != nil {
		var err error
		data, err = json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			return
		}
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, name := range ev.Recipients {
			if p, ok := state.Presences[name]; ok && p != nil {
				recipients = append(recipients, p)
			}
		}
		// Targeted event with nobody connected: never widen it to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to dispatch event %v: %v", ev.Kind, err)
	}
}

func (mh *matchHandler) broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any) {
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to marshal payload for opcode %d: %v", opCode, err)
			return
		}
	}
	if err := dispatcher.BroadcastMessage(opCode, data, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label := Label{
		Open:  state.Game == nil && len(state.Roster) < domain.NumSeats,
		Game:  labelGameName,
		Phase: state.phase(),
	}
	labelBytes, err := json.Marshal(label)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func removeName(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
