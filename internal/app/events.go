package app

import "github.com/sankhadeeproy007/naga-poker/internal/domain"

// EventKind identifies emitted game events for transport dispatch.
type EventKind string

const (
	EventRosterUpdated    EventKind = "player_update"
	EventGameStarted      EventKind = "game_started"
	EventGameUpdated      EventKind = "game_update"
	EventHandUpdated      EventKind = "hand_update"
	EventUndoUpdated      EventKind = "undo_update"
	EventGameWon          EventKind = "game_won"
	EventRestartRequested EventKind = "restart_requested"
	EventRestartTally     EventKind = "restart_vote_update"
	EventRestartCancelled EventKind = "restart_cancelled"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // usernames; empty means broadcast
}

// RosterUpdatedPayload lists the seated players in join order.
type RosterUpdatedPayload struct {
	Players []string `json:"players"`
}

// GameStartedPayload is sent privately to each player on deal or reconnect. Only the
// recipient's own hand is ever included.
type GameStartedPayload struct {
	Hand             []domain.Card        `json:"hand"`
	TurnIndex        int                  `json:"turnIndex"`
	TableCards       []domain.Card        `json:"tableCards"`
	RoundStartIndex  int                  `json:"roundStartIndex"`
	PlayHistory      []domain.PlayRecord  `json:"playHistory"`
	ActiveComboType  domain.ComboType     `json:"activeComboType"`
	ActiveComboValue int                  `json:"activeComboValue"`
	Players          []domain.PlayerCount `json:"players"`
	UndoBudgets      map[string]int       `json:"playerUndoCounts"`
}

// GameUpdatedPayload is the shared view broadcast after every state change.
type GameUpdatedPayload struct {
	TurnIndex        int                  `json:"turnIndex"`
	TableCards       []domain.Card        `json:"tableCards"`
	RoundStartIndex  int                  `json:"roundStartIndex"`
	PlayHistory      []domain.PlayRecord  `json:"playHistory"`
	ActiveComboType  domain.ComboType     `json:"activeComboType"`
	ActiveComboValue int                  `json:"activeComboValue"`
	Players          []domain.PlayerCount `json:"players"`
	LastAction       string               `json:"lastAction"`
	UndoBudgets      map[string]int       `json:"playerUndoCounts"`
}

// HandUpdatedPayload carries a player's private hand after a play or undo.
type HandUpdatedPayload struct {
	Hand []domain.Card `json:"hand"`
}

// UndoUpdatedPayload broadcasts remaining undo budgets.
type UndoUpdatedPayload struct {
	UndoBudgets map[string]int `json:"playerUndoCounts"`
}

// GameWonPayload announces the winner.
type GameWonPayload struct {
	Winner string `json:"winner"`
}

// RestartRequestedPayload announces a pending restart poll.
type RestartRequestedPayload struct {
	Requester string `json:"requester"`
}

// RestartTallyPayload carries the current yes-vote count.
type RestartTallyPayload struct {
	Count int `json:"count"`
}
