package domain

// MaxSnapshots bounds the undo history depth.
const MaxSnapshots = 10

// snapshot is a deep copy of everything undo must restore. Undo budgets are not part
// of it: a spent undo stays spent.
type snapshot struct {
	tableCards       []Card
	hands            map[string][]Card
	turnIndex        int
	activeComboType  ComboType
	activeComboValue int
	roundStartIndex  int
	lastPlayerToPlay string
	lastActor        string
	playHistory      []PlayRecord
}

// SaveSnapshot pushes a deep copy of the mutable state onto the history stack,
// dropping the oldest entry beyond MaxSnapshots. Call it before every accepted play
// or pass.
func (g *Game) SaveSnapshot() {
	hands := make(map[string][]Card, len(g.Hands))
	for name, hand := range g.Hands {
		hands[name] = append([]Card{}, hand...)
	}

	g.history = append(g.history, snapshot{
		tableCards:       append([]Card{}, g.TableCards...),
		hands:            hands,
		turnIndex:        g.TurnIndex,
		activeComboType:  g.ActiveComboType,
		activeComboValue: g.ActiveComboValue,
		roundStartIndex:  g.RoundStartIndex,
		lastPlayerToPlay: g.LastPlayerToPlay,
		lastActor:        g.LastActor,
		playHistory:      append([]PlayRecord{}, g.PlayHistory...),
	})

	if len(g.history) > MaxSnapshots {
		g.history = g.history[1:]
	}
}

// RestoreSnapshot pops the most recent snapshot and replaces the live state with it.
// Reports false when the stack is empty.
func (g *Game) RestoreSnapshot() bool {
	if len(g.history) == 0 {
		return false
	}

	prev := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.TableCards = prev.tableCards
	g.Hands = prev.hands
	g.TurnIndex = prev.turnIndex
	g.ActiveComboType = prev.activeComboType
	g.ActiveComboValue = prev.activeComboValue
	g.RoundStartIndex = prev.roundStartIndex
	g.LastPlayerToPlay = prev.lastPlayerToPlay
	g.LastActor = prev.lastActor
	g.PlayHistory = prev.playHistory
	return true
}

// SnapshotDepth returns the number of stored snapshots.
func (g *Game) SnapshotDepth() int {
	return len(g.history)
}
