package domain

// NumSeats is the fixed number of players in a game.
const NumSeats = 3

// PlayRecord is one executed play: who played and how many cards, for grouping the
// discard pile in displays.
type PlayRecord struct {
	Player    string `json:"player"`
	CardCount int    `json:"cardCount"`
}

// Game holds the authoritative state of one game instance. It has a single writer,
// the match loop, so no locking is needed.
type Game struct {
	// Active is false once a player empties their hand; no plays or passes are
	// accepted until a restart deals a new game.
	Active bool

	// Players is the fixed seating order, by username. The turn pointer indexes it.
	Players []string

	// Hands maps username to the player's current hand. Hands shrink on play and are
	// restored wholesale on undo.
	Hands map[string][]Card

	// TableCards is every card played in this game, append-only. It is never
	// truncated mid-game; RoundStartIndex marks where the current round begins.
	TableCards      []Card
	RoundStartIndex int

	// TurnIndex is the seat whose action is next, advanced anti-clockwise
	// ((i-1+3)%3) on every play or pass.
	TurnIndex int

	// Active combo owning the current round. Type is ComboNone when a round is open.
	ActiveComboType  ComboType
	ActiveComboValue int

	// LastPlayerToPlay is the last seat to put cards down; when a pass would hand
	// the turn back to them, the round soft-resets. LastActor additionally counts
	// passes and gates who may undo.
	LastPlayerToPlay string
	LastActor        string

	PlayHistory []PlayRecord

	// UndoBudgets maps username to remaining undos for this game.
	UndoBudgets map[string]int

	history []snapshot
}

// ActiveTableCards returns the cards of the current round.
func (g *Game) ActiveTableCards() []Card {
	return g.TableCards[g.RoundStartIndex:]
}

// SeatOf returns the seat index for a username, or -1 if they are not seated.
func (g *Game) SeatOf(username string) int {
	for i, name := range g.Players {
		if name == username {
			return i
		}
	}
	return -1
}

// NextSeat returns the seat after the given one in play order (anti-clockwise).
func NextSeat(seat int) int {
	return (seat - 1 + NumSeats) % NumSeats
}

// RemoveIndices deletes the cards at the given hand positions. Indices are applied
// from highest to lowest so earlier removals cannot shift later ones.
func RemoveIndices(hand []Card, indices []int) []Card {
	sorted := append([]int{}, indices...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	out := append([]Card{}, hand...)
	for _, idx := range sorted {
		out = append(out[:idx], out[idx+1:]...)
	}
	return out
}

// CardsAt resolves hand positions to cards. Reports false if any index is out of range
// or repeated.
func CardsAt(hand []Card, indices []int) ([]Card, bool) {
	seen := make(map[int]bool, len(indices))
	cards := make([]Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(hand) || seen[idx] {
			return nil, false
		}
		seen[idx] = true
		cards = append(cards, hand[idx])
	}
	return cards, true
}

// HandCounts returns the current hand size per seated player, in seat order.
type PlayerCount struct {
	Username  string `json:"username"`
	CardCount int    `json:"cardCount"`
}

func (g *Game) HandCounts() []PlayerCount {
	counts := make([]PlayerCount, len(g.Players))
	for i, name := range g.Players {
		counts[i] = PlayerCount{Username: name, CardCount: len(g.Hands[name])}
	}
	return counts
}
