package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sankhadeeproy007/naga-poker/internal/domain"
)

// Service contains the game use-cases operating on domain state. All methods are
// called from the single match loop goroutine; they validate, then mutate, with no
// suspension in between.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrWrongPlayerCount = errors.New("game needs exactly three players")
	ErrGameInactive     = errors.New("game is not active")
	ErrNotYourTurn      = errors.New("not this seat's turn")
	ErrBadIndices       = errors.New("card indices out of range")
	ErrInvalidCombo     = errors.New("cards do not form a playable combo")
	ErrOpeningNotSingle = errors.New("game must open with a single card")
	ErrOpeningNeeds3C   = errors.New("game must open with the 3 of clubs")
	ErrComboTypeDiffers = errors.New("combo type does not match the active round")
	ErrComboTooWeak     = errors.New("combo does not beat the active combo")
	ErrUnknownPlayer    = errors.New("player is not seated in this game")
	ErrNoUndosLeft      = errors.New("undo budget exhausted")
	ErrNotLastActor     = errors.New("only the last actor may undo")
	ErrNothingToUndo    = errors.New("no history to undo")
)

// StartGame deals a fresh game for the given players, in seat order. The seat dealt
// the 3 of clubs opens. The returned events contain one private game_started per
// player; only the recipient's hand is included in each.
func (s *Service) StartGame(usernames []string) (*domain.Game, []Event, error) {
	if len(usernames) != domain.NumSeats {
		return nil, nil, ErrWrongPlayerCount
	}

	deck := domain.ShuffleDeck(s.rng, domain.GenerateDeck())
	dealt := domain.DealHands(deck)

	game := &domain.Game{
		Active:      true,
		Players:     append([]string{}, usernames...),
		Hands:       make(map[string][]domain.Card, domain.NumSeats),
		UndoBudgets: make(map[string]int, domain.NumSeats),
	}

	for i, name := range game.Players {
		game.Hands[name] = dealt[i]
		game.UndoBudgets[name] = MaxUndosPerPlayer
		for _, c := range dealt[i] {
			if c == domain.ThreeOfClubs {
				game.TurnIndex = i
			}
		}
	}

	events := make([]Event, 0, domain.NumSeats)
	for _, name := range game.Players {
		events = append(events, Event{
			Kind:       EventGameStarted,
			Payload:    s.startedPayload(game, name),
			Recipients: []string{name},
		})
	}
	return game, events, nil
}

// ReplayState rebuilds the private game_started view for a reconnecting player.
func (s *Service) ReplayState(game *domain.Game, username string) (Event, error) {
	if game.SeatOf(username) < 0 {
		return Event{}, ErrUnknownPlayer
	}
	return Event{
		Kind:       EventGameStarted,
		Payload:    s.startedPayload(game, username),
		Recipients: []string{username},
	}, nil
}

func (s *Service) startedPayload(game *domain.Game, username string) GameStartedPayload {
	return GameStartedPayload{
		Hand:             game.Hands[username],
		TurnIndex:        game.TurnIndex,
		TableCards:       game.TableCards,
		RoundStartIndex:  game.RoundStartIndex,
		PlayHistory:      game.PlayHistory,
		ActiveComboType:  game.ActiveComboType,
		ActiveComboValue: game.ActiveComboValue,
		Players:          game.HandCounts(),
		UndoBudgets:      game.UndoBudgets,
	}
}

// PlayTurn validates and executes a play by the given seat. Rejections leave the
// state untouched; the caller logs the error and surfaces nothing to the client.
func (s *Service) PlayTurn(game *domain.Game, actorSeat int, indices []int) ([]Event, error) {
	if !game.Active {
		return nil, ErrGameInactive
	}
	if actorSeat != game.TurnIndex {
		return nil, ErrNotYourTurn
	}

	username := game.Players[actorSeat]
	hand := game.Hands[username]

	cards, ok := domain.CardsAt(hand, indices)
	if !ok || len(cards) == 0 {
		return nil, ErrBadIndices
	}

	combo, ok := domain.IdentifyCombo(cards)
	if !ok {
		return nil, ErrInvalidCombo
	}

	if len(game.ActiveTableCards()) == 0 {
		// New round; the very first play of the game must be the 3 of clubs alone.
		if len(game.TableCards) == 0 && game.RoundStartIndex == 0 {
			if combo.Type != domain.ComboSingle {
				return nil, ErrOpeningNotSingle
			}
			if cards[0] != domain.ThreeOfClubs {
				return nil, ErrOpeningNeeds3C
			}
		}
	} else {
		// The opening combo type owns the round: no cross-type beats, ever.
		if combo.Type != game.ActiveComboType {
			return nil, ErrComboTypeDiffers
		}
		if combo.Value <= game.ActiveComboValue {
			return nil, ErrComboTooWeak
		}
	}

	game.SaveSnapshot()

	game.Hands[username] = domain.RemoveIndices(hand, indices)
	game.TableCards = append(game.TableCards, cards...)
	game.PlayHistory = append(game.PlayHistory, domain.PlayRecord{
		Player:    username,
		CardCount: len(cards),
	})
	game.ActiveComboType = combo.Type
	game.ActiveComboValue = combo.Value
	game.TurnIndex = domain.NextSeat(game.TurnIndex)
	game.LastPlayerToPlay = username
	game.LastActor = username

	var action string
	if combo.Type == domain.ComboSingle {
		action = fmt.Sprintf("%s played %s of %s", username, cards[0].Rank, cards[0].Suit)
	} else {
		action = fmt.Sprintf("%s played %s", username, combo.Type)
	}

	events := []Event{
		{Kind: EventGameUpdated, Payload: s.updatePayload(game, action)},
		{Kind: EventHandUpdated, Payload: HandUpdatedPayload{Hand: game.Hands[username]}, Recipients: []string{username}},
		{Kind: EventUndoUpdated, Payload: UndoUpdatedPayload{UndoBudgets: game.UndoBudgets}},
	}

	if len(game.Hands[username]) == 0 {
		game.Active = false
		events = append(events, Event{Kind: EventGameWon, Payload: GameWonPayload{Winner: username}})
	}
	return events, nil
}

// PassTurn validates and executes a pass. When the pass hands the turn back to the
// last player who put cards down, the round soft-resets: the round offset advances to
// the end of the pile and the active combo clears, but the pile itself is kept.
func (s *Service) PassTurn(game *domain.Game, actorSeat int) ([]Event, error) {
	if !game.Active {
		return nil, ErrGameInactive
	}
	if actorSeat != game.TurnIndex {
		return nil, ErrNotYourTurn
	}

	username := game.Players[actorSeat]

	game.SaveSnapshot()

	nextSeat := domain.NextSeat(game.TurnIndex)
	nextPlayer := game.Players[nextSeat]
	game.TurnIndex = nextSeat
	game.LastActor = username

	action := fmt.Sprintf("%s passed", username)
	if nextPlayer == game.LastPlayerToPlay {
		game.RoundStartIndex = len(game.TableCards)
		game.ActiveComboType = domain.ComboNone
		game.ActiveComboValue = 0
		action = fmt.Sprintf("%s passed. Round won by %s!", username, nextPlayer)
	}

	return []Event{
		{Kind: EventGameUpdated, Payload: s.updatePayload(game, action)},
	}, nil
}

// UndoTurn rolls the game back one action. Only the player who acted last may undo,
// their budget must not be spent, and there must be history to pop. Undo does not
// consume a turn.
func (s *Service) UndoTurn(game *domain.Game, username string) ([]Event, error) {
	if !game.Active {
		return nil, ErrGameInactive
	}
	if game.SeatOf(username) < 0 {
		return nil, ErrUnknownPlayer
	}
	if game.UndoBudgets[username] <= 0 {
		return nil, ErrNoUndosLeft
	}
	if game.LastActor != username {
		return nil, ErrNotLastActor
	}
	if !game.RestoreSnapshot() {
		return nil, ErrNothingToUndo
	}

	game.UndoBudgets[username]--

	action := fmt.Sprintf("%s undid their last move", username)
	return []Event{
		{Kind: EventGameUpdated, Payload: s.updatePayload(game, action)},
		{Kind: EventHandUpdated, Payload: HandUpdatedPayload{Hand: game.Hands[username]}, Recipients: []string{username}},
		{Kind: EventUndoUpdated, Payload: UndoUpdatedPayload{UndoBudgets: game.UndoBudgets}},
	}, nil
}

func (s *Service) updatePayload(game *domain.Game, action string) GameUpdatedPayload {
	return GameUpdatedPayload{
		TurnIndex:        game.TurnIndex,
		TableCards:       game.TableCards,
		RoundStartIndex:  game.RoundStartIndex,
		PlayHistory:      game.PlayHistory,
		ActiveComboType:  game.ActiveComboType,
		ActiveComboValue: game.ActiveComboValue,
		Players:          game.HandCounts(),
		LastAction:       action,
		UndoBudgets:      game.UndoBudgets,
	}
}
