package domain

import "sort"

// Suit names, in ascending strength order.
const (
	SuitDiamonds = "diamonds"
	SuitClubs    = "clubs"
	SuitHearts   = "hearts"
	SuitSpades   = "spades"
)

// Ranks in ascending strength order. The 2 outranks everything.
var Ranks = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

// Suits in ascending strength order.
var Suits = []string{SuitDiamonds, SuitClubs, SuitHearts, SuitSpades}

var rankValues = func() map[string]int {
	m := make(map[string]int, len(Ranks))
	for i, r := range Ranks {
		m[r] = i + 1
	}
	return m
}()

var suitValues = map[string]int{
	SuitDiamonds: 1,
	SuitClubs:    2,
	SuitHearts:   3,
	SuitSpades:   4,
}

// Card is a single playing card. Rank and Suit are the wire strings the clients use.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// ThreeOfClubs is the mandatory opening card: the lowest card in play once the 3 of
// diamonds is excluded from the deck.
var ThreeOfClubs = Card{Rank: "3", Suit: SuitClubs}

// RankValue returns the 1-based strength of a rank, or 0 for an unknown rank.
func RankValue(rank string) int {
	return rankValues[rank]
}

// CardValue returns the card's strength. Rank dominates and suit breaks ties, so every
// card in the deck has a distinct value.
func CardValue(c Card) int {
	return RankValue(c.Rank)*10 + suitValues[c.Suit]
}

// SortHand sorts cards in place by ascending strength.
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		return CardValue(hand[i]) < CardValue(hand[j])
	})
}
