package domain

import "math/rand"

// DeckSize is the number of cards in play: a standard deck minus the 3 of diamonds.
const DeckSize = 51

// HandSize is the number of cards each of the three players is dealt.
const HandSize = 17

// GenerateDeck returns the fixed 51-card universe. The 3 of diamonds is excluded so
// the deck splits evenly across three hands.
func GenerateDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if rank == "3" && suit == SuitDiamonds {
				continue
			}
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck using the provided source.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealHands splits a 51-card deck into three 17-card hands by contiguous thirds.
// Seat assignment is arbitrary; the 3-of-clubs opening rule decides who leads.
func DealHands(deck []Card) [3][]Card {
	var hands [3][]Card
	for i := 0; i < 3; i++ {
		hands[i] = append([]Card{}, deck[i*HandSize:(i+1)*HandSize]...)
	}
	return hands
}
