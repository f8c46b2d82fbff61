package domain

import "sort"

// ComboType identifies a playable card combination.
type ComboType string

const (
	ComboNone     ComboType = ""
	ComboSingle   ComboType = "single"
	ComboStraight ComboType = "straight"
	ComboTriplet  ComboType = "triplet" // full house, named by its triplet
	ComboQuads    ComboType = "quads"
)

// Combo is a classified combination with its comparison value. Combos only ever
// compete against combos of the same type; Value ordering is meaningless across types.
type Combo struct {
	Type  ComboType
	Value int
}

// IdentifyCombo classifies a set of cards into a playable combination.
//
// One card is always a valid single. A multi-card set containing any rank-2 card is
// never valid: the 2 can only be played on its own. Five-card sets are checked in
// priority order quads, full house, straight; the first match wins. Every other
// shape or card count is invalid.
func IdentifyCombo(cards []Card) (Combo, bool) {
	if len(cards) > 1 {
		for _, c := range cards {
			if c.Rank == "2" {
				return Combo{}, false
			}
		}
	}

	if len(cards) == 1 {
		return Combo{Type: ComboSingle, Value: CardValue(cards[0])}, true
	}

	if len(cards) == 5 {
		if v, ok := checkQuads(cards); ok {
			return Combo{Type: ComboQuads, Value: v}, true
		}
		if v, ok := checkFullHouse(cards); ok {
			return Combo{Type: ComboTriplet, Value: v}, true
		}
		if v, ok := checkStraight(cards); ok {
			return Combo{Type: ComboStraight, Value: v}, true
		}
	}

	return Combo{}, false
}

// checkQuads matches four of a kind plus a kicker. Value is the rank power of the quad.
func checkQuads(cards []Card) (int, bool) {
	for rank, n := range rankCounts(cards) {
		if n == 4 {
			return RankValue(rank), true
		}
	}
	return 0, false
}

// checkFullHouse matches three of one rank and two of another. Value is the rank power
// of the triplet.
func checkFullHouse(cards []Card) (int, bool) {
	triplet := ""
	pair := false
	for rank, n := range rankCounts(cards) {
		switch n {
		case 3:
			triplet = rank
		case 2:
			pair = true
		}
	}
	if triplet != "" && pair {
		return RankValue(triplet), true
	}
	return 0, false
}

// checkStraight matches five sequential ranks. Value is the CardValue of the highest
// card, so suit breaks ties between straights ending on the same rank.
func checkStraight(cards []Card) (int, bool) {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return RankValue(sorted[i].Rank) < RankValue(sorted[j].Rank)
	})

	first := RankValue(sorted[0].Rank)
	for i := 1; i < len(sorted); i++ {
		if RankValue(sorted[i].Rank) != first+i {
			return 0, false
		}
	}
	return CardValue(sorted[len(sorted)-1]), true
}

func rankCounts(cards []Card) map[string]int {
	counts := make(map[string]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}
