package domain

import "sort"

// SelectRobHand picks n cards for the robbing dealer. Buckets are taken in order:
// point trump, other trump, high non-trump (A/K/Q/J), remaining non-trump. Trump buckets
// are ordered by trump strength, non-trump by rank then suit order, so the same pool
// always yields the same hand.
func SelectRobHand(pool []Card, trump Suit, n int) []Card {
	var pointTrump, otherTrump, high, rest []Card
	for _, c := range pool {
		switch {
		case IsPointCard(c, trump):
			pointTrump = append(pointTrump, c)
		case IsTrump(c, trump):
			otherTrump = append(otherTrump, c)
		case c.Rank >= RankJack:
			high = append(high, c)
		default:
			rest = append(rest, c)
		}
	}
	SortByTrumpStrength(pointTrump, trump)
	SortByTrumpStrength(otherTrump, trump)
	sortByRankDesc(high)
	sortByRankDesc(rest)

	picked := make([]Card, 0, n)
	for _, bucket := range [][]Card{pointTrump, otherTrump, high, rest} {
		for _, c := range bucket {
			if len(picked) == n {
				return picked
			}
			picked = append(picked, c)
		}
	}
	return picked
}

func sortByRankDesc(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
}
