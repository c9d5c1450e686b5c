package domain

import "sort"

// IsTrump reports whether c belongs to the trump suit, counting the wrong five
// (the five of the same-colored suit) as trump.
func IsTrump(c Card, trump Suit) bool {
	if !trump.Valid() {
		return false
	}
	if c.Suit == trump {
		return true
	}
	return c.Rank == RankFive && c.Suit == trump.SameColor()
}

// IsRightFive reports whether c is the five of the trump suit.
func IsRightFive(c Card, trump Suit) bool {
	return trump.Valid() && c.Rank == RankFive && c.Suit == trump
}

// IsWrongFive reports whether c is the five of the suit sharing the trump color.
func IsWrongFive(c Card, trump Suit) bool {
	return trump.Valid() && c.Rank == RankFive && c.Suit == trump.SameColor()
}

// TrumpStrength orders trump cards for trick resolution:
// A > K > Q > J > 10 > 9 > 8 > 7 > 6 > right five > wrong five > 4 > 3 > 2.
// Non-trump cards report 0.
func TrumpStrength(c Card, trump Suit) int {
	if !IsTrump(c, trump) {
		return 0
	}
	switch {
	case c.Rank >= RankSix:
		return c.Rank + 1
	case IsRightFive(c, trump):
		return 6
	case IsWrongFive(c, trump):
		return 5
	default:
		return c.Rank
	}
}

// PointValue returns the scoring value of a trump card: one point each for
// A, J, 10 and 2, five points for either five. Non-trump cards are worth nothing.
func PointValue(c Card, trump Suit) int {
	if !IsTrump(c, trump) {
		return 0
	}
	switch c.Rank {
	case RankAce, RankJack, RankTen, RankTwo:
		return 1
	case RankFive:
		return 5
	}
	return 0
}

// IsPointCard reports whether c scores when captured.
func IsPointCard(c Card, trump Suit) bool {
	return PointValue(c, trump) > 0
}

// TotalPoints sums the point value of cards under trump.
func TotalPoints(cards []Card, trump Suit) int {
	total := 0
	for _, c := range cards {
		total += PointValue(c, trump)
	}
	return total
}

// TrumpCards returns the 14 trump cards for a suit, strongest first.
func TrumpCards(trump Suit) []Card {
	if !trump.Valid() {
		return nil
	}
	cards := make([]Card, 0, 14)
	for r := RankAce; r >= RankTwo; r-- {
		cards = append(cards, Card{Rank: r, Suit: trump})
		if r == RankFive {
			cards = append(cards, Card{Rank: RankFive, Suit: trump.SameColor()})
		}
	}
	return cards
}

// FilterTrump returns the trump cards of hand in their original order.
func FilterTrump(hand []Card, trump Suit) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if IsTrump(c, trump) {
			out = append(out, c)
		}
	}
	return out
}

// FilterNonTrump returns the non-trump cards of hand in their original order.
func FilterNonTrump(hand []Card, trump Suit) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if !IsTrump(c, trump) {
			out = append(out, c)
		}
	}
	return out
}

// CountTrump returns how many trump cards hand holds.
func CountTrump(hand []Card, trump Suit) int {
	n := 0
	for _, c := range hand {
		if IsTrump(c, trump) {
			n++
		}
	}
	return n
}

// SortByTrumpStrength orders cards strongest trump first. Non-trump cards sort
// after trump by face rank, ties broken by suit order.
func SortByTrumpStrength(cards []Card, trump Suit) {
	sort.SliceStable(cards, func(i, j int) bool {
		si, sj := TrumpStrength(cards[i], trump), TrumpStrength(cards[j], trump)
		if si != sj {
			return si > sj
		}
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}
		return cards[i].Suit < cards[j].Suit
	})
}
