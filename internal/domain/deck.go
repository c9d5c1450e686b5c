package domain

import (
	"math/rand"
	"sort"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck returns the 52-card deck in canonical order: suits in Suits order,
// ranks ascending within each suit.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck using rng.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := cloneCards(deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DrawCards takes up to n cards off the top of deck and returns them with the rest.
// Neither result aliases deck.
func DrawCards(deck []Card, n int) (drawn, rest []Card) {
	if n > len(deck) {
		n = len(deck)
	}
	if n < 0 {
		n = 0
	}
	drawn = make([]Card, n)
	copy(drawn, deck[:n])
	rest = make([]Card, len(deck)-n)
	copy(rest, deck[n:])
	return drawn, rest
}

// SortHand orders cards canonically by suit, then rank.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cardOrder(cards[i]) < cardOrder(cards[j])
	})
}

func cardOrder(c Card) int {
	return int(c.Suit)*16 + c.Rank
}
