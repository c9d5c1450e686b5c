package domain

import (
	"fmt"
	"strings"
)

// Suit identifies one of the four French suits. SuitNone marks an undeclared trump.
type Suit int

const (
	SuitNone Suit = iota
	SuitHearts
	SuitDiamonds
	SuitClubs
	SuitSpades
)

// Suits lists the four real suits in their canonical order.
var Suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Color groups suits into the two pairs used by the wrong-five rule.
type Color int

const (
	ColorRed Color = iota
	ColorBlack
)

// Valid reports whether s is one of the four real suits.
func (s Suit) Valid() bool {
	return s >= SuitHearts && s <= SuitSpades
}

// Color returns the suit color. SuitNone is reported as red; callers check Valid first.
func (s Suit) Color() Color {
	if s == SuitClubs || s == SuitSpades {
		return ColorBlack
	}
	return ColorRed
}

// SameColor returns the other suit sharing this suit's color.
func (s Suit) SameColor() Suit {
	switch s {
	case SuitHearts:
		return SuitDiamonds
	case SuitDiamonds:
		return SuitHearts
	case SuitClubs:
		return SuitSpades
	case SuitSpades:
		return SuitClubs
	default:
		return SuitNone
	}
}

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "hearts"
	case SuitDiamonds:
		return "diamonds"
	case SuitClubs:
		return "clubs"
	case SuitSpades:
		return "spades"
	default:
		return "none"
	}
}

// letter is the single-character suit code used in card literals.
func (s Suit) letter() byte {
	switch s {
	case SuitHearts:
		return 'H'
	case SuitDiamonds:
		return 'D'
	case SuitClubs:
		return 'C'
	case SuitSpades:
		return 'S'
	default:
		return '?'
	}
}

// ParseSuit accepts a suit name ("hearts") or its letter ("H"), case-insensitive.
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hearts", "h":
		return SuitHearts, nil
	case "diamonds", "d":
		return SuitDiamonds, nil
	case "clubs", "c":
		return SuitClubs, nil
	case "spades", "s":
		return SuitSpades, nil
	}
	return SuitNone, fmt.Errorf("%w: %q", ErrInvalidSuit, s)
}

func (s Suit) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(text []byte) error {
	if string(text) == "none" || len(text) == 0 {
		*s = SuitNone
		return nil
	}
	parsed, err := ParseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank values follow the card face: 2..10, then jack=11 through ace=14.
const (
	RankTwo   = 2
	RankThree = 3
	RankFour  = 4
	RankFive  = 5
	RankSix   = 6
	RankSeven = 7
	RankEight = 8
	RankNine  = 9
	RankTen   = 10
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Card is an immutable (rank, suit) pair. Equality is structural.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard builds a card without validation.
func NewCard(rank int, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether the card is one of the 52 cards of a standard deck.
func (c Card) Valid() bool {
	return c.Rank >= RankTwo && c.Rank <= RankAce && c.Suit.Valid()
}

// String renders the card as a two-character literal such as "AH", "TD" or "5S".
func (c Card) String() string {
	return string([]byte{rankLetter(c.Rank), c.Suit.letter()})
}

func rankLetter(r int) byte {
	switch {
	case r >= RankTwo && r <= RankNine:
		return byte('0' + r)
	case r == RankTen:
		return 'T'
	case r == RankJack:
		return 'J'
	case r == RankQueen:
		return 'Q'
	case r == RankKing:
		return 'K'
	case r == RankAce:
		return 'A'
	}
	return '?'
}

// ParseCard decodes literals produced by Card.String. "10" is accepted for ten.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card literal %q", s)
	}
	var rank int
	switch ch := s[0]; {
	case ch >= '2' && ch <= '9':
		rank = int(ch - '0')
	case ch == 'T':
		rank = RankTen
	case ch == 'J':
		rank = RankJack
	case ch == 'Q':
		rank = RankQueen
	case ch == 'K':
		rank = RankKing
	case ch == 'A':
		rank = RankAce
	default:
		return Card{}, fmt.Errorf("invalid rank in card literal %q", s)
	}
	suit, err := ParseSuit(s[1:])
	if err != nil {
		return Card{}, fmt.Errorf("invalid suit in card literal %q", s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCards parses a space separated list of card literals and panics on error.
// It exists for fixtures.
func MustParseCards(list string) []Card {
	fields := strings.Fields(list)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// ContainsCard reports whether target is in cards.
func ContainsCard(cards []Card, target Card) bool {
	return indexOfCard(cards, target) >= 0
}

func indexOfCard(cards []Card, target Card) int {
	for i, c := range cards {
		if c == target {
			return i
		}
	}
	return -1
}

// RemoveCards removes the specified cards from a hand and returns the updated hand.
// The input slice is never modified.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 {
		return cloneCards(hand)
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// HoldsAll reports whether every card in want is present in hand, respecting multiplicity.
func HoldsAll(hand []Card, want []Card) bool {
	counts := make(map[Card]int, len(hand))
	for _, c := range hand {
		counts[c]++
	}
	for _, c := range want {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// cloneCards copies a card slice, keeping nil and empty distinct.
func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
