package domain

import (
	"errors"
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in      string
		want    Card
		wantErr bool
	}{
		{in: "AH", want: Card{Rank: RankAce, Suit: SuitHearts}},
		{in: "td", want: Card{Rank: RankTen, Suit: SuitDiamonds}},
		{in: "10S", want: Card{Rank: RankTen, Suit: SuitSpades}},
		{in: "2C", want: Card{Rank: RankTwo, Suit: SuitClubs}},
		{in: "1C", wantErr: true},
		{in: "AX", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCard(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParseCard(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCardStringParsesBack(t *testing.T) {
	for _, c := range NewDeck() {
		got, err := ParseCard(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseCard(%s) = %+v, %v", c, got, err)
		}
	}
}

func TestSameColor(t *testing.T) {
	pairs := map[Suit]Suit{
		SuitHearts:   SuitDiamonds,
		SuitDiamonds: SuitHearts,
		SuitClubs:    SuitSpades,
		SuitSpades:   SuitClubs,
	}
	for s, want := range pairs {
		if got := s.SameColor(); got != want {
			t.Fatalf("%s.SameColor() = %s, want %s", s, got, want)
		}
		if s.Color() != want.Color() {
			t.Fatalf("%s and %s should share a color", s, want)
		}
	}
}

func TestParseSuit(t *testing.T) {
	if s, err := ParseSuit("Spades"); err != nil || s != SuitSpades {
		t.Fatalf("ParseSuit(Spades) = %s, %v", s, err)
	}
	if _, err := ParseSuit("stars"); !errors.Is(err, ErrInvalidSuit) {
		t.Fatalf("ParseSuit(stars) error = %v, want ErrInvalidSuit", err)
	}
}

func TestPositionRing(t *testing.T) {
	for _, p := range Positions {
		if p.Next().Next().Next().Next() != p {
			t.Fatalf("%s: Next is not cyclic with period 4", p)
		}
		if p.Partner().Partner() != p || p.Partner() == p {
			t.Fatalf("%s: partner %s is not unique", p, p.Partner())
		}
		if p.Team() != p.Partner().Team() {
			t.Fatalf("%s and partner %s are on different teams", p, p.Partner())
		}
		if p.Team() == p.Next().Team() {
			t.Fatalf("%s and %s should be opponents", p, p.Next())
		}
	}
	if North.Team() != TeamNorthSouth || East.Team() != TeamEastWest {
		t.Fatalf("unexpected team mapping")
	}
}
