package domain

import "testing"

func TestTrumpDuality(t *testing.T) {
	for _, trump := range Suits {
		t.Run(trump.String(), func(t *testing.T) {
			count, points := 0, 0
			for _, c := range NewDeck() {
				if IsTrump(c, trump) {
					count++
					points += PointValue(c, trump)
				} else if PointValue(c, trump) != 0 {
					t.Fatalf("non-trump %s has point value", c)
				}
			}
			if count != 14 {
				t.Fatalf("trump count = %d, want 14", count)
			}
			if points != 14 {
				t.Fatalf("trump points = %d, want 14", points)
			}
			if got := TotalPoints(TrumpCards(trump), trump); got != 14 {
				t.Fatalf("TotalPoints(TrumpCards) = %d, want 14", got)
			}
		})
	}
}

func TestWrongFiveIsTrump(t *testing.T) {
	tests := []struct {
		card  string
		trump Suit
		want  bool
	}{
		{card: "5D", trump: SuitHearts, want: true},
		{card: "5H", trump: SuitDiamonds, want: true},
		{card: "5S", trump: SuitClubs, want: true},
		{card: "5C", trump: SuitSpades, want: true},
		{card: "5S", trump: SuitHearts, want: false},
		{card: "4D", trump: SuitHearts, want: false},
		{card: "AH", trump: SuitNone, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.card+"/"+tt.trump.String(), func(t *testing.T) {
			c := MustParseCards(tt.card)[0]
			if got := IsTrump(c, tt.trump); got != tt.want {
				t.Fatalf("IsTrump(%s, %s) = %v, want %v", c, tt.trump, got, tt.want)
			}
		})
	}
}

func TestTrumpRankingOrder(t *testing.T) {
	for _, trump := range Suits {
		order := TrumpCards(trump)
		if len(order) != 14 {
			t.Fatalf("%s: %d trump cards", trump, len(order))
		}
		for i := 1; i < len(order); i++ {
			if TrumpStrength(order[i-1], trump) <= TrumpStrength(order[i], trump) {
				t.Fatalf("%s: %s does not outrank %s", trump, order[i-1], order[i])
			}
		}
		if order[0] != (Card{Rank: RankAce, Suit: trump}) {
			t.Fatalf("%s: strongest trump is %s", trump, order[0])
		}
		if order[13] != (Card{Rank: RankTwo, Suit: trump}) {
			t.Fatalf("%s: weakest trump is %s", trump, order[13])
		}
		right := Card{Rank: RankFive, Suit: trump}
		wrong := Card{Rank: RankFive, Suit: trump.SameColor()}
		if TrumpStrength(right, trump) <= TrumpStrength(wrong, trump) {
			t.Fatalf("%s: right five does not beat wrong five", trump)
		}
		six := Card{Rank: RankSix, Suit: trump}
		four := Card{Rank: RankFour, Suit: trump}
		if !(TrumpStrength(six, trump) > TrumpStrength(right, trump) && TrumpStrength(wrong, trump) > TrumpStrength(four, trump)) {
			t.Fatalf("%s: fives are not ranked between six and four", trump)
		}
	}
}

func TestPointValue(t *testing.T) {
	tests := []struct {
		card string
		want int
	}{
		{card: "AH", want: 1},
		{card: "KH", want: 0},
		{card: "QH", want: 0},
		{card: "JH", want: 1},
		{card: "TH", want: 1},
		{card: "9H", want: 0},
		{card: "5H", want: 5},
		{card: "5D", want: 5},
		{card: "2H", want: 1},
		{card: "AD", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			if got := PointValue(MustParseCards(tt.card)[0], SuitHearts); got != tt.want {
				t.Fatalf("PointValue(%s) = %d, want %d", tt.card, got, tt.want)
			}
		})
	}
}

func TestSortByTrumpStrength(t *testing.T) {
	cards := MustParseCards("2H 5D KD 5H AH 9C")
	SortByTrumpStrength(cards, SuitHearts)
	want := MustParseCards("AH 5H 5D 2H KD 9C")
	for i := range want {
		if cards[i] != want[i] {
			t.Fatalf("SortByTrumpStrength() = %v, want %v", cards, want)
		}
	}
}
