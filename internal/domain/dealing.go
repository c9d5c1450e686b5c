package domain

import "fmt"

// CutForDeal runs the opening cut over a shuffled deck: each seat clockwise from north
// turns the next card, highest rank deals, and tied seats cut again with the following
// cards. The deck itself is not consumed.
func CutForDeal(shuffled []Card) DealerSelected {
	contenders := Positions[:]
	var cuts []Play
	next := 0
	for len(contenders) > 1 && next+len(contenders) <= len(shuffled) {
		best := -1
		var top []Position
		for _, pos := range contenders {
			c := shuffled[next]
			next++
			cuts = append(cuts, Play{Position: pos, Card: c})
			switch {
			case c.Rank > best:
				best = c.Rank
				top = []Position{pos}
			case c.Rank == best:
				top = append(top, pos)
			}
		}
		contenders = top
	}
	return DealerSelected{Dealer: contenders[0], Cuts: cuts}
}

// DealHands deals a shuffled deck in batches clockwise from the dealer's left until
// every seat holds the initial hand size.
func DealHands(s *GameState, shuffled []Card) (CardsDealt, error) {
	if !s.Dealer.Valid() {
		return CardsDealt{}, fmt.Errorf("%w: no dealer", ErrInvalidEvent)
	}
	size := s.Config.InitialHandSize
	if size*4 > len(shuffled) {
		return CardsDealt{}, fmt.Errorf("%w: deck of %d cannot deal %d hands of %d", ErrInvalidEvent, len(shuffled), 4, size)
	}
	var ev CardsDealt
	deck := shuffled
	for dealt := 0; dealt < size; dealt += DealBatchSize {
		n := min(DealBatchSize, size-dealt)
		pos := s.Dealer.Next()
		for i := 0; i < 4; i++ {
			var batch []Card
			batch, deck = DrawCards(deck, n)
			ev.Hands[pos] = append(ev.Hands[pos], batch...)
			pos = pos.Next()
		}
	}
	ev.Deck = deck
	return ev, nil
}
