package app

import "pidro/internal/domain"

// LegalActions lists every action pos may take right now. Each listed action is
// accepted by Engine.ApplyAction on the same state; the list is empty when the seat
// cannot act.
func LegalActions(s domain.GameState, pos domain.Position) []domain.Action {
	if err := domain.Authorize(&s, pos); err != nil {
		return nil
	}
	switch s.Phase {
	case domain.PhaseBidding:
		return biddingActions(&s, pos)
	case domain.PhaseDeclaring:
		if s.HighestBid == nil || s.HighestBid.Position != pos || s.Trump != domain.SuitNone {
			return nil
		}
		actions := make([]domain.Action, 0, len(domain.Suits))
		for _, suit := range domain.Suits {
			actions = append(actions, domain.DeclareTrump{Suit: suit})
		}
		return actions
	case domain.PhaseSecondDeal:
		if !domain.RobPending(&s) {
			return nil
		}
		pool := domain.RobPool(&s)
		return selectionActions(pool, domain.RobSize(&s, pool))
	case domain.PhasePlaying:
		cards := domain.PlayableCards(&s, pos)
		actions := make([]domain.Action, 0, len(cards))
		for _, c := range cards {
			actions = append(actions, domain.PlayCard{Card: c})
		}
		return actions
	}
	return nil
}

func biddingActions(s *domain.GameState, pos domain.Position) []domain.Action {
	if domain.HasBid(s, pos) {
		return nil
	}
	var actions []domain.Action
	if domain.ValidatePass(s, pos) == nil {
		actions = append(actions, domain.Pass{})
	}
	for amount := domain.MinimumBid(s); amount <= s.Config.MaxBid; amount++ {
		actions = append(actions, domain.PlaceBid{Amount: amount})
	}
	return actions
}

// selectionActions enumerates every n-card subset of pool, in pool order.
func selectionActions(pool []domain.Card, n int) []domain.Action {
	var actions []domain.Action
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for {
		cards := make([]domain.Card, n)
		for i, j := range idx {
			cards[i] = pool[j]
		}
		actions = append(actions, domain.SelectHand{Cards: cards})

		// advance to the next combination in lexicographic order
		i := n - 1
		for i >= 0 && idx[i] == len(pool)-n+i {
			i--
		}
		if i < 0 {
			return actions
		}
		idx[i]++
		for j := i + 1; j < n; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
