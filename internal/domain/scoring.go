package domain

import "fmt"

// ScoreHand applies the contract check to the points earned this hand. A bidding team
// short of its bid is set: it scores minus the bid while the opponents keep their points.
func ScoreHand(s *GameState) (HandScored, error) {
	if s.HighestBid == nil || !s.BiddingTeam.Valid() {
		return HandScored{}, fmt.Errorf("%w: no contract to score", ErrInvalidEvent)
	}
	bidTeam := s.BiddingTeam
	ev := HandScored{
		Hand:    s.HandNumber,
		Earned:  s.HandPoints,
		Awarded: s.HandPoints,
		Made:    s.HandPoints[bidTeam] >= s.HighestBid.Amount,
	}
	if !ev.Made {
		ev.Awarded[bidTeam] = -s.HighestBid.Amount
	}
	for i := range ev.Scores {
		ev.Scores[i] = s.Scores[i] + ev.Awarded[i]
	}
	return ev, nil
}

// DecideWinner returns the team that has won at the given scores, or NoTeam.
// When both teams reach the threshold on the same hand the bidding team wins.
func DecideWinner(scores [2]int, threshold int, bidding Team) Team {
	ns := scores[TeamNorthSouth] >= threshold
	ew := scores[TeamEastWest] >= threshold
	switch {
	case ns && ew:
		if bidding.Valid() {
			return bidding
		}
		if scores[TeamEastWest] > scores[TeamNorthSouth] {
			return TeamEastWest
		}
		return TeamNorthSouth
	case ns:
		return TeamNorthSouth
	case ew:
		return TeamEastWest
	}
	return NoTeam
}
