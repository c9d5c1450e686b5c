package app

import "pidro/internal/domain"

// SeatView is what one seat may see of another.
type SeatView struct {
	Position   domain.Position `json:"position"`
	UserID     string          `json:"user_id"`
	HandCount  int             `json:"hand_count"`
	Hand       []domain.Card   `json:"hand,omitempty"`
	Eliminated bool            `json:"eliminated"`
	Revealed   []domain.Card   `json:"revealed,omitempty"`
	Killed     []domain.Card   `json:"killed,omitempty"`
	TricksWon  int             `json:"tricks_won"`
}

// View is the state snapshot sent to a seat. Only the viewer's own hand is included,
// and the dealer's rob pool while the viewer is robbing.
type View struct {
	TableID      string            `json:"table_id"`
	Phase        domain.Phase      `json:"phase"`
	HandNumber   int               `json:"hand_number"`
	Dealer       domain.Position   `json:"dealer"`
	Turn         domain.Position   `json:"turn"`
	Viewer       domain.Position   `json:"viewer"`
	Trump        domain.Suit       `json:"trump"`
	Bids         []domain.Bid      `json:"bids"`
	HighestBid   *domain.Bid       `json:"highest_bid,omitempty"`
	BiddingTeam  domain.Team       `json:"bidding_team"`
	Seats        [4]SeatView       `json:"seats"`
	DeckCount    int               `json:"deck_count"`
	DiscardCount int               `json:"discard_count"`
	RobPool      []domain.Card     `json:"rob_pool,omitempty"`
	CurrentTrick *domain.Trick     `json:"current_trick,omitempty"`
	LastTrick    *domain.Trick     `json:"last_trick,omitempty"`
	TrickNumber  int               `json:"trick_number"`
	HandPoints   [2]int            `json:"hand_points"`
	Scores       [2]int            `json:"scores"`
	Winner       domain.Team       `json:"winner"`
}

// NewView projects the table state for viewer. Pass domain.NoPosition for spectators.
func NewView(t *Table, viewer domain.Position) View {
	s := &t.State
	v := View{
		TableID:      t.ID.String(),
		Phase:        s.Phase,
		HandNumber:   s.HandNumber,
		Dealer:       s.Dealer,
		Turn:         s.Turn,
		Viewer:       viewer,
		Trump:        s.Trump,
		Bids:         s.Bids,
		HighestBid:   s.HighestBid,
		BiddingTeam:  s.BiddingTeam,
		DeckCount:    len(s.Deck),
		DiscardCount: len(s.Discard),
		CurrentTrick: s.CurrentTrick,
		TrickNumber:  s.TrickNumber,
		HandPoints:   s.HandPoints,
		Scores:       s.Scores,
		Winner:       s.Winner,
	}
	if n := len(s.Tricks); n > 0 {
		v.LastTrick = &s.Tricks[n-1]
	}
	for _, pos := range domain.Positions {
		p := s.Players[pos]
		sv := SeatView{
			Position:   pos,
			UserID:     t.Seats[pos],
			HandCount:  len(p.Hand),
			Eliminated: p.Eliminated,
			Revealed:   p.Revealed,
			Killed:     s.Killed[pos],
			TricksWon:  p.TricksWon,
		}
		if pos == viewer {
			sv.Hand = p.Hand
		}
		v.Seats[pos] = sv
	}
	if viewer.Valid() && domain.RobPending(s) && viewer == s.Dealer {
		v.RobPool = domain.RobPool(s)
	}
	return v
}
