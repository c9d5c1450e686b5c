package domain

import "fmt"

// Config is the rule configuration a game is played under.
type Config struct {
	WinningScore    int  `json:"winning_score"`
	InitialHandSize int  `json:"initial_hand_size"`
	FinalHandSize   int  `json:"final_hand_size"`
	MinBid          int  `json:"min_bid"`
	MaxBid          int  `json:"max_bid"`
	AutoRob         bool `json:"auto_rob"`
}

// Default rule values for Finnish Pidro.
const (
	DefaultWinningScore    = 62
	DefaultInitialHandSize = 9
	DefaultFinalHandSize   = 6
	DefaultMinBid          = 6
	DefaultMaxBid          = 14
	DealBatchSize          = 3
)

// DefaultConfig returns the standard rules with manual robbing.
func DefaultConfig() Config {
	return Config{
		WinningScore:    DefaultWinningScore,
		InitialHandSize: DefaultInitialHandSize,
		FinalHandSize:   DefaultFinalHandSize,
		MinBid:          DefaultMinBid,
		MaxBid:          DefaultMaxBid,
	}
}

// WithDefaults fills zero fields with the standard values.
func (c Config) WithDefaults() Config {
	if c.WinningScore <= 0 {
		c.WinningScore = DefaultWinningScore
	}
	if c.InitialHandSize <= 0 {
		c.InitialHandSize = DefaultInitialHandSize
	}
	if c.FinalHandSize <= 0 {
		c.FinalHandSize = DefaultFinalHandSize
	}
	if c.MinBid <= 0 {
		c.MinBid = DefaultMinBid
	}
	if c.MaxBid <= 0 {
		c.MaxBid = DefaultMaxBid
	}
	return c
}

// Validate rejects configurations the deck cannot support.
func (c Config) Validate() error {
	switch {
	case c.WinningScore <= 0:
		return fmt.Errorf("winning score must be positive, got %d", c.WinningScore)
	case c.InitialHandSize <= 0 || c.InitialHandSize*4 > DeckSize:
		return fmt.Errorf("initial hand size %d does not fit the deck", c.InitialHandSize)
	case c.FinalHandSize <= 0 || c.FinalHandSize > c.InitialHandSize:
		return fmt.Errorf("final hand size %d must be within 1..%d", c.FinalHandSize, c.InitialHandSize)
	case c.MinBid < 1 || c.MaxBid > 14 || c.MinBid > c.MaxBid:
		return fmt.Errorf("bid range %d..%d must lie within 1..14", c.MinBid, c.MaxBid)
	}
	return nil
}

// Player is the per-seat hand state.
type Player struct {
	Position   Position `json:"position"`
	Hand       []Card   `json:"hand"`
	Eliminated bool     `json:"eliminated"`
	Revealed   []Card   `json:"revealed,omitempty"`
	TricksWon  int      `json:"tricks_won"`
}

// Bid is one entry of the bidding round. Seq is the index of the event that recorded it,
// so list order, not time, decides ordering.
type Bid struct {
	Position Position `json:"position"`
	Amount   int      `json:"amount,omitempty"`
	Pass     bool     `json:"pass,omitempty"`
	Seq      int      `json:"seq"`
}

// Play is one card put into a trick.
type Play struct {
	Position Position `json:"position"`
	Card     Card     `json:"card"`
}

// Trick is a sequence of plays. Winner and Points are set once it resolves.
type Trick struct {
	Number int      `json:"number"`
	Leader Position `json:"leader"`
	Plays  []Play   `json:"plays"`
	Winner Position `json:"winner"`
	Points int      `json:"points"`
}

// Cards returns the cards played into the trick.
func (t Trick) Cards() []Card {
	cards := make([]Card, 0, len(t.Plays))
	for _, p := range t.Plays {
		cards = append(cards, p.Card)
	}
	return cards
}

// HasPlayed reports whether pos already put a card into the trick.
func (t Trick) HasPlayed(pos Position) bool {
	for _, p := range t.Plays {
		if p.Position == pos {
			return true
		}
	}
	return false
}

// GameState is the aggregate root of a Pidro game. Values are replaced, never
// shared: every mutation happens on a Clone.
type GameState struct {
	Config Config `json:"config"`
	Phase  Phase  `json:"phase"`

	HandNumber int      `json:"hand_number"`
	Dealer     Position `json:"dealer"`
	Turn       Position `json:"turn"`

	Deck    []Card    `json:"deck"`
	Discard []Card    `json:"discard"`
	Killed  [4][]Card `json:"killed"`
	Players [4]Player `json:"players"`

	Bids        []Bid `json:"bids"`
	HighestBid  *Bid  `json:"highest_bid,omitempty"`
	BiddingTeam Team  `json:"bidding_team"`
	Trump       Suit  `json:"trump"`
	SecondDealt bool  `json:"second_dealt"`

	CurrentTrick *Trick  `json:"current_trick,omitempty"`
	Tricks       []Trick `json:"tricks"`
	TrickNumber  int     `json:"trick_number"`

	HandPoints [2]int `json:"hand_points"`
	Scores     [2]int `json:"scores"`
	Winner     Team   `json:"winner"`

	Events []Event `json:"-"`
}

// NewGameState returns the fresh state every game and every replay starts from.
func NewGameState(cfg Config) GameState {
	s := GameState{
		Config:      cfg.WithDefaults(),
		Phase:       PhaseDealerSelection,
		HandNumber:  1,
		Dealer:      NoPosition,
		Turn:        NoPosition,
		Deck:        NewDeck(),
		BiddingTeam: NoTeam,
		Trump:       SuitNone,
		Winner:      NoTeam,
	}
	for _, pos := range Positions {
		s.Players[pos] = Player{Position: pos}
	}
	return s
}

// Clone deep-copies the state. Nil and empty slices stay distinct so a clone is
// indistinguishable from its source.
func (s GameState) Clone() GameState {
	out := s
	out.Deck = cloneCards(s.Deck)
	out.Discard = cloneCards(s.Discard)
	for i := range s.Killed {
		out.Killed[i] = cloneCards(s.Killed[i])
	}
	for i, p := range s.Players {
		p.Hand = cloneCards(p.Hand)
		p.Revealed = cloneCards(p.Revealed)
		out.Players[i] = p
	}
	if s.Bids != nil {
		out.Bids = append(make([]Bid, 0, len(s.Bids)), s.Bids...)
	}
	if s.HighestBid != nil {
		hb := *s.HighestBid
		out.HighestBid = &hb
	}
	if s.CurrentTrick != nil {
		t := cloneTrick(*s.CurrentTrick)
		out.CurrentTrick = &t
	}
	if s.Tricks != nil {
		out.Tricks = make([]Trick, len(s.Tricks))
		for i, t := range s.Tricks {
			out.Tricks[i] = cloneTrick(t)
		}
	}
	if s.Events != nil {
		// Events are never mutated after creation, so sharing them is safe.
		out.Events = append(make([]Event, 0, len(s.Events)), s.Events...)
	}
	return out
}

func cloneTrick(t Trick) Trick {
	if t.Plays != nil {
		t.Plays = append(make([]Play, 0, len(t.Plays)), t.Plays...)
	}
	return t
}

// Player returns the seat's state. pos must be valid.
func (s *GameState) Player(pos Position) *Player {
	return &s.Players[pos]
}

// Active reports whether pos is still taking part in tricks.
func (s *GameState) Active(pos Position) bool {
	return pos.Valid() && !s.Players[pos].Eliminated
}

// ActiveCount returns the number of seats that have not gone cold.
func (s *GameState) ActiveCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// NextActive returns the first non-eliminated seat clockwise from from, including from
// itself. It returns NoPosition if every seat has gone cold.
func (s *GameState) NextActive(from Position) Position {
	if !from.Valid() {
		return NoPosition
	}
	pos := from
	for i := 0; i < 4; i++ {
		if s.Active(pos) {
			return pos
		}
		pos = pos.Next()
	}
	return NoPosition
}

// CardCount totals every card visible to the state: deck, hands, piles and trick plays.
// Within a hand it is always DeckSize.
func (s *GameState) CardCount() int {
	n := len(s.Deck) + len(s.Discard)
	for i := range s.Players {
		n += len(s.Players[i].Hand) + len(s.Players[i].Revealed) + len(s.Killed[i])
	}
	if s.CurrentTrick != nil {
		n += len(s.CurrentTrick.Plays)
	}
	for _, t := range s.Tricks {
		n += len(t.Plays)
	}
	return n
}

// resetHand clears hand-scoped state and puts a full deck back on the table.
func (s *GameState) resetHand() {
	s.Deck = NewDeck()
	s.Discard = nil
	s.Killed = [4][]Card{}
	for _, pos := range Positions {
		s.Players[pos] = Player{Position: pos}
	}
	s.Bids = nil
	s.HighestBid = nil
	s.BiddingTeam = NoTeam
	s.Trump = SuitNone
	s.SecondDealt = false
	s.CurrentTrick = nil
	s.Tricks = nil
	s.TrickNumber = 0
	s.HandPoints = [2]int{}
	s.Turn = NoPosition
}

// BeginNextHand resets hand-scoped state, rotates the dealer clockwise and returns to
// dealer selection. It only applies to a state in hand_complete.
func (s *GameState) BeginNextHand() error {
	if s.Phase != PhaseHandComplete {
		return fmt.Errorf("%w: next hand from %s", ErrInvalidPhase, s.Phase)
	}
	s.resetHand()
	s.HandNumber++
	if s.Dealer.Valid() {
		s.Dealer = s.Dealer.Next()
	}
	return s.setPhase(PhaseDealerSelection)
}
