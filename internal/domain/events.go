package domain

import (
	"encoding/json"
	"fmt"
)

// EventKind names an event in the log.
type EventKind string

const (
	EventDealerSelected     EventKind = "dealer_selected"
	EventCardsDealt         EventKind = "cards_dealt"
	EventBidMade            EventKind = "bid_made"
	EventPlayerPassed       EventKind = "player_passed"
	EventBiddingComplete    EventKind = "bidding_complete"
	EventTrumpDeclared      EventKind = "trump_declared"
	EventCardsDiscarded     EventKind = "cards_discarded"
	EventSecondDealComplete EventKind = "second_deal_complete"
	EventDealerRobbedPack   EventKind = "dealer_robbed_pack"
	EventCardsKilled        EventKind = "cards_killed"
	EventCardPlayed         EventKind = "card_played"
	EventTrickWon           EventKind = "trick_won"
	EventPlayerWentCold     EventKind = "player_went_cold"
	EventHandScored         EventKind = "hand_scored"
	EventGameWon            EventKind = "game_won"
)

// Event is a record in the append-only log. The set of implementations is closed.
type Event interface {
	Kind() EventKind
	isEvent()
}

// DealerSelected names the dealer of a hand. Cuts is set only for the opening cut.
type DealerSelected struct {
	Dealer Position `json:"dealer"`
	Cuts   []Play   `json:"cuts,omitempty"`
}

// CardsDealt carries the nine-card hands and the undealt remainder of the shuffled deck.
type CardsDealt struct {
	Hands [4][]Card `json:"hands"`
	Deck  []Card    `json:"deck"`
}

type BidMade struct {
	Position Position `json:"position"`
	Amount   int      `json:"amount"`
}

type PlayerPassed struct {
	Position Position `json:"position"`
}

type BiddingComplete struct {
	Winner Position `json:"winner"`
	Amount int      `json:"amount"`
}

type TrumpDeclared struct {
	Position Position `json:"position"`
	Suit     Suit     `json:"suit"`
}

// CardsDiscarded records every seat's automatic non-trump discard.
type CardsDiscarded struct {
	Discards [4][]Card `json:"discards"`
}

// SecondDealComplete records the cards dealt from the top of the deck to each non-dealer.
type SecondDealComplete struct {
	Dealt [4][]Card `json:"dealt"`
}

// DealerRobbedPack records the dealer's pick from their hand plus the remaining deck.
type DealerRobbedPack struct {
	Dealer    Position `json:"dealer"`
	Taken     []Card   `json:"taken"`
	Kept      []Card   `json:"kept"`
	Discarded []Card   `json:"discarded"`
}

type CardsKilled struct {
	Position Position `json:"position"`
	Cards    []Card   `json:"cards"`
}

type CardPlayed struct {
	Position Position `json:"position"`
	Card     Card     `json:"card"`
}

type TrickWon struct {
	Number int      `json:"number"`
	Winner Position `json:"winner"`
	Points int      `json:"points"`
}

type PlayerWentCold struct {
	Position Position `json:"position"`
	Revealed []Card   `json:"revealed"`
}

// HandScored reports the points earned in tricks, the points awarded after the
// contract check, and the cumulative scores.
type HandScored struct {
	Hand    int    `json:"hand"`
	Earned  [2]int `json:"earned"`
	Awarded [2]int `json:"awarded"`
	Made    bool   `json:"made"`
	Scores  [2]int `json:"scores"`
}

type GameWon struct {
	Team   Team   `json:"team"`
	Scores [2]int `json:"scores"`
}

func (DealerSelected) Kind() EventKind     { return EventDealerSelected }
func (CardsDealt) Kind() EventKind         { return EventCardsDealt }
func (BidMade) Kind() EventKind            { return EventBidMade }
func (PlayerPassed) Kind() EventKind       { return EventPlayerPassed }
func (BiddingComplete) Kind() EventKind    { return EventBiddingComplete }
func (TrumpDeclared) Kind() EventKind      { return EventTrumpDeclared }
func (CardsDiscarded) Kind() EventKind     { return EventCardsDiscarded }
func (SecondDealComplete) Kind() EventKind { return EventSecondDealComplete }
func (DealerRobbedPack) Kind() EventKind   { return EventDealerRobbedPack }
func (CardsKilled) Kind() EventKind        { return EventCardsKilled }
func (CardPlayed) Kind() EventKind         { return EventCardPlayed }
func (TrickWon) Kind() EventKind           { return EventTrickWon }
func (PlayerWentCold) Kind() EventKind     { return EventPlayerWentCold }
func (HandScored) Kind() EventKind         { return EventHandScored }
func (GameWon) Kind() EventKind            { return EventGameWon }

func (DealerSelected) isEvent()     {}
func (CardsDealt) isEvent()         {}
func (BidMade) isEvent()            {}
func (PlayerPassed) isEvent()       {}
func (BiddingComplete) isEvent()    {}
func (TrumpDeclared) isEvent()      {}
func (CardsDiscarded) isEvent()     {}
func (SecondDealComplete) isEvent() {}
func (DealerRobbedPack) isEvent()   {}
func (CardsKilled) isEvent()        {}
func (CardPlayed) isEvent()         {}
func (TrickWon) isEvent()           {}
func (PlayerWentCold) isEvent()     {}
func (HandScored) isEvent()         {}
func (GameWon) isEvent()            {}

// eventEnvelope is the tagged JSON form of an event.
type eventEnvelope struct {
	Kind EventKind       `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalEvents encodes a log as a JSON array of {kind, data} records.
func MarshalEvents(events []Event) ([]byte, error) {
	out := make([]eventEnvelope, 0, len(events))
	for i, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("marshal event %d: %w", i, err)
		}
		out = append(out, eventEnvelope{Kind: ev.Kind(), Data: data})
	}
	return json.Marshal(out)
}

// UnmarshalEvents decodes a log written by MarshalEvents.
func UnmarshalEvents(data []byte) ([]Event, error) {
	var envs []eventEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(envs))
	for i, env := range envs {
		ev, err := decodeEvent(env)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeEvent(env eventEnvelope) (Event, error) {
	switch env.Kind {
	case EventDealerSelected:
		return decodeAs[DealerSelected](env.Data)
	case EventCardsDealt:
		return decodeAs[CardsDealt](env.Data)
	case EventBidMade:
		return decodeAs[BidMade](env.Data)
	case EventPlayerPassed:
		return decodeAs[PlayerPassed](env.Data)
	case EventBiddingComplete:
		return decodeAs[BiddingComplete](env.Data)
	case EventTrumpDeclared:
		return decodeAs[TrumpDeclared](env.Data)
	case EventCardsDiscarded:
		return decodeAs[CardsDiscarded](env.Data)
	case EventSecondDealComplete:
		return decodeAs[SecondDealComplete](env.Data)
	case EventDealerRobbedPack:
		return decodeAs[DealerRobbedPack](env.Data)
	case EventCardsKilled:
		return decodeAs[CardsKilled](env.Data)
	case EventCardPlayed:
		return decodeAs[CardPlayed](env.Data)
	case EventTrickWon:
		return decodeAs[TrickWon](env.Data)
	case EventPlayerWentCold:
		return decodeAs[PlayerWentCold](env.Data)
	case EventHandScored:
		return decodeAs[HandScored](env.Data)
	case EventGameWon:
		return decodeAs[GameWon](env.Data)
	}
	return nil, fmt.Errorf("unknown event kind %q", env.Kind)
}

func decodeAs[T Event](data json.RawMessage) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}
