package domain

import (
	"fmt"
	"strings"
)

// ActionKind names an action a seat can submit.
type ActionKind string

const (
	ActionBid          ActionKind = "bid"
	ActionPass         ActionKind = "pass"
	ActionDeclareTrump ActionKind = "declare_trump"
	ActionPlayCard     ActionKind = "play_card"
	ActionSelectHand   ActionKind = "select_hand"
)

// Action is the closed set of seat inputs.
type Action interface {
	Kind() ActionKind
	isAction()
}

type PlaceBid struct {
	Amount int `json:"amount"`
}

type Pass struct{}

type DeclareTrump struct {
	Suit Suit `json:"suit"`
}

type PlayCard struct {
	Card Card `json:"card"`
}

// SelectHand is the dealer's rob: the cards to keep from hand plus remaining deck.
type SelectHand struct {
	Cards []Card `json:"cards"`
}

func (PlaceBid) Kind() ActionKind     { return ActionBid }
func (Pass) Kind() ActionKind         { return ActionPass }
func (DeclareTrump) Kind() ActionKind { return ActionDeclareTrump }
func (PlayCard) Kind() ActionKind     { return ActionPlayCard }
func (SelectHand) Kind() ActionKind   { return ActionSelectHand }

func (PlaceBid) isAction()     {}
func (Pass) isAction()         {}
func (DeclareTrump) isAction() {}
func (PlayCard) isAction()     {}
func (SelectHand) isAction()   {}

func (a PlaceBid) String() string     { return fmt.Sprintf("bid %d", a.Amount) }
func (Pass) String() string           { return "pass" }
func (a DeclareTrump) String() string { return "declare " + a.Suit.String() }
func (a PlayCard) String() string     { return "play " + a.Card.String() }

func (a SelectHand) String() string {
	parts := make([]string, len(a.Cards))
	for i, c := range a.Cards {
		parts[i] = c.String()
	}
	return "select " + strings.Join(parts, " ")
}
