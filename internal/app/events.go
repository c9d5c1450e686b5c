package app

import "pidro/internal/domain"

// EventKind identifies outbound notifications for host dispatch.
type EventKind string

const (
	EventTableCreated   EventKind = "table_created"
	EventHandDealt      EventKind = "hand_dealt"
	EventCardsReceived  EventKind = "cards_received"
	EventCardsShed      EventKind = "cards_shed"
	EventPackRobbed     EventKind = "pack_robbed"
	EventStateRewound   EventKind = "state_rewound"
	EventActionRejected EventKind = "action_rejected"
)

// Event is an outbound notification with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type TableCreatedPayload struct {
	TableID string
	Seats   [4]string
	Config  domain.Config
}

type HandDealtPayload struct {
	Position domain.Position
	Hand     []domain.Card
}

type CardsReceivedPayload struct {
	Position domain.Position
	Cards    []domain.Card
}

// CardsShedPayload is one seat's own automatic discard.
type CardsShedPayload struct {
	Position domain.Position
	Cards    []domain.Card
}

// PackRobbedPayload is the public view of a rob: which seat robbed and how many cards moved.
type PackRobbedPayload struct {
	Dealer    domain.Position
	Taken     int
	Discarded int
}

type StateRewoundPayload struct {
	Events int
}

// project turns one domain event into outbound notifications. Hidden card information
// goes only to the seat that holds it.
func project(seats [4]string, ev domain.Event) []Event {
	switch ev := ev.(type) {
	case domain.CardsDealt:
		out := make([]Event, 0, 4)
		for _, pos := range domain.Positions {
			if seats[pos] == "" {
				continue
			}
			out = append(out, Event{
				Kind:       EventHandDealt,
				Payload:    HandDealtPayload{Position: pos, Hand: ev.Hands[pos]},
				Recipients: recipient(seats, pos),
			})
		}
		return out
	case domain.CardsDiscarded:
		var out []Event
		counts := [4]int{}
		for _, pos := range domain.Positions {
			counts[pos] = len(ev.Discards[pos])
			if len(ev.Discards[pos]) == 0 || seats[pos] == "" {
				continue
			}
			out = append(out, Event{
				Kind:       EventCardsShed,
				Payload:    CardsShedPayload{Position: pos, Cards: ev.Discards[pos]},
				Recipients: recipient(seats, pos),
			})
		}
		return append(out, Event{Kind: EventKind(ev.Kind()), Payload: counts})
	case domain.SecondDealComplete:
		var out []Event
		counts := [4]int{}
		for _, pos := range domain.Positions {
			counts[pos] = len(ev.Dealt[pos])
			if len(ev.Dealt[pos]) == 0 || seats[pos] == "" {
				continue
			}
			out = append(out, Event{
				Kind:       EventCardsReceived,
				Payload:    CardsReceivedPayload{Position: pos, Cards: ev.Dealt[pos]},
				Recipients: recipient(seats, pos),
			})
		}
		return append(out, Event{Kind: EventKind(ev.Kind()), Payload: counts})
	case domain.DealerRobbedPack:
		out := []Event{{Kind: EventPackRobbed, Payload: PackRobbedPayload{Dealer: ev.Dealer, Taken: len(ev.Taken), Discarded: len(ev.Discarded)}}}
		if seats[ev.Dealer] != "" {
			out = append(out, Event{Kind: EventKind(ev.Kind()), Payload: ev, Recipients: recipient(seats, ev.Dealer)})
		}
		return out
	}
	return []Event{{Kind: EventKind(ev.Kind()), Payload: ev}}
}

func recipient(seats [4]string, pos domain.Position) []string {
	return []string{seats[pos]}
}
