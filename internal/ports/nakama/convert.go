package nakama

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"pidro/internal/domain"
)

var errBadRequest = errors.New("bad request")

// decodeRequest parses a client JSON payload. An empty payload is an empty object.
func decodeRequest(data []byte) (*structpb.Struct, error) {
	req := &structpb.Struct{}
	if len(data) == 0 {
		return req, nil
	}
	if err := protojson.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return req, nil
}

// toStruct converts any JSON-encodable value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// actionFromRequest builds the domain action for a client op code.
func actionFromRequest(op int64, req *structpb.Struct) (domain.Action, error) {
	fields := req.GetFields()
	switch op {
	case OpBid:
		amount := fields["amount"].GetNumberValue()
		if amount != math.Trunc(amount) {
			return nil, fmt.Errorf("%w: bid amount %v", errBadRequest, amount)
		}
		return domain.PlaceBid{Amount: int(amount)}, nil
	case OpPass:
		return domain.Pass{}, nil
	case OpDeclareTrump:
		suit, err := domain.ParseSuit(fields["suit"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return domain.DeclareTrump{Suit: suit}, nil
	case OpPlayCard:
		card, err := domain.ParseCard(fields["card"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return domain.PlayCard{Card: card}, nil
	case OpSelectHand:
		values := fields["cards"].GetListValue().GetValues()
		cards := make([]domain.Card, 0, len(values))
		for _, v := range values {
			card, err := domain.ParseCard(v.GetStringValue())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errBadRequest, err)
			}
			cards = append(cards, card)
		}
		return domain.SelectHand{Cards: cards}, nil
	}
	return nil, fmt.Errorf("%w: op code %d is not an action", errBadRequest, op)
}

// actionToMap is the wire form of a legal action, mirroring the request fields.
func actionToMap(a domain.Action) map[string]any {
	out := map[string]any{"kind": string(a.Kind())}
	switch a := a.(type) {
	case domain.PlaceBid:
		out["op"] = OpBid
		out["amount"] = a.Amount
	case domain.Pass:
		out["op"] = OpPass
	case domain.DeclareTrump:
		out["op"] = OpDeclareTrump
		out["suit"] = a.Suit.String()
	case domain.PlayCard:
		out["op"] = OpPlayCard
		out["card"] = a.Card.String()
	case domain.SelectHand:
		out["op"] = OpSelectHand
		out["cards"] = cardStrings(a.Cards)
	}
	return out
}

func cardStrings(cards []domain.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
