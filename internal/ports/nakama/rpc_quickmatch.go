package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// quickMatchQuery finds Pidro lobbies with at least one open seat.
var quickMatchQuery = fmt.Sprintf("+label.%s:>=1 +label.%s:%s +label.%s:%s",
	MatchLabelKey_OpenSeats, MatchLabelKey_Game, GameName, MatchLabelKey_Phase, labelPhaseLobby)

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := 3 // at least one seat left

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("quick_match [User:%s]: MatchList error: %v", userID, err)
		return "", err
	}

	resp := QuickMatchResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].MatchId
	} else {
		// Seat and owner assignment happens in MatchJoin.
		matchID, err := nk.MatchCreate(ctx, MatchNamePidro, map[string]interface{}{})
		if err != nil {
			logger.Error("quick_match [User:%s]: MatchCreate error: %v", userID, err)
			return "", err
		}
		resp = QuickMatchResponse{MatchID: matchID, IsNew: true}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	logger.Info("quick_match [User:%s]: match %s (new=%t)", userID, resp.MatchID, resp.IsNew)
	return string(b), nil
}
