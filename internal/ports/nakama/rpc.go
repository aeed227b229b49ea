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

// rpcQuickMatch searches for a tarot lobby with open seats and returns its
// match ID, creating a fresh match when none is listed.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	// Filter on the JSON label: at least one open seat, our game, still in lobby.
	query := fmt.Sprintf("+label.%s:>=1 +label.game:tarot +label.phase:lobby", MatchLabelKey_OpenSeats)

	limit := 10
	authoritative := true
	minSize := 0
	maxSize := 5

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: Failed to list matches: %v", userId, err)
		return "", err
	}

	if len(matches) > 0 {
		logger.Info("rpcQuickMatch [User:%s]: Found existing match %s", userId, matches[0].MatchId)
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create new match; seat/owner assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameTarot, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: Failed to create match: %v", userId, err)
		return "", err
	}

	logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userId, matchID)
	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
