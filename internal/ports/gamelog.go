package ports

import "context"

// GameRecord is the persisted snapshot of one finished game. Cards are
// stored in their encoded text form.
type GameRecord struct {
	PlayerIDs      []string          `json:"player_ids"`
	NumPlayers     int               `json:"num_players"`
	TakerID        string            `json:"taker_id"`
	CalledPlayerID *string           `json:"called_player_id"` // 5-player variant, nil until implemented
	Contract       string            `json:"contract"`
	Oudlers        int               `json:"oudlers"`
	PointsNeeded   int               `json:"points_needed"`
	PointsAchieved float64           `json:"points_achieved"`
	Success        bool              `json:"success"`
	Dog            []string          `json:"dog"`
	Tricks         [][]string        `json:"tricks"`
	Bids           map[string]string `json:"bids"`
	Scores         map[string]int    `json:"scores"`
}

// GameLogSink persists finished game records. Implementations are an
// optional telemetry target: callers log and swallow sink failures, game
// flow never depends on them.
type GameLogSink interface {
	WriteGameRecord(ctx context.Context, record GameRecord) error
}
