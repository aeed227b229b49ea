package app

import (
	"context"
	"io"
	"log/slog"

	"tarot/internal/domain"
	"tarot/internal/ports"
)

// Recorder persists finished games to a GameLogSink. Sink failures are
// logged and swallowed: the game never aborts because telemetry is down.
type Recorder struct {
	sink   ports.GameLogSink
	logger *slog.Logger
}

// NewRecorder builds a recorder. logger may be nil for a silent one.
func NewRecorder(sink ports.GameLogSink, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Recorder{sink: sink, logger: logger}
}

// RecordGame writes the finished game to the sink.
func (r *Recorder) RecordGame(game *domain.GameState, scores map[string]int) {
	if r == nil || r.sink == nil {
		return
	}

	record := BuildGameRecord(game, scores)
	if err := r.sink.WriteGameRecord(context.Background(), record); err != nil {
		r.logger.Warn("failed to persist game record", "err", err)
	}
}

// BuildGameRecord flattens a finished game into its persisted form.
func BuildGameRecord(game *domain.GameState, scores map[string]int) ports.GameRecord {
	record := ports.GameRecord{
		PlayerIDs:  game.PlayerIDs(),
		NumPlayers: len(game.Players),
		Dog:        domain.EncodeCards(game.Dog),
		Scores:     scores,
		Bids:       make(map[string]string),
	}

	for _, p := range game.Players {
		for _, trick := range p.TricksWon {
			record.Tricks = append(record.Tricks, domain.EncodeCards(trick))
		}
	}

	if game.BiddingRound != nil {
		for _, b := range game.BiddingRound.Bids {
			record.Bids[b.PlayerID] = b.Type.String()
		}
	}

	if c := game.Contract; c != nil {
		record.TakerID = c.TakerID
		record.Contract = c.Type.String()
		record.Oudlers = c.Oudlers
		record.PointsNeeded = c.PointsNeeded
		record.PointsAchieved = c.Achieved
		record.Success = c.Success
	}
	return record
}
