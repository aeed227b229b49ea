package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tarot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const gameLogCollection = "game_logs"

// NakamaStorageSink implements ports.GameLogSink on Nakama's storage
// engine. Records land in the game_logs collection as system-owned
// objects, readable but never writable by clients.
type NakamaStorageSink struct {
	nk runtime.NakamaModule
}

// NewNakamaStorageSink creates a new game log sink.
func NewNakamaStorageSink(nk runtime.NakamaModule) *NakamaStorageSink {
	return &NakamaStorageSink{
		nk: nk,
	}
}

// WriteGameRecord persists one finished game record.
func (s *NakamaStorageSink) WriteGameRecord(ctx context.Context, record ports.GameRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	write := &runtime.StorageWrite{
		Collection:      gameLogCollection,
		Key:             fmt.Sprintf("game_%d", time.Now().UnixNano()),
		Value:           string(value),
		PermissionRead:  2,
		PermissionWrite: 0,
	}
	if _, err := s.nk.StorageWrite(ctx, []*runtime.StorageWrite{write}); err != nil {
		return fmt.Errorf("failed to write game record: %w", err)
	}
	return nil
}
