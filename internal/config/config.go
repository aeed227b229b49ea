package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"tarot/internal/bot"
)

// SeatDefaults names the strategies a bot seat uses when its identity
// does not pin them.
type SeatDefaults struct {
	CardStrategy    string `json:"card_strategy"`
	BiddingStrategy string `json:"bidding_strategy"`
	DiscardStrategy string `json:"discard_strategy"`
}

// StorageConfig configures the external game-log store.
type StorageConfig struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url"`
	Issuer   string `json:"issuer"`
	Audience string `json:"audience"`
	Secret   string `json:"secret"`
}

type GameConfig struct {
	NumPlayers          int `json:"num_players"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how long a solo human lobby waits before bots take the empty seats.
	BotAutoFillDelaySeconds int           `json:"bot_auto_fill_delay_seconds"`
	BotDefaults             SeatDefaults  `json:"bot_defaults"`
	Storage                 StorageConfig `json:"storage"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetNumPlayers returns the configured table size, defaulting to four.
func GetNumPlayers() int {
	if cfg == nil || cfg.NumPlayers < 3 || cfg.NumPlayers > 5 {
		return 4
	}
	return cfg.NumPlayers
}

// GetBotDefaults returns the default bot seat strategies, filling in the
// naive stack for unset names.
func GetBotDefaults() SeatDefaults {
	defaults := SeatDefaults{
		CardStrategy:    bot.StrategyNaive,
		BiddingStrategy: bot.BiddingPointBased,
		DiscardStrategy: bot.DiscardMaxPoints,
	}
	if cfg == nil {
		return defaults
	}
	if cfg.BotDefaults.CardStrategy != "" {
		defaults.CardStrategy = cfg.BotDefaults.CardStrategy
	}
	if cfg.BotDefaults.BiddingStrategy != "" {
		defaults.BiddingStrategy = cfg.BotDefaults.BiddingStrategy
	}
	if cfg.BotDefaults.DiscardStrategy != "" {
		defaults.DiscardStrategy = cfg.BotDefaults.DiscardStrategy
	}
	return defaults
}
