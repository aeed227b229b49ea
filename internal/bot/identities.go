package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// BotIdentity is one provisioned bot account. Strategy names map to the
// factory registry in this package.
type BotIdentity struct {
	DeviceID        string `json:"device_id"`
	UserID          string `json:"user_id"`
	Username        string `json:"username"`
	DisplayName     string `json:"display_name"`
	CardStrategy    string `json:"card_strategy"`
	BiddingStrategy string `json:"bidding_strategy"`
	DiscardStrategy string `json:"discard_strategy"`
}

var (
	botIdentities []BotIdentity
	botIDMap      map[string]bool
	botConfigMap  map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given JSON file.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &botIdentities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		botIDMap = make(map[string]bool)
		botConfigMap = make(map[string]BotIdentity)
		for _, identity := range botIdentities {
			if identity.UserID != "" {
				mapIdentity(identity)
			}
		}
	})
	return loadErr
}

func mapIdentity(identity BotIdentity) {
	botIDMap[identity.UserID] = true
	botConfigMap[identity.UserID] = identity
}

// ProvisionBots ensures the bot accounts exist in Nakama and carry the
// is_bot metadata used by the match handler.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		for i := range botIdentities {
			identity := &botIdentities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":        true,
				"card_strategy": identity.CardStrategy,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: failed to update bot account %s: %v", userID, err)
			}

			mapIdentity(*identity)
			logger.Info("ProvisionBots: bot %s (%s) ready, strategy %s", identity.DisplayName, userID, identity.CardStrategy)
		}
	})
	return nil
}

// GetBotConfig returns the full identity for a bot user ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	config, ok := botConfigMap[userID]
	return config, ok
}

// GetBotIdentity returns an identity by index, cycling the pool. With no
// pool loaded it fabricates a minimal identity using the naive strategy.
func GetBotIdentity(index int) BotIdentity {
	if len(botIdentities) == 0 {
		identity := BotIdentity{
			UserID:          fmt.Sprintf("bot-%d", index),
			DisplayName:     fmt.Sprintf("AI Player %d", index),
			CardStrategy:    StrategyNaive,
			BiddingStrategy: BiddingPointBased,
			DiscardStrategy: DiscardMaxPoints,
		}
		if botIDMap == nil {
			botIDMap = make(map[string]bool)
			botConfigMap = make(map[string]BotIdentity)
		}
		mapIdentity(identity)
		return identity
	}

	identity := botIdentities[index%len(botIdentities)]
	if identity.UserID == "" {
		// Not provisioned against a server; give the seat a stable local ID.
		identity.UserID = fmt.Sprintf("bot-%d", index)
		mapIdentity(identity)
	}
	return identity
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	if botIDMap == nil {
		return false
	}
	return botIDMap[userID]
}

// AgentFor builds a playing agent from a bot identity, falling back to
// the naive defaults for unset strategy names.
func AgentFor(identity BotIdentity) (*Agent, error) {
	cardName := identity.CardStrategy
	if cardName == "" {
		cardName = StrategyNaive
	}
	bidName := identity.BiddingStrategy
	if bidName == "" {
		bidName = BiddingPointBased
	}
	discardName := identity.DiscardStrategy
	if discardName == "" {
		discardName = DiscardMaxPoints
	}
	return NewAgent(identity.UserID, identity.DisplayName, cardName, bidName, discardName, nil)
}
