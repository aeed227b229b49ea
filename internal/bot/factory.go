package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// Registered strategy names, usable in config files and RPC payloads.
const (
	StrategyRandom = "bot-random"
	StrategyNaive  = "bot-naive"

	BiddingPointBased = "bid-points"
	BiddingAlwaysPass = "bid-pass"

	DiscardMaxPoints = "discard-max-points"
)

// NewCardStrategy creates a card-play strategy by name. rng may be nil,
// in which case a time-seeded source is used.
func NewCardStrategy(name string, rng *rand.Rand) (CardStrategy, error) {
	switch name {
	case StrategyRandom:
		return &RandomStrategy{rng: ensureRNG(rng)}, nil
	case StrategyNaive:
		return &NaiveStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// NewBiddingStrategy creates a bidding strategy by name.
func NewBiddingStrategy(name string) (BiddingStrategy, error) {
	switch name {
	case BiddingPointBased:
		return &PointBasedBidding{}, nil
	case BiddingAlwaysPass:
		return &AlwaysPassBidding{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// NewDiscardStrategy creates a dog-discard strategy by name.
func NewDiscardStrategy(name string) (DiscardStrategy, error) {
	switch name {
	case DiscardMaxPoints:
		return &MaxPointsDiscard{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
