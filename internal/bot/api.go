package bot

import (
	"errors"

	"tarot/internal/domain"
)

var (
	// ErrUnknownStrategy is returned by the factory functions for a
	// strategy name outside the registry.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrNoLegalMoves is returned when a card strategy is asked to choose
	// from an empty legal-move set.
	ErrNoLegalMoves = errors.New("no legal moves available")
)

// CardStrategy chooses one card to play. The returned card must come from
// legal; hand and trick give the strategy context for the choice.
type CardStrategy interface {
	ChooseCard(hand, legal []domain.Card, trick *domain.Trick) (domain.Card, error)
	Name() string
}

// BiddingStrategy chooses a bid given the hand and the highest bid named
// so far. Returning a bid that does not beat currentHighest is treated as
// a pass by the bidding round.
type BiddingStrategy interface {
	ChooseBid(hand []domain.Card, currentHighest domain.BidType) domain.BidType
	Name() string
}

// DiscardStrategy chooses exactly dogSize cards to bury from the taker's
// enlarged hand. Every returned card must be legally discardable.
type DiscardStrategy interface {
	ChooseDiscard(hand []domain.Card, dogSize int) ([]domain.Card, error)
	Name() string
}
