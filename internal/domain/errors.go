package domain

import "errors"

var (
	// ErrInvalidCard means a suit/rank pairing violates the card invariant.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidPlayerCount means a deal or game was requested for a player
	// count outside {3, 4, 5}.
	ErrInvalidPlayerCount = errors.New("invalid player count")
	// ErrCardNotInHand means a removal was attempted for a card the player
	// does not hold.
	ErrCardNotInHand = errors.New("card not in hand")
	// ErrNotYourTurn means a play was attempted out of turn order.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrEmptyTrick means a winner was queried on a trick with no cards.
	ErrEmptyTrick = errors.New("empty trick")
	// ErrNoTaker means contract finalization ran on a bidding round where
	// every player passed.
	ErrNoTaker = errors.New("no taker")
	// ErrInsufficientDiscardableCards means the dog phase cannot satisfy the
	// discard count from legally discardable cards.
	ErrInsufficientDiscardableCards = errors.New("insufficient discardable cards")
	// ErrBadCardString means a persisted card string cannot be decoded.
	ErrBadCardString = errors.New("bad card string")
	// ErrBadBidString means a wire bid name does not map to a bid type.
	ErrBadBidString = errors.New("bad bid string")
)
