package domain

import "fmt"

// BidType ranks bid strength. The numeric order is the bidding order:
// a later bid captures the contract only if strictly higher.
type BidType int

const (
	BidPass BidType = iota
	BidPetite
	BidGarde
	BidGardeSans
	BidGardeContre
)

func (b BidType) String() string {
	switch b {
	case BidPass:
		return "pass"
	case BidPetite:
		return "petite"
	case BidGarde:
		return "garde"
	case BidGardeSans:
		return "garde_sans"
	case BidGardeContre:
		return "garde_contre"
	default:
		return "?"
	}
}

// DisplayName returns the French table name for the contract.
func (b BidType) DisplayName() string {
	switch b {
	case BidPetite:
		return "Petite"
	case BidGarde:
		return "Garde"
	case BidGardeSans:
		return "Garde Sans le Chien"
	case BidGardeContre:
		return "Garde Contre le Chien"
	default:
		return "Aucun"
	}
}

// Multiplier returns the scoring multiplier for the contract:
// Petite 1, Garde 2, Garde Sans 3, Garde Contre 4.
func (b BidType) Multiplier() int {
	switch b {
	case BidGarde:
		return 2
	case BidGardeSans:
		return 3
	case BidGardeContre:
		return 4
	default:
		return 1
	}
}

// PointsNeeded returns the contract threshold for the taker given how many
// oudlers the taker holds after the discard.
func PointsNeeded(oudlers int) int {
	switch oudlers {
	case 3:
		return 36
	case 2:
		return 41
	case 1:
		return 51
	default:
		return 56
	}
}

// ParseBid maps a wire name produced by BidType.String back to the bid.
func ParseBid(s string) (BidType, error) {
	switch s {
	case "pass":
		return BidPass, nil
	case "petite":
		return BidPetite, nil
	case "garde":
		return BidGarde, nil
	case "garde_sans":
		return BidGardeSans, nil
	case "garde_contre":
		return BidGardeContre, nil
	}
	return BidPass, fmt.Errorf("%w: %q", ErrBadBidString, s)
}

// Bid is a single declaration by one player.
type Bid struct {
	PlayerID string
	Type     BidType
}

// BiddingRound runs one pass of sequential bidding: the starting player
// first, then clockwise, one bid per seat, no raising after the round has
// moved on.
type BiddingRound struct {
	playerIDs     []string
	startingIndex int

	Bids []Bid

	takerID      string
	contractType BidType
	hasTaker     bool
}

// NewBiddingRound creates a round over the players in game order, starting
// at startingIndex.
func NewBiddingRound(playerIDs []string, startingIndex int) *BiddingRound {
	return &BiddingRound{playerIDs: playerIDs, startingIndex: startingIndex}
}

// AddBid records a player's declaration. A non-Pass bid strictly higher
// than the current contract captures the taker slot; equal or lower bids
// are recorded but have no effect.
func (r *BiddingRound) AddBid(playerID string, bid BidType) {
	r.Bids = append(r.Bids, Bid{PlayerID: playerID, Type: bid})
	if bid == BidPass {
		return
	}
	if !r.hasTaker || bid > r.contractType {
		r.takerID = playerID
		r.contractType = bid
		r.hasTaker = true
	}
}

// IsComplete reports whether every player has bid.
func (r *BiddingRound) IsComplete() bool {
	return len(r.Bids) >= len(r.playerIDs)
}

// HasTaker reports whether anyone bid above Pass.
func (r *BiddingRound) HasTaker() bool {
	return r.hasTaker
}

// TakerID returns the current taker, or "" if everyone passed so far.
func (r *BiddingRound) TakerID() string {
	return r.takerID
}

// ContractType returns the strongest bid declared so far, BidPass if none.
func (r *BiddingRound) ContractType() BidType {
	if !r.hasTaker {
		return BidPass
	}
	return r.contractType
}

// NextBidder returns the player whose declaration is due, or false when
// every seat has bid.
func (r *BiddingRound) NextBidder() (string, bool) {
	if r.IsComplete() {
		return "", false
	}
	n := len(r.playerIDs)
	return r.playerIDs[(r.startingIndex+len(r.Bids))%n], true
}

// BiddingOrder returns the player IDs in the order they bid.
func (r *BiddingRound) BiddingOrder() []string {
	n := len(r.playerIDs)
	order := make([]string, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, r.playerIDs[(r.startingIndex+i)%n])
	}
	return order
}
