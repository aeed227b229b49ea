package bot

import "tarot/internal/domain"

// baseContractPoints is the one-oudler threshold the hand-strength
// percentage is measured against.
const baseContractPoints = 51.0

// PointBasedBidding bids by hand strength as a percentage of the base
// contract: under 40% pass, then Petite, Garde at 60%, Garde Sans at 80%
// and Garde Contre at 95%. A desired bid that does not beat the current
// highest becomes a pass.
type PointBasedBidding struct{}

func (s *PointBasedBidding) ChooseBid(hand []domain.Card, currentHighest domain.BidType) domain.BidType {
	percentage := domain.CountPoints(hand) / baseContractPoints * 100

	var desired domain.BidType
	switch {
	case percentage >= 95:
		desired = domain.BidGardeContre
	case percentage >= 80:
		desired = domain.BidGardeSans
	case percentage >= 60:
		desired = domain.BidGarde
	case percentage >= 40:
		desired = domain.BidPetite
	default:
		desired = domain.BidPass
	}

	if desired <= currentHighest {
		return domain.BidPass
	}
	return desired
}

func (s *PointBasedBidding) Name() string { return BiddingPointBased }

// AlwaysPassBidding never takes. Baseline for simulations and a stand-in
// for seats that should not contest the contract.
type AlwaysPassBidding struct{}

func (s *AlwaysPassBidding) ChooseBid(hand []domain.Card, currentHighest domain.BidType) domain.BidType {
	return domain.BidPass
}

func (s *AlwaysPassBidding) Name() string { return BiddingAlwaysPass }
