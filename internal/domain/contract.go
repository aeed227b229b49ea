package domain

import "fmt"

// Contract is the finalized outcome of bidding plus the dog phase. Oudlers
// are counted in the taker's post-discard hand, which fixes the points
// threshold for the whole round. Achieved and Success are set once, after
// the last trick.
type Contract struct {
	TakerID      string
	Type         BidType
	Oudlers      int
	PointsNeeded int

	Achieved float64
	Success  bool
}

// FinalizeContract builds the contract from a completed bidding round and
// the taker's post-discard hand.
func FinalizeContract(g *GameState) (*Contract, error) {
	if g.BiddingRound == nil || !g.BiddingRound.HasTaker() {
		return nil, ErrNoTaker
	}
	takerID := g.BiddingRound.TakerID()
	taker := g.PlayerByID(takerID)
	if taker == nil {
		return nil, fmt.Errorf("%w: taker %s not in game", ErrNoTaker, takerID)
	}

	oudlers := CountOudlers(taker.Hand)
	contract := &Contract{
		TakerID:      takerID,
		Type:         g.BiddingRound.ContractType(),
		Oudlers:      oudlers,
		PointsNeeded: PointsNeeded(oudlers),
	}
	g.Contract = contract
	return contract, nil
}

// CalculateScore credits the taker team with the given cards (won tricks
// plus the discarded dog), records the total and settles success.
func (c *Contract) CalculateScore(takerCards []Card) float64 {
	c.Achieved = CountPoints(takerCards)
	c.Success = c.Achieved >= float64(c.PointsNeeded)
	return c.Achieved
}

func (c *Contract) String() string {
	return fmt.Sprintf("%s by %s (%.1f/%d pts)", c.Type.DisplayName(), c.TakerID, c.Achieved, c.PointsNeeded)
}
