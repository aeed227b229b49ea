package domain

import "math"

// CalculatePlayerScores distributes round points. The swing per defender
// is |achieved − needed| times the contract multiplier, floored to an
// integer; the taker wins or loses that amount against every defender, so
// the deltas always sum to zero.
func CalculatePlayerScores(contract *Contract, takerPoints float64, playerIDs []string, numPlayers int) map[string]int {
	baseDiff := math.Abs(takerPoints - float64(contract.PointsNeeded))
	finalScore := int(math.Floor(baseDiff * float64(contract.Type.Multiplier())))
	numDefenders := numPlayers - 1

	contractWon := takerPoints >= float64(contract.PointsNeeded)

	scores := make(map[string]int, len(playerIDs))
	for _, id := range playerIDs {
		switch {
		case id == contract.TakerID && contractWon:
			scores[id] = finalScore * numDefenders
		case id == contract.TakerID:
			scores[id] = -finalScore * numDefenders
		case contractWon:
			scores[id] = -finalScore
		default:
			scores[id] = finalScore
		}
	}
	return scores
}
