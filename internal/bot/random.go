package bot

import (
	"math/rand"

	"tarot/internal/domain"
)

// RandomStrategy plays a uniformly random legal card. It is the baseline
// the smarter strategies are measured against.
type RandomStrategy struct {
	rng *rand.Rand
}

func (s *RandomStrategy) ChooseCard(hand, legal []domain.Card, trick *domain.Trick) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalMoves
	}
	return legal[s.rng.Intn(len(legal))], nil
}

func (s *RandomStrategy) Name() string { return StrategyRandom }
