package bot

import (
	"fmt"
	"sort"

	"tarot/internal/domain"
)

// MaxPointsDiscard buries the highest-point discardable cards, hiding as
// many points as possible in the dog. Kings, trumps and the Excuse never
// qualify.
type MaxPointsDiscard struct{}

func (s *MaxPointsDiscard) ChooseDiscard(hand []domain.Card, dogSize int) ([]domain.Card, error) {
	discardable := make([]domain.Card, 0, len(hand))
	for _, c := range hand {
		if domain.CanDiscard(c) {
			discardable = append(discardable, c)
		}
	}
	if len(discardable) < dogSize {
		return nil, fmt.Errorf("%w: have %d, need %d",
			domain.ErrInsufficientDiscardableCards, len(discardable), dogSize)
	}

	sort.SliceStable(discardable, func(i, j int) bool {
		return discardable[i].Points() > discardable[j].Points()
	})
	return discardable[:dogSize], nil
}

func (s *MaxPointsDiscard) Name() string { return DiscardMaxPoints }
