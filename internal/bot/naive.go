package bot

import (
	botinternal "tarot/internal/bot/internal"
	"tarot/internal/domain"
)

// naivePlayers is the player count the Petit-safety position check
// assumes. The heuristic only errs conservative for 3 and 5 seats.
const naivePlayers = 4

// NaiveStrategy plays the strongest legal card, with dedicated handling
// for the two fragile oudlers: the Petit is played when it cannot be
// captured and sheltered otherwise, and the Excuse is spent on tricks not
// worth a trump.
type NaiveStrategy struct{}

func (s *NaiveStrategy) ChooseCard(hand, legal []domain.Card, trick *domain.Trick) (domain.Card, error) {
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalMoves
	}

	if botinternal.PetitSafeToPlay(trick, naivePlayers) {
		for _, c := range legal {
			if botinternal.IsPetit(c) {
				return c, nil
			}
		}
	}

	safe := botinternal.FilterPetitIfUnsafe(legal, trick, naivePlayers)

	if excuse, ok := botinternal.ExcuseToPlay(safe, trick, hand); ok {
		return excuse, nil
	}

	best := safe[0]
	for _, c := range safe[1:] {
		if strongerCard(c, best) {
			best = c
		}
	}
	return best, nil
}

func (s *NaiveStrategy) Name() string { return StrategyNaive }

// strongerCard orders by point value first, rank second, trump-ness last.
func strongerCard(a, b domain.Card) bool {
	if a.Points() != b.Points() {
		return a.Points() > b.Points()
	}
	if a.Rank != b.Rank {
		return a.Rank > b.Rank
	}
	return a.Suit == domain.Trump && b.Suit != domain.Trump
}
