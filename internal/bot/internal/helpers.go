package internal

import "tarot/internal/domain"

// Pure analysis helpers for Petit and Excuse handling, shared between
// card strategies.

// LowValueThreshold is the strategic point value at or below which a
// trick is not worth spending a trump on.
const LowValueThreshold = 1.0

// IsPetit reports whether the card is the trump 1.
func IsPetit(c domain.Card) bool {
	return c.Suit == domain.Trump && c.Rank == domain.TrumpMin
}

// PetitSafeToPlay reports whether the Petit can be played without losing
// it: the bot plays last in the trick and no opponent trump is on the
// table. Any trump already played beats the Petit.
func PetitSafeToPlay(trick *domain.Trick, numPlayers int) bool {
	if trick.Size() != numPlayers-1 {
		return false
	}
	return !trick.HasTrump()
}

// FilterPetitIfUnsafe removes the Petit from the candidate moves when
// playing it would lose it. The Petit stays when it is the only option.
func FilterPetitIfUnsafe(legal []domain.Card, trick *domain.Trick, numPlayers int) []domain.Card {
	hasPetit := false
	for _, c := range legal {
		if IsPetit(c) {
			hasPetit = true
			break
		}
	}
	if !hasPetit || PetitSafeToPlay(trick, numPlayers) {
		return legal
	}

	filtered := make([]domain.Card, 0, len(legal))
	for _, c := range legal {
		if !IsPetit(c) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return legal
	}
	return filtered
}

// TrickValue returns the strategic value of the cards on the table: the
// summed points minus the half point every card carries regardless.
func TrickValue(trick *domain.Trick) float64 {
	cards := trick.Cards()
	return domain.CountPoints(cards) - 0.5*float64(len(cards))
}

// BestTrumpInHand returns the strongest trump held.
func BestTrumpInHand(hand []domain.Card) (domain.Card, bool) {
	return domain.HighestTrumpIn(hand)
}

// CanWinTrickWithTrump reports whether some trump in hand beats every
// trump already played.
func CanWinTrickWithTrump(hand []domain.Card, trick *domain.Trick) bool {
	best, ok := BestTrumpInHand(hand)
	if !ok {
		return false
	}
	played, any := trick.HighestTrump()
	if !any {
		return true
	}
	return best.Rank > played.Rank
}

// HasSuit reports whether the hand holds a card of the given suit.
func HasSuit(hand []domain.Card, suit domain.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// ExcuseToPlay returns the Excuse from legal when spending it is better
// than spending a trump: the bot is void in the asked suit (so a trump
// would otherwise go down) and either the trick is low value or no trump
// in hand can win it.
func ExcuseToPlay(legal []domain.Card, trick *domain.Trick, hand []domain.Card) (domain.Card, bool) {
	var excuse domain.Card
	found := false
	for _, c := range legal {
		if c.IsExcuse() {
			excuse = c
			found = true
			break
		}
	}
	if !found {
		return domain.Card{}, false
	}

	asked, ok := trick.AskedSuit()
	if !ok || HasSuit(hand, asked) {
		return domain.Card{}, false
	}

	if TrickValue(trick) <= LowValueThreshold {
		return excuse, true
	}
	if !CanWinTrickWithTrump(hand, trick) {
		return excuse, true
	}
	return domain.Card{}, false
}
