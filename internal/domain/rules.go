package domain

// Free-function rule computations over raw card lists. Trick methods
// delegate here so the legality and winner algorithms exist exactly once.

// AskedSuitOf determines the suit subsequent players must follow given the
// cards played so far. The second return is false while no suit is
// established: empty trick, or only the Excuse has been led.
func AskedSuitOf(trick []Card) (Suit, bool) {
	if len(trick) == 0 {
		return 0, false
	}
	if trick[0].IsExcuse() {
		if len(trick) > 1 {
			return trick[1].Suit, true
		}
		return 0, false
	}
	return trick[0].Suit, true
}

// HighestTrumpIn returns the strongest trump among the given cards.
func HighestTrumpIn(cards []Card) (Card, bool) {
	best := Card{}
	found := false
	for _, c := range cards {
		if c.Suit == Trump && (!found || c.Rank > best.Rank) {
			best = c
			found = true
		}
	}
	return best, found
}

// LegalMoves computes the cards in hand that may legally be played onto the
// current trick:
//
//   - an empty hand has no moves; leading allows the whole hand
//   - the Excuse is always playable, whatever constraint applies
//   - the asked suit must be followed when held
//   - a void in the asked suit forces trump, and once a trump has been
//     played, a strictly higher trump when one is held
//   - with neither asked suit nor trump the whole hand is a legal discard
//
// The result keeps hand order, with the Excuse appended to any restricted
// subset. For a non-empty hand the result is never empty.
func LegalMoves(hand []Card, trick []Card) []Card {
	if len(hand) == 0 {
		return nil
	}
	if len(trick) == 0 {
		return append([]Card(nil), hand...)
	}

	asked, ok := AskedSuitOf(trick)
	if !ok {
		// Only the Excuse on the table: the trick has no constraint yet.
		return append([]Card(nil), hand...)
	}

	var excuse []Card
	for _, c := range hand {
		if c.IsExcuse() {
			excuse = append(excuse, c)
		}
	}

	var same []Card
	for _, c := range hand {
		if c.Suit == asked {
			same = append(same, c)
		}
	}
	if len(same) > 0 {
		return append(same, excuse...)
	}

	if asked != Trump {
		var trumps []Card
		for _, c := range hand {
			if c.Suit == Trump {
				trumps = append(trumps, c)
			}
		}
		if len(trumps) > 0 {
			if highest, played := HighestTrumpIn(trick); played {
				var higher []Card
				for _, c := range trumps {
					if c.Rank > highest.Rank {
						higher = append(higher, c)
					}
				}
				if len(higher) > 0 {
					return append(higher, excuse...)
				}
			}
			return append(trumps, excuse...)
		}
	}

	// Void in the asked suit with no trumps left: free discard.
	return append([]Card(nil), hand...)
}

// TrickWinner returns the position (index within trick) of the winning
// card. The Excuse never wins; if every card is the Excuse the lead
// position wins by convention. Among the rest, the highest trump wins,
// else the highest card of the asked suit, else the first non-Excuse card.
func TrickWinner(trick []Card) (int, error) {
	if len(trick) == 0 {
		return 0, ErrEmptyTrick
	}

	first := -1
	for i, c := range trick {
		if !c.IsExcuse() {
			first = i
			break
		}
	}
	if first == -1 {
		return 0, nil
	}

	asked := trick[first].Suit

	best := -1
	for i, c := range trick {
		if c.Suit == Trump && (best == -1 || c.Rank > trick[best].Rank) {
			best = i
		}
	}
	if best != -1 {
		return best, nil
	}

	for i, c := range trick {
		if c.Suit == asked && (best == -1 || c.Rank > trick[best].Rank) {
			best = i
		}
	}
	if best != -1 {
		return best, nil
	}

	return first, nil
}

// CanDiscard reports whether a card may legally go to the dog during the
// discard phase: kings, trumps and the Excuse stay in hand.
func CanDiscard(c Card) bool {
	if c.Suit == Trump || c.IsExcuse() {
		return false
	}
	return c.Rank != RankKing
}

// CountPoints sums the scoring value of the given cards.
func CountPoints(cards []Card) float64 {
	total := 0.0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// CountOudlers counts the oudlers among the given cards.
func CountOudlers(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsOudler() {
			n++
		}
	}
	return n
}
