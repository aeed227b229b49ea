package internal

import (
	"testing"

	"tarot/internal/domain"
)

func trickOf(t *testing.T, cards ...domain.Card) *domain.Trick {
	t.Helper()
	trick := domain.NewTrick()
	for i, c := range cards {
		trick.AddCard(c, i)
	}
	return trick
}

func TestPetitSafeToPlay(t *testing.T) {
	cases := []struct {
		name  string
		trick *domain.Trick
		want  bool
	}{
		{"not last to play", trickOf(t, domain.MustCard(domain.Hearts, 4)), false},
		{"last and no trump", trickOf(t,
			domain.MustCard(domain.Hearts, 4),
			domain.MustCard(domain.Hearts, 9),
			domain.MustCard(domain.Hearts, 2)), true},
		{"last but trump on the table", trickOf(t,
			domain.MustCard(domain.Hearts, 4),
			domain.MustCard(domain.Trump, 5),
			domain.MustCard(domain.Hearts, 2)), false},
	}

	for _, tc := range cases {
		if got := PetitSafeToPlay(tc.trick, 4); got != tc.want {
			t.Errorf("%s: PetitSafeToPlay = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterPetitIfUnsafe(t *testing.T) {
	unsafe := trickOf(t, domain.MustCard(domain.Hearts, 4))
	legal := []domain.Card{domain.CardPetit, domain.MustCard(domain.Trump, 8)}

	filtered := FilterPetitIfUnsafe(legal, unsafe, 4)
	if len(filtered) != 1 || IsPetit(filtered[0]) {
		t.Fatalf("filtered = %v, want the trump 8 only", filtered)
	}

	// The Petit stays when it is the only card.
	only := []domain.Card{domain.CardPetit}
	if kept := FilterPetitIfUnsafe(only, unsafe, 4); len(kept) != 1 || !IsPetit(kept[0]) {
		t.Fatalf("forced Petit was filtered: %v", kept)
	}
}

func TestTrickValueSubtractsBaseHalfPoints(t *testing.T) {
	trick := trickOf(t,
		domain.MustCard(domain.Hearts, domain.RankKing),
		domain.MustCard(domain.Hearts, 4),
	)
	// 4.5 + 0.5 points, minus 0.5 per card.
	if got := TrickValue(trick); got != 4.0 {
		t.Fatalf("TrickValue = %v, want 4.0", got)
	}
}

func TestCanWinTrickWithTrump(t *testing.T) {
	trick := trickOf(t,
		domain.MustCard(domain.Hearts, 4),
		domain.MustCard(domain.Trump, 10),
	)

	strong := []domain.Card{domain.MustCard(domain.Trump, 15)}
	if !CanWinTrickWithTrump(strong, trick) {
		t.Error("trump 15 should beat trump 10")
	}

	weak := []domain.Card{domain.MustCard(domain.Trump, 5)}
	if CanWinTrickWithTrump(weak, trick) {
		t.Error("trump 5 cannot beat trump 10")
	}

	none := []domain.Card{domain.MustCard(domain.Spades, 3)}
	if CanWinTrickWithTrump(none, trick) {
		t.Error("no trump in hand cannot win by trumping")
	}
}

func TestExcuseToPlay(t *testing.T) {
	lowTrick := trickOf(t,
		domain.MustCard(domain.Hearts, 4),
		domain.MustCard(domain.Hearts, 7),
	)

	// Void in hearts with the Excuse available: spend it.
	hand := []domain.Card{domain.MustCard(domain.Trump, 8), domain.CardExcuse}
	if _, ok := ExcuseToPlay(hand, lowTrick, hand); !ok {
		t.Error("expected the Excuse on a worthless trick when void")
	}

	// Holding the asked suit: no reason to spend the Excuse.
	following := []domain.Card{domain.MustCard(domain.Hearts, 9), domain.CardExcuse}
	if _, ok := ExcuseToPlay(following, lowTrick, following); ok {
		t.Error("Excuse offered while the asked suit is held")
	}

	// Valuable trick the hand can trump and win: fight for it.
	richTrick := trickOf(t,
		domain.MustCard(domain.Hearts, domain.RankKing),
		domain.MustCard(domain.Hearts, domain.RankQueen),
	)
	fighter := []domain.Card{domain.MustCard(domain.Trump, 20), domain.CardExcuse}
	if _, ok := ExcuseToPlay(fighter, richTrick, fighter); ok {
		t.Error("Excuse offered on a winnable high-value trick")
	}
}
