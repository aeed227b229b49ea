package bot

import (
	"errors"
	"math/rand"
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

func TestRandomStrategyStaysInLegalSet(t *testing.T) {
	s := &RandomStrategy{rng: rand.New(rand.NewSource(5))}
	legal := []domain.Card{
		domain.MustCard(domain.Hearts, 3),
		domain.MustCard(domain.Hearts, 9),
		domain.MustCard(domain.Spades, domain.RankKing),
	}

	for i := 0; i < 100; i++ {
		card, err := s.ChooseCard(legal, legal, domain.NewTrick())
		if err != nil {
			t.Fatalf("ChooseCard: %v", err)
		}
		found := false
		for _, c := range legal {
			if c == card {
				found = true
			}
		}
		if !found {
			t.Fatalf("chose %v outside the legal set", card)
		}
	}

	if _, err := s.ChooseCard(nil, nil, domain.NewTrick()); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("empty legal set: err = %v, want ErrNoLegalMoves", err)
	}
}

func TestNaiveStrategyPlaysPetitWhenLast(t *testing.T) {
	// Three opponents already played, none trumped: the Petit wins safely.
	trick := trickOf(t,
		domain.MustCard(domain.Hearts, 4),
		domain.MustCard(domain.Hearts, 7),
		domain.MustCard(domain.Hearts, 2),
	)
	hand := []domain.Card{domain.CardPetit, domain.MustCard(domain.Trump, 8)}

	s := &NaiveStrategy{}
	card, err := s.ChooseCard(hand, hand, trick)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if card != domain.CardPetit {
		t.Fatalf("chose %v, want the Petit", card)
	}
}

func TestNaiveStrategySheltersUnsafePetit(t *testing.T) {
	// Two seats still to play: the Petit must stay in hand.
	trick := trickOf(t,
		domain.MustCard(domain.Hearts, 4),
		domain.MustCard(domain.Hearts, 7),
	)
	hand := []domain.Card{domain.CardPetit, domain.MustCard(domain.Trump, 8)}

	s := &NaiveStrategy{}
	card, err := s.ChooseCard(hand, hand, trick)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if card == domain.CardPetit {
		t.Fatal("played the Petit into an unfinished trick")
	}
}

func TestNaiveStrategySpendsExcuseOnWorthlessTrick(t *testing.T) {
	// Void in hearts, forced to trump a trick of pure half-point cards:
	// the Excuse goes down instead of a trump.
	trick := trickOf(t,
		domain.MustCard(domain.Hearts, 4),
		domain.MustCard(domain.Hearts, 7),
	)
	hand := []domain.Card{
		domain.MustCard(domain.Trump, 8),
		domain.CardExcuse,
	}
	legal := []domain.Card{
		domain.MustCard(domain.Trump, 8),
		domain.CardExcuse,
	}

	s := &NaiveStrategy{}
	card, err := s.ChooseCard(hand, legal, trick)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if !card.IsExcuse() {
		t.Fatalf("chose %v, want the Excuse", card)
	}
}

func TestNaiveStrategyPlaysStrongestByDefault(t *testing.T) {
	trick := trickOf(t, domain.MustCard(domain.Hearts, 4))
	hand := []domain.Card{
		domain.MustCard(domain.Hearts, 2),
		domain.MustCard(domain.Hearts, domain.RankKing),
		domain.MustCard(domain.Hearts, domain.RankJack),
	}

	s := &NaiveStrategy{}
	card, err := s.ChooseCard(hand, hand, trick)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if card.Rank != domain.RankKing {
		t.Fatalf("chose %v, want the king", card)
	}
}

func TestPointBasedBiddingThresholds(t *testing.T) {
	kings := func(n int) []domain.Card {
		suits := []domain.Suit{domain.Hearts, domain.Spades, domain.Diamonds, domain.Clubs}
		out := make([]domain.Card, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, domain.MustCard(suits[i], domain.RankKing))
		}
		return out
	}
	queens := func(n int) []domain.Card {
		suits := []domain.Suit{domain.Hearts, domain.Spades, domain.Diamonds, domain.Clubs}
		out := make([]domain.Card, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, domain.MustCard(suits[i], domain.RankQueen))
		}
		return out
	}

	cases := []struct {
		name string
		hand []domain.Card
		want domain.BidType
	}{
		{"weak hand passes", []domain.Card{domain.MustCard(domain.Hearts, 2)}, domain.BidPass},
		// 4 kings + 1 queen = 21.5 points, 42% of 51.
		{"petite at 40 percent", append(kings(4), queens(1)...), domain.BidPetite},
		// 4 kings + 4 queens = 32 points, 62.7%.
		{"garde at 60 percent", append(kings(4), queens(4)...), domain.BidGarde},
		// 4 kings + 4 queens + 3 oudlers = 45.5 points, 89.2%.
		{"garde sans at 80 percent",
			append(append(kings(4), queens(4)...), domain.CardExcuse, domain.CardPetit, domain.CardTrump21),
			domain.BidGardeSans},
	}

	s := &PointBasedBidding{}
	for _, tc := range cases {
		if got := s.ChooseBid(tc.hand, domain.BidPass); got != tc.want {
			t.Errorf("%s: bid = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPointBasedBiddingWillNotUnderbid(t *testing.T) {
	// Hand is worth a Petite but a Garde is already on the table.
	hand := []domain.Card{
		domain.MustCard(domain.Hearts, domain.RankKing),
		domain.MustCard(domain.Spades, domain.RankKing),
		domain.MustCard(domain.Diamonds, domain.RankKing),
		domain.MustCard(domain.Clubs, domain.RankKing),
		domain.MustCard(domain.Hearts, domain.RankQueen),
	}

	s := &PointBasedBidding{}
	if got := s.ChooseBid(hand, domain.BidGarde); got != domain.BidPass {
		t.Fatalf("bid = %v over a Garde, want pass", got)
	}
}

func TestAlwaysPassBidding(t *testing.T) {
	hand := []domain.Card{domain.CardTrump21, domain.CardExcuse, domain.CardPetit}
	s := &AlwaysPassBidding{}
	if got := s.ChooseBid(hand, domain.BidPass); got != domain.BidPass {
		t.Fatalf("bid = %v, want pass", got)
	}
}

func TestMaxPointsDiscardBuriesPointsOnly(t *testing.T) {
	hand := []domain.Card{
		domain.MustCard(domain.Hearts, domain.RankKing),
		domain.MustCard(domain.Hearts, domain.RankQueen),
		domain.MustCard(domain.Spades, domain.RankKnight),
		domain.MustCard(domain.Spades, domain.RankJack),
		domain.MustCard(domain.Clubs, 5),
		domain.MustCard(domain.Diamonds, 9),
		domain.CardTrump21,
		domain.CardExcuse,
	}

	s := &MaxPointsDiscard{}
	discard, err := s.ChooseDiscard(hand, 3)
	if err != nil {
		t.Fatalf("ChooseDiscard: %v", err)
	}
	if len(discard) != 3 {
		t.Fatalf("discarded %d cards, want 3", len(discard))
	}

	want := map[domain.Card]bool{
		domain.MustCard(domain.Hearts, domain.RankQueen): true,
		domain.MustCard(domain.Spades, domain.RankKnight): true,
		domain.MustCard(domain.Spades, domain.RankJack):   true,
	}
	for _, c := range discard {
		if !want[c] {
			t.Errorf("discarded %v, want queen/knight/jack only", c)
		}
		if !domain.CanDiscard(c) {
			t.Errorf("discarded protected card %v", c)
		}
	}
}

func TestMaxPointsDiscardFailsWhenHandIsAllProtected(t *testing.T) {
	hand := []domain.Card{
		domain.MustCard(domain.Hearts, domain.RankKing),
		domain.CardTrump21,
		domain.CardPetit,
		domain.CardExcuse,
	}

	s := &MaxPointsDiscard{}
	if _, err := s.ChooseDiscard(hand, 3); !errors.Is(err, domain.ErrInsufficientDiscardableCards) {
		t.Fatalf("err = %v, want ErrInsufficientDiscardableCards", err)
	}
}
