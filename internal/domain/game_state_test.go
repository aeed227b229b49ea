package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func dealtGame(t *testing.T, numPlayers int, seed int64) *GameState {
	t.Helper()
	ids := []string{"p0", "p1", "p2", "p3", "p4"}[:numPlayers]
	g, err := NewGameState(ids)
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}

	deck := NewDeck()
	deck.Shuffle(rand.New(rand.NewSource(seed)))
	hands, dog, err := deck.Deal(numPlayers)
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	for i, hand := range hands {
		g.Players[i].AddCardsToHand(hand)
	}
	g.Dog = dog
	return g
}

func TestNewGameStateRejectsBadPlayerCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 6} {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = "p"
		}
		if _, err := NewGameState(ids); !errors.Is(err, ErrInvalidPlayerCount) {
			t.Errorf("NewGameState with %d players: err = %v, want ErrInvalidPlayerCount", n, err)
		}
	}
}

func TestPlayCardEnforcesTurnOrder(t *testing.T) {
	g := dealtGame(t, 4, 7)

	wrong := g.Players[2].Hand[0]
	if err := g.PlayCard(2, wrong); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out-of-turn play: err = %v, want ErrNotYourTurn", err)
	}

	notHeld := g.Players[1].Hand[0]
	if err := g.PlayCard(0, notHeld); !errors.Is(err, ErrCardNotInHand) {
		t.Fatalf("foreign card play: err = %v, want ErrCardNotInHand", err)
	}

	legal := g.CurrentTrick.LegalMoves(g.Players[0].Hand)
	if err := g.PlayCard(0, legal[0]); err != nil {
		t.Fatalf("legal play: %v", err)
	}
	if g.CurrentPlayerIdx != 1 {
		t.Fatalf("CurrentPlayerIdx = %d after first play, want 1", g.CurrentPlayerIdx)
	}
}

func TestCompletedTrickGoesToWinnerWhoLeadsNext(t *testing.T) {
	g := dealtGame(t, 3, 11)

	for i := 0; i < 3; i++ {
		idx := g.CurrentPlayerIdx
		legal := g.CurrentTrick.LegalMoves(g.Players[idx].Hand)
		if err := g.PlayCard(idx, legal[0]); err != nil {
			t.Fatalf("play: %v", err)
		}
	}
	if !g.CurrentTrick.IsEmpty() {
		t.Fatal("trick should have been cleared after the third card")
	}

	wonTricks := 0
	winner := -1
	for i, p := range g.Players {
		wonTricks += len(p.TricksWon)
		if len(p.TricksWon) == 1 {
			winner = i
			if got := len(p.TricksWon[0]); got != 3 {
				t.Fatalf("won trick holds %d cards, want 3", got)
			}
		}
	}
	if wonTricks != 1 {
		t.Fatalf("%d tricks won after one full trick, want 1", wonTricks)
	}
	if g.CurrentPlayerIdx != winner || g.TrickStarterIndex != winner {
		t.Fatalf("winner %d should lead next, got current=%d starter=%d",
			winner, g.CurrentPlayerIdx, g.TrickStarterIndex)
	}
}

func TestFullPlayoutConservesAllCards(t *testing.T) {
	for _, numPlayers := range []int{3, 4, 5} {
		g := dealtGame(t, numPlayers, 42)

		for !g.IsGameOver() {
			idx := g.CurrentPlayerIdx
			legal := g.CurrentTrick.LegalMoves(g.Players[idx].Hand)
			if len(legal) == 0 {
				t.Fatalf("%d players: no legal move for player %d", numPlayers, idx)
			}
			if err := g.PlayCard(idx, legal[0]); err != nil {
				t.Fatalf("%d players: play: %v", numPlayers, err)
			}
		}

		if !g.CurrentTrick.IsEmpty() {
			t.Fatalf("%d players: trick not empty at game end", numPlayers)
		}

		total := len(g.Dog)
		var points float64
		for _, p := range g.Players {
			won := p.WonCards()
			total += len(won)
			points += CountPoints(won)
		}
		if total != DeckSize {
			t.Fatalf("%d players: %d cards accounted for, want %d", numPlayers, total, DeckSize)
		}
		if dogPoints := CountPoints(g.Dog); points+dogPoints != 91.0 {
			t.Fatalf("%d players: tricks %.1f + dog %.1f points, want 91 total", numPlayers, points, dogPoints)
		}
	}
}

func TestPlayerLookups(t *testing.T) {
	g := dealtGame(t, 4, 3)

	if p := g.PlayerByID("p2"); p == nil || p.ID != "p2" {
		t.Fatalf("PlayerByID(p2) = %v", p)
	}
	if p := g.PlayerByID("ghost"); p != nil {
		t.Fatalf("PlayerByID(ghost) = %v, want nil", p)
	}
	ids := g.PlayerIDs()
	want := []string{"p0", "p1", "p2", "p3"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("PlayerIDs = %v, want %v", ids, want)
		}
	}
}
