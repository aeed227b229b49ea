package nakama

import (
	"math/rand"
	"testing"

	"tarot/internal/app"
	"tarot/internal/bot"
	"tarot/internal/domain"
)

func parseOrDie(t *testing.T, s string) domain.BidType {
	t.Helper()
	b, err := domain.ParseBid(s)
	if err != nil {
		t.Fatalf("ParseBid(%q): %v", s, err)
	}
	return b
}

func TestSeatCounts(t *testing.T) {
	botID := bot.GetBotIdentity(0).UserID

	state := &MatchState{Seats: []string{"human-1", "", botID, ""}}

	if got := state.GetOpenSeatsCount(); got != 2 {
		t.Errorf("GetOpenSeatsCount() = %d, want 2", got)
	}
	if got := state.GetOccupiedSeatCount(); got != 2 {
		t.Errorf("GetOccupiedSeatCount() = %d, want 2", got)
	}
	if got := state.GetHumanPlayerCount(); got != 1 {
		t.Errorf("GetHumanPlayerCount() = %d, want 1", got)
	}
	if got := state.seatOf("human-1"); got != 0 {
		t.Errorf("seatOf(human-1) = %d, want 0", got)
	}
	if got := state.seatOf("stranger"); got != -1 {
		t.Errorf("seatOf(stranger) = %d, want -1", got)
	}
}

func TestOwnerSeatSelection(t *testing.T) {
	botID := bot.GetBotIdentity(1).UserID
	seats := []string{"", botID, "human-1", "human-2"}

	if isHumanSeat(seats, 1) {
		t.Error("bot seat reported as human")
	}
	if !isHumanSeat(seats, 2) {
		t.Error("human seat not reported as human")
	}
	if got := findFirstHumanSeat(seats); got != 2 {
		t.Errorf("findFirstHumanSeat() = %d, want 2", got)
	}
	if shouldTerminateNoHumans(seats) {
		t.Error("match with humans flagged for termination")
	}
	if !shouldTerminateNoHumans([]string{"", botID, ""}) {
		t.Error("bot-only match not flagged for termination")
	}
}

func TestPendingBotFollowsPhases(t *testing.T) {
	humanID := "human-1"
	bots := []string{
		bot.GetBotIdentity(1).UserID,
		bot.GetBotIdentity(2).UserID,
		bot.GetBotIdentity(3).UserID,
	}
	seats := append([]string{humanID}, bots...)

	svc := app.NewService(rand.New(rand.NewSource(7)))
	game, _, err := svc.StartRound(seats)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	state := &MatchState{Seats: seats, App: svc, Game: game, Phase: phaseBidding}

	// Bidding opened at the human seat: nothing pending.
	svc.OpenBidding(game, 0)
	if uid, ok := (&matchHandler{}).pendingBot(state); ok {
		t.Fatalf("pendingBot() = %s during human bid, want none", uid)
	}

	// Once the human has bid, the next seat is a bot.
	if _, _, err := svc.PlaceBid(game, humanID, parseOrDie(t, "pass")); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	uid, ok := (&matchHandler{}).pendingBot(state)
	if !ok || uid != bots[0] {
		t.Fatalf("pendingBot() = %q, %v, want %q", uid, ok, bots[0])
	}

	// A bot taker keeps the handler busy through the dog phase.
	for _, id := range bots {
		bidType := parseOrDie(t, "pass")
		if id == bots[1] {
			bidType = parseOrDie(t, "garde")
		}
		if _, _, err := svc.PlaceBid(game, id, bidType); err != nil {
			t.Fatalf("PlaceBid(%s): %v", id, err)
		}
	}
	state.Phase = phaseDog
	uid, ok = (&matchHandler{}).pendingBot(state)
	if !ok || uid != bots[1] {
		t.Fatalf("pendingBot() in dog phase = %q, %v, want taker %q", uid, ok, bots[1])
	}
}

func TestWireCardRoundTrip(t *testing.T) {
	encoded := []string{"(co,14)", "(at,21)", "(ex,0)"}
	cards, err := fromWireCards(encoded)
	if err != nil {
		t.Fatalf("fromWireCards: %v", err)
	}
	back := toWireCards(cards)
	for i := range encoded {
		if back[i] != encoded[i] {
			t.Errorf("round trip mismatch at %d: %s != %s", i, back[i], encoded[i])
		}
	}

	if _, err := fromWireCards([]string{"(zz,99)"}); err == nil {
		t.Error("expected decode error for bad card string")
	}
}
