package domain

import "testing"

func TestScoringWorkedExample(t *testing.T) {
	// Petite lost: needed 56, achieved 50. Base diff 6, multiplier 1.
	// Four players: taker loses 18, each defender gains 6.
	contract := &Contract{TakerID: "p0", Type: BidPetite, PointsNeeded: 56}
	players := []string{"p0", "p1", "p2", "p3"}

	scores := CalculatePlayerScores(contract, 50, players, 4)

	if scores["p0"] != -18 {
		t.Fatalf("taker score = %d, want -18", scores["p0"])
	}
	for _, id := range players[1:] {
		if scores[id] != 6 {
			t.Fatalf("defender %s score = %d, want 6", id, scores[id])
		}
	}
}

func TestScoringContractMade(t *testing.T) {
	// Garde made: needed 41, achieved 49. Base diff 8, multiplier 2.
	contract := &Contract{TakerID: "p2", Type: BidGarde, PointsNeeded: 41}
	players := []string{"p0", "p1", "p2", "p3"}

	scores := CalculatePlayerScores(contract, 49, players, 4)

	if scores["p2"] != 48 {
		t.Fatalf("taker score = %d, want 48", scores["p2"])
	}
	if scores["p0"] != -16 || scores["p1"] != -16 || scores["p3"] != -16 {
		t.Fatalf("defender scores = %v, want -16 each", scores)
	}
}

func TestScoringHalfPointFloors(t *testing.T) {
	// Achieved 41.5 against 41: diff 0.5, garde doubles it to 1.0.
	contract := &Contract{TakerID: "p0", Type: BidGarde, PointsNeeded: 41}
	players := []string{"p0", "p1", "p2"}

	scores := CalculatePlayerScores(contract, 41.5, players, 3)
	if scores["p0"] != 2 || scores["p1"] != -1 || scores["p2"] != -1 {
		t.Fatalf("scores = %v, want p0:2 p1:-1 p2:-1", scores)
	}
}

func TestScoringZeroSum(t *testing.T) {
	playerSets := [][]string{
		{"a", "b", "c"},
		{"a", "b", "c", "d"},
		{"a", "b", "c", "d", "e"},
	}
	bids := []BidType{BidPetite, BidGarde, BidGardeSans, BidGardeContre}

	for _, players := range playerSets {
		for _, bid := range bids {
			for _, needed := range []int{36, 41, 51, 56} {
				for takerPoints := 0.0; takerPoints <= 91.0; takerPoints += 3.5 {
					contract := &Contract{TakerID: players[0], Type: bid, PointsNeeded: needed}
					scores := CalculatePlayerScores(contract, takerPoints, players, len(players))

					sum := 0
					for _, s := range scores {
						sum += s
					}
					if sum != 0 {
						t.Fatalf("scores sum to %d for %d players bid %v needed %d points %v",
							sum, len(players), bid, needed, takerPoints)
					}
				}
			}
		}
	}
}
