package app

import (
	"math"
	"testing"

	"tarot/internal/bot"
)

func simSeats() []SeatConfig {
	return []SeatConfig{
		{ID: "p0", CardStrategy: bot.StrategyNaive, BiddingStrategy: bot.BiddingPointBased, DiscardStrategy: bot.DiscardMaxPoints},
		{ID: "p1", CardStrategy: bot.StrategyRandom, BiddingStrategy: bot.BiddingPointBased, DiscardStrategy: bot.DiscardMaxPoints},
		{ID: "p2", CardStrategy: bot.StrategyNaive, BiddingStrategy: bot.BiddingPointBased, DiscardStrategy: bot.DiscardMaxPoints},
		{ID: "p3", CardStrategy: bot.StrategyRandom, BiddingStrategy: bot.BiddingPointBased, DiscardStrategy: bot.DiscardMaxPoints},
	}
}

func TestSimulatorRunAggregates(t *testing.T) {
	sim := NewSimulator(SimulationConfig{Games: 5, Seats: simSeats(), Seed: 99}, nil, nil)
	results, err := sim.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if results.TotalGames == 0 {
		t.Fatal("no games completed")
	}
	if results.ContractsMade+results.ContractsLost != results.TotalGames {
		t.Fatalf("made %d + lost %d != total %d",
			results.ContractsMade, results.ContractsLost, results.TotalGames)
	}

	wins := 0
	for _, w := range results.Wins {
		wins += w
	}
	if wins != results.TotalGames {
		t.Fatalf("win counts sum to %d, want %d", wins, results.TotalGames)
	}

	// Per-game scores are zero-sum, so the averages must cancel too.
	avgSum := 0.0
	for _, avg := range results.AvgScores {
		avgSum += avg
	}
	if math.Abs(avgSum) > 1e-9 {
		t.Fatalf("average scores sum to %v, want 0", avgSum)
	}
}

func TestSimulatorIsReproducibleBySeed(t *testing.T) {
	run := func() *SimulationResults {
		sim := NewSimulator(SimulationConfig{Games: 3, Seats: simSeats(), Seed: 7}, nil, nil)
		results, err := sim.Run()
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return results
	}

	a, b := run(), run()
	if a.TotalGames != b.TotalGames || a.ContractsMade != b.ContractsMade || a.AvgTakerPoints != b.AvgTakerPoints {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
	for id, score := range a.AvgScores {
		if b.AvgScores[id] != score {
			t.Fatalf("seat %s average %v vs %v with the same seed", id, score, b.AvgScores[id])
		}
	}
}

func TestSimulatorRejectsUnknownStrategy(t *testing.T) {
	seats := simSeats()
	seats[0].CardStrategy = "bot-psychic"
	sim := NewSimulator(SimulationConfig{Games: 1, Seats: seats, Seed: 1}, nil, nil)
	if _, err := sim.Run(); err == nil {
		t.Fatal("expected an error for an unknown strategy name")
	}
}
