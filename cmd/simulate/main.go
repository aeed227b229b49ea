package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"tarot/internal/app"
	"tarot/internal/bot"
	"tarot/internal/config"
	"tarot/internal/ports/supabase"

	"github.com/lmittmann/tint"
	"github.com/pterm/pterm"
)

func main() {
	games := flag.Int("games", 100, "number of games to simulate")
	players := flag.Int("players", 4, "players at the table (3-5)")
	seed := flag.Int64("seed", 1, "rng seed, same seed replays the same batch")
	cards := flag.String("cards", bot.StrategyNaive, "card strategy for every seat")
	bidding := flag.String("bidding", bot.BiddingPointBased, "bidding strategy for every seat")
	discard := flag.String("discard", bot.DiscardMaxPoints, "discard strategy for every seat")
	configPath := flag.String("config", "", "optional game config, enables the game log store")
	verbose := flag.Bool("verbose", false, "log every game result")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	if *players < 3 || *players > 5 {
		logger.Error("invalid player count", "players", *players)
		os.Exit(1)
	}

	var recorder *app.Recorder
	if *configPath != "" {
		if err := config.LoadGameConfig(*configPath); err != nil {
			logger.Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		if storage := config.GetGameConfig().Storage; storage.Enabled {
			tokens := app.NewStorageTokenService(storage.Secret, storage.Issuer, storage.Audience)
			recorder = app.NewRecorder(supabase.NewSink(storage.URL, tokens), logger)
			logger.Info("game log store enabled", "url", storage.URL)
		}
	}

	seats := make([]app.SeatConfig, *players)
	for i := range seats {
		seats[i] = app.SeatConfig{
			ID:              fmt.Sprintf("seat-%d", i+1),
			CardStrategy:    *cards,
			BiddingStrategy: *bidding,
			DiscardStrategy: *discard,
		}
	}

	sim := app.NewSimulator(app.SimulationConfig{
		Games: *games,
		Seats: seats,
		Seed:  *seed,
	}, logger, recorder)

	started := time.Now()
	results, err := sim.Run()
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}

	pterm.DefaultSection.Printf("Tarot simulation: %d games, %d players, seed %d", results.TotalGames, *players, *seed)

	summary := pterm.TableData{{"Seat", "Wins", "Win rate", "Avg score"}}
	ids := make([]string, 0, len(results.AvgScores))
	for id := range results.AvgScores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		summary = append(summary, []string{
			id,
			fmt.Sprintf("%d", results.Wins[id]),
			fmt.Sprintf("%.1f%%", results.WinRates[id]*100),
			fmt.Sprintf("%+.2f", results.AvgScores[id]),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(summary).Render(); err != nil {
		logger.Error("failed to render summary", "err", err)
	}

	pterm.Info.Printf("Contracts made %d / lost %d, avg taker points %.1f\n",
		results.ContractsMade, results.ContractsLost, results.AvgTakerPoints)
	pterm.Info.Printf("Finished in %s\n", time.Since(started).Round(time.Millisecond))
}
