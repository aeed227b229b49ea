package app

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"tarot/internal/bot"
	"tarot/internal/domain"
)

// maxRedeals bounds the void-round retry loop. With any point-based
// bidder in the game this is never reached in practice.
const maxRedeals = 20

// SeatConfig names the strategies of one simulated seat.
type SeatConfig struct {
	ID              string `json:"id"`
	CardStrategy    string `json:"card_strategy"`
	BiddingStrategy string `json:"bidding_strategy"`
	DiscardStrategy string `json:"discard_strategy"`
}

// SimulationConfig describes a batch of bot-vs-bot games.
type SimulationConfig struct {
	Games int          `json:"games"`
	Seats []SeatConfig `json:"seats"`
	Seed  int64        `json:"seed"`
}

// GameResult is the outcome of a single simulated game.
type GameResult struct {
	Number      int
	TakerID     string
	Contract    domain.BidType
	TakerPoints float64
	Success     bool
	Scores      map[string]int
	Redeals     int
}

// SimulationResults aggregates a finished batch.
type SimulationResults struct {
	TotalGames     int
	Wins           map[string]int
	WinRates       map[string]float64
	AvgScores      map[string]float64
	ContractsMade  int
	ContractsLost  int
	AvgTakerPoints float64
}

// Simulator runs batches of fully automated games with a reproducible
// seed and aggregates per-seat statistics.
type Simulator struct {
	cfg      SimulationConfig
	logger   *slog.Logger
	recorder *Recorder
}

// NewSimulator builds a simulator. recorder may be nil to skip game
// logging; logger may be nil for a silent run.
func NewSimulator(cfg SimulationConfig, logger *slog.Logger, recorder *Recorder) *Simulator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Simulator{cfg: cfg, logger: logger, recorder: recorder}
}

// Run plays the configured number of games and aggregates the results.
func (s *Simulator) Run() (*SimulationResults, error) {
	rng := rand.New(rand.NewSource(s.cfg.Seed))

	agents := make(map[string]*bot.Agent, len(s.cfg.Seats))
	playerIDs := make([]string, 0, len(s.cfg.Seats))
	for _, seat := range s.cfg.Seats {
		agent, err := bot.NewAgent(seat.ID, seat.ID, seat.CardStrategy, seat.BiddingStrategy, seat.DiscardStrategy, rng)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.ID, err)
		}
		agents[seat.ID] = agent
		playerIDs = append(playerIDs, seat.ID)
	}

	service := NewService(rng)
	results := make([]GameResult, 0, s.cfg.Games)

	for n := 1; n <= s.cfg.Games; n++ {
		result, err := s.playOne(service, agents, playerIDs, n)
		if err != nil {
			s.logger.Error("game failed", "game", n, "err", err)
			continue
		}
		results = append(results, result)
		s.logger.Info("game complete",
			"game", n,
			"taker", result.TakerID,
			"contract", result.Contract.String(),
			"points", result.TakerPoints,
			"made", result.Success)
	}

	return s.aggregate(results), nil
}

func (s *Simulator) playOne(service *Service, agents map[string]*bot.Agent, playerIDs []string, number int) (GameResult, error) {
	game, _, err := service.StartRound(playerIDs)
	if err != nil {
		return GameResult{}, err
	}

	redeals := 0
	for {
		_, hasTaker, err := service.RunBidding(game, agents, (number-1)%len(playerIDs))
		if err != nil {
			return GameResult{}, err
		}
		if hasTaker {
			break
		}
		redeals++
		if redeals > maxRedeals {
			return GameResult{}, fmt.Errorf("game %d: no taker after %d redeals", number, maxRedeals)
		}
		if _, err := service.RedealVoidedRound(game); err != nil {
			return GameResult{}, err
		}
	}

	takerID := game.BiddingRound.TakerID()
	if _, err := service.RunDogPhase(game, takerID, agents[takerID].Discard); err != nil {
		return GameResult{}, err
	}
	contract, _, err := service.FinalizeContract(game)
	if err != nil {
		return GameResult{}, err
	}
	if _, err := service.Playout(game, agents); err != nil {
		return GameResult{}, err
	}
	scores, _, err := service.SettleScores(game)
	if err != nil {
		return GameResult{}, err
	}

	if s.recorder != nil {
		s.recorder.RecordGame(game, scores)
	}

	return GameResult{
		Number:      number,
		TakerID:     takerID,
		Contract:    contract.Type,
		TakerPoints: contract.Achieved,
		Success:     contract.Success,
		Scores:      scores,
		Redeals:     redeals,
	}, nil
}

func (s *Simulator) aggregate(results []GameResult) *SimulationResults {
	out := &SimulationResults{
		TotalGames: len(results),
		Wins:       make(map[string]int),
		WinRates:   make(map[string]float64),
		AvgScores:  make(map[string]float64),
	}

	totals := make(map[string]int)
	takerPoints := 0.0
	for _, r := range results {
		if r.Success {
			out.ContractsMade++
		} else {
			out.ContractsLost++
		}
		takerPoints += r.TakerPoints

		best := ""
		for id, score := range r.Scores {
			totals[id] += score
			if best == "" || score > r.Scores[best] {
				best = id
			}
		}
		out.Wins[best]++
	}

	if len(results) > 0 {
		out.AvgTakerPoints = takerPoints / float64(len(results))
		for id, total := range totals {
			out.AvgScores[id] = float64(total) / float64(len(results))
			out.WinRates[id] = float64(out.Wins[id]) / float64(len(results))
		}
	}
	return out
}
