package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"tarot/internal/bot"
	"tarot/internal/domain"
)

// Service contains Tarot round use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. Injecting a seeded rng makes deals reproducible.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrUnknownPlayer     = errors.New("player not found")
	ErrNoAgent           = errors.New("no agent for seat")
	ErrBiddingIncomplete = errors.New("bidding round not complete")
	ErrWrongDiscardCount = errors.New("discard count does not match dog size")
	ErrIllegalDiscard    = errors.New("card may not be discarded")
	ErrIllegalMove       = errors.New("card is not a legal move")
)

// StartRound creates the game state, shuffles a fresh deck and deals it.
func (s *Service) StartRound(playerIDs []string) (*domain.GameState, []Event, error) {
	game, err := domain.NewGameState(playerIDs)
	if err != nil {
		return nil, nil, err
	}

	deck := domain.NewDeck()
	deck.Shuffle(s.rng)
	events, err := s.dealInto(game, deck)
	if err != nil {
		return nil, nil, err
	}
	return game, events, nil
}

// RedealVoidedRound gathers every hand and the dog back into a deck, in
// seat order and without shuffling, and deals again. Used after an
// all-pass bidding round.
func (s *Service) RedealVoidedRound(game *domain.GameState) ([]Event, error) {
	hands := make([][]domain.Card, 0, len(game.Players))
	for _, p := range game.Players {
		hands = append(hands, p.Hand)
		p.Hand = nil
	}

	deck := domain.NewDeck()
	deck.CollectFromTricks(hands, game.Dog)
	game.Dog = nil
	game.BiddingRound = nil

	return s.dealInto(game, deck)
}

func (s *Service) dealInto(game *domain.GameState, deck *domain.Deck) ([]Event, error) {
	hands, dog, err := deck.Deal(len(game.Players))
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(game.Players))
	for i, p := range game.Players {
		p.AddCardsToHand(hands[i])
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: p.ID, Hand: p.Hand},
			Recipients: []string{p.ID},
		})
	}
	game.Dog = dog
	return events, nil
}

// OpenBidding starts a fresh bidding round at the given seat.
func (s *Service) OpenBidding(game *domain.GameState, startingIndex int) *domain.BiddingRound {
	round := domain.NewBiddingRound(game.PlayerIDs(), startingIndex)
	game.BiddingRound = round
	return round
}

// PlaceBid records one player's bid. The second return reports whether
// the bidding round is finished; the closing event is bidding_won or
// round_voided accordingly.
func (s *Service) PlaceBid(game *domain.GameState, playerID string, bid domain.BidType) ([]Event, bool, error) {
	round := game.BiddingRound
	if round == nil {
		return nil, false, ErrBiddingIncomplete
	}
	if game.PlayerByID(playerID) == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}

	round.AddBid(playerID, bid)
	events := []Event{{
		Kind:    EventBidPlaced,
		Payload: BidPlacedPayload{PlayerID: playerID, Bid: bid},
	}}

	if !round.IsComplete() {
		return events, false, nil
	}
	if !round.HasTaker() {
		events = append(events, Event{Kind: EventRoundVoided, Payload: RoundVoidedPayload{}})
		return events, true, nil
	}
	events = append(events, Event{
		Kind:    EventBiddingWon,
		Payload: BiddingWonPayload{TakerID: round.TakerID(), Contract: round.ContractType()},
	})
	return events, true, nil
}

// RunBidding walks the whole bidding order, asking each seat's agent for
// a bid; seats without an agent pass. The second return reports whether
// the round produced a taker.
func (s *Service) RunBidding(game *domain.GameState, agents map[string]*bot.Agent, startingIndex int) ([]Event, bool, error) {
	round := s.OpenBidding(game, startingIndex)

	var events []Event
	for _, playerID := range round.BiddingOrder() {
		player := game.PlayerByID(playerID)
		if player == nil {
			return nil, false, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
		}

		chosen := domain.BidPass
		if agent, ok := agents[playerID]; ok && agent != nil {
			chosen = agent.Bid(player.Hand, round.ContractType())
		}
		evs, _, err := s.PlaceBid(game, playerID, chosen)
		if err != nil {
			return nil, false, err
		}
		events = append(events, evs...)
	}
	return events, round.HasTaker(), nil
}

// RevealDog hands the dog to the taker. The reveal event targets the
// taker alone; the table only learns the discard count later.
func (s *Service) RevealDog(game *domain.GameState, takerID string) ([]Event, error) {
	taker := game.PlayerByID(takerID)
	if taker == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, takerID)
	}

	dog := game.Dog
	taker.AddCardsToHand(dog)
	return []Event{{
		Kind:       EventDogRevealed,
		Payload:    DogRevealedPayload{TakerID: takerID, Dog: dog},
		Recipients: []string{takerID},
	}}, nil
}

// DiscardDog validates and applies the taker's discard: exact count,
// hand membership and discardability are all enforced here regardless of
// the caller's own checks. The discarded cards become the new dog.
func (s *Service) DiscardDog(game *domain.GameState, takerID string, discard []domain.Card) ([]Event, error) {
	taker := game.PlayerByID(takerID)
	if taker == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, takerID)
	}

	dogSize := len(game.Dog)
	if len(discard) != dogSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWrongDiscardCount, len(discard), dogSize)
	}
	for _, c := range discard {
		if !domain.CanDiscard(c) {
			return nil, fmt.Errorf("%w: %s", ErrIllegalDiscard, c)
		}
	}
	for _, c := range discard {
		if err := taker.PlayCard(c); err != nil {
			return nil, err
		}
	}
	game.Dog = discard

	return []Event{{
		Kind:    EventDogDiscarded,
		Payload: DogDiscardedPayload{TakerID: takerID, Count: dogSize},
	}}, nil
}

// RunDogPhase reveals the dog to the taker, asks the strategy for the
// discard and applies it.
func (s *Service) RunDogPhase(game *domain.GameState, takerID string, strategy bot.DiscardStrategy) ([]Event, error) {
	dogSize := len(game.Dog)

	events, err := s.RevealDog(game, takerID)
	if err != nil {
		return nil, err
	}

	taker := game.PlayerByID(takerID)
	discard, err := strategy.ChooseDiscard(taker.Hand, dogSize)
	if err != nil {
		return nil, err
	}
	evs, err := s.DiscardDog(game, takerID, discard)
	if err != nil {
		return nil, err
	}
	return append(events, evs...), nil
}

// FinalizeContract derives the contract from the post-discard taker hand.
func (s *Service) FinalizeContract(game *domain.GameState) (*domain.Contract, []Event, error) {
	contract, err := domain.FinalizeContract(game)
	if err != nil {
		return nil, nil, err
	}
	events := []Event{{
		Kind: EventContractFinal,
		Payload: ContractFinalPayload{
			TakerID:      contract.TakerID,
			Contract:     contract.Type,
			Oudlers:      contract.Oudlers,
			PointsNeeded: contract.PointsNeeded,
		},
	}}
	return contract, events, nil
}

// PlayAgentCard computes legal moves for the current player, asks their
// agent for a card and plays it. Trick completion and game end are
// reported through the returned events.
func (s *Service) PlayAgentCard(game *domain.GameState, agents map[string]*bot.Agent) ([]Event, error) {
	player := game.CurrentPlayer()
	agent, ok := agents[player.ID]
	if !ok || agent == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAgent, player.ID)
	}

	legal := game.CurrentTrick.LegalMoves(player.Hand)
	card, err := agent.PlayCard(player.Hand, legal, game.CurrentTrick)
	if err != nil {
		return nil, err
	}
	return s.PlayCard(game, game.CurrentPlayerIdx, card)
}

// PlayCard plays one card through the domain state machine and translates
// the outcome into events.
func (s *Service) PlayCard(game *domain.GameState, playerIndex int, card domain.Card) ([]Event, error) {
	playerID := game.Players[playerIndex].ID
	sizeBefore := game.CurrentTrick.Size()

	if playerIndex != game.CurrentPlayerIdx {
		return nil, fmt.Errorf("%w: player %d played, player %d expected", domain.ErrNotYourTurn, playerIndex, game.CurrentPlayerIdx)
	}
	legal := game.CurrentTrick.LegalMoves(game.Players[playerIndex].Hand)
	allowed := false
	for _, c := range legal {
		if c == card {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, card)
	}

	if err := game.PlayCard(playerIndex, card); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			PlayerID:     playerID,
			Card:         card,
			NextPlayerID: game.CurrentPlayer().ID,
		},
	}}

	// An emptied trick after a play means it completed and resolved.
	if game.CurrentTrick.IsEmpty() && sizeBefore == len(game.Players)-1 {
		winner := game.Players[game.CurrentPlayerIdx]
		trick := winner.TricksWon[len(winner.TricksWon)-1]
		events = append(events, Event{
			Kind:    EventTrickWon,
			Payload: TrickWonPayload{WinnerID: winner.ID, Cards: trick},
		})
	}
	return events, nil
}

// Playout drives agent seats until every hand is empty.
func (s *Service) Playout(game *domain.GameState, agents map[string]*bot.Agent) ([]Event, error) {
	var events []Event
	for !game.IsGameOver() {
		evs, err := s.PlayAgentCard(game, agents)
		if err != nil {
			return events, err
		}
		events = append(events, evs...)
	}
	return events, nil
}

// SettleScores totals the taker team's cards, decides the contract and
// distributes the zero-sum score deltas.
func (s *Service) SettleScores(game *domain.GameState) (map[string]int, []Event, error) {
	if game.Contract == nil {
		return nil, nil, domain.ErrNoTaker
	}

	takerPoints := game.Contract.CalculateScore(game.TakerCards())
	scores := domain.CalculatePlayerScores(game.Contract, takerPoints, game.PlayerIDs(), len(game.Players))

	events := []Event{{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			TakerID:     game.Contract.TakerID,
			TakerPoints: takerPoints,
			Success:     game.Contract.Success,
			Scores:      scores,
		},
	}}
	return scores, events, nil
}
