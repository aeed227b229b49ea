package app

import "tarot/internal/domain"

// EventKind identifies emitted round events for dispatch to the
// transport layer.
type EventKind string

const (
	EventHandDealt     EventKind = "hand_dealt"
	EventBidPlaced     EventKind = "bid_placed"
	EventBiddingWon    EventKind = "bidding_won"
	EventRoundVoided   EventKind = "round_voided"
	EventDogRevealed   EventKind = "dog_revealed"
	EventDogDiscarded  EventKind = "dog_discarded"
	EventContractFinal EventKind = "contract_final"
	EventCardPlayed    EventKind = "card_played"
	EventTrickWon      EventKind = "trick_won"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a round event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

type HandDealtPayload struct {
	PlayerID string
	Hand     []domain.Card
}

type BidPlacedPayload struct {
	PlayerID string
	Bid      domain.BidType
}

type BiddingWonPayload struct {
	TakerID  string
	Contract domain.BidType
}

// RoundVoidedPayload marks an all-pass round; the hand is redealt without
// shuffling.
type RoundVoidedPayload struct {
	Redeals int
}

type DogRevealedPayload struct {
	TakerID string
	Dog     []domain.Card
}

type DogDiscardedPayload struct {
	TakerID string
	Count   int
}

type ContractFinalPayload struct {
	TakerID      string
	Contract     domain.BidType
	Oudlers      int
	PointsNeeded int
}

type CardPlayedPayload struct {
	PlayerID     string
	Card         domain.Card
	NextPlayerID string
}

type TrickWonPayload struct {
	WinnerID string
	Cards    []domain.Card
}

type GameEndedPayload struct {
	TakerID     string
	TakerPoints float64
	Success     bool
	Scores      map[string]int
}
