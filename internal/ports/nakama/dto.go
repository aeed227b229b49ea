package nakama

import "tarot/internal/domain"

// Wire payloads. Cards travel in their encoded text form ("(co,14)",
// "(at,21)", "(ex,0)"), matching the storage codec.

// Client -> Server requests.

type StartGameRequest struct{}

type PlaceBidRequest struct {
	Bid string `json:"bid"` // pass, petite, garde, garde_sans, garde_contre
}

type DiscardDogRequest struct {
	Cards []string `json:"cards"`
}

type PlayCardRequest struct {
	Card string `json:"card"`
}

// Server -> Client events.

type PlayerJoinedEvent struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Players   []PlayerState `json:"players"`
}

type PlayerState struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	CardsRemaining int    `json:"cards_remaining"`
	DisplayName    string `json:"display_name"`
}

type PlayerLeftEvent struct {
	UserID string `json:"user_id"`
}

type HandDealtEvent struct {
	Hand []string `json:"hand"`
}

type BidPlacedEvent struct {
	UserID string `json:"user_id"`
	Bid    string `json:"bid"`
}

type BiddingWonEvent struct {
	TakerID  string `json:"taker_id"`
	Contract string `json:"contract"`
}

type RoundVoidedEvent struct {
	Redeals int `json:"redeals"`
}

type DogRevealedEvent struct {
	Dog []string `json:"dog"`
}

type DogDiscardedEvent struct {
	TakerID string `json:"taker_id"`
	Count   int    `json:"count"`
}

type ContractFinalEvent struct {
	TakerID      string `json:"taker_id"`
	Contract     string `json:"contract"`
	Oudlers      int    `json:"oudlers"`
	PointsNeeded int    `json:"points_needed"`
}

type CardPlayedEvent struct {
	UserID     string `json:"user_id"`
	Card       string `json:"card"`
	NextUserID string `json:"next_user_id"`
}

type TrickWonEvent struct {
	WinnerID string   `json:"winner_id"`
	Cards    []string `json:"cards"`
}

type GameEndedEvent struct {
	TakerID     string         `json:"taker_id"`
	TakerPoints float64        `json:"taker_points"`
	Success     bool           `json:"success"`
	Scores      map[string]int `json:"scores"`
}

type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Label is the match listing label quick match queries against.
type Label struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

func toWireCards(cards []domain.Card) []string {
	return domain.EncodeCards(cards)
}

func fromWireCards(strs []string) ([]domain.Card, error) {
	return domain.DecodeCards(strs)
}
