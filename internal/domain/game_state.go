package domain

import "fmt"

// GameState owns one round of Tarot: the players, the live trick, the dog
// and the turn order. Card count is conserved: hands + dog + won tricks +
// the current trick always hold the full 78.
type GameState struct {
	Players           []*Player
	CurrentTrick      *Trick
	Dog               []Card
	CurrentPlayerIdx  int
	TrickStarterIndex int

	BiddingRound *BiddingRound
	Contract     *Contract
}

// NewGameState creates a round for 3, 4 or 5 players with empty hands.
func NewGameState(playerIDs []string) (*GameState, error) {
	if len(playerIDs) < 3 || len(playerIDs) > 5 {
		return nil, fmt.Errorf("%w: %d, must be 3, 4 or 5", ErrInvalidPlayerCount, len(playerIDs))
	}
	players := make([]*Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		players = append(players, NewPlayer(id))
	}
	return &GameState{
		Players:      players,
		CurrentTrick: NewTrick(),
	}, nil
}

// PlayCard plays a card for the player at playerIndex. The card must be in
// that player's hand and it must be their turn; rule legality is the
// caller's job (LegalMoves), hand membership is enforced here regardless.
// Completing the trick resolves it: the winner collects the cards and
// leads the next trick.
func (g *GameState) PlayCard(playerIndex int, card Card) error {
	if playerIndex != g.CurrentPlayerIdx {
		return fmt.Errorf("%w: player %d played, player %d expected", ErrNotYourTurn, playerIndex, g.CurrentPlayerIdx)
	}

	player := g.Players[playerIndex]
	if err := player.PlayCard(card); err != nil {
		return err
	}

	g.CurrentTrick.AddCard(card, playerIndex)
	g.CurrentPlayerIdx = (g.CurrentPlayerIdx + 1) % len(g.Players)

	if g.CurrentTrick.IsComplete(len(g.Players)) {
		return g.completeTrick()
	}
	return nil
}

func (g *GameState) completeTrick() error {
	winnerIndex, err := g.CurrentTrick.WinnerIndex()
	if err != nil {
		return err
	}

	g.Players[winnerIndex].AddTrick(g.CurrentTrick.Cards())
	g.CurrentTrick.Clear()

	// Winner leads the next trick.
	g.CurrentPlayerIdx = winnerIndex
	g.TrickStarterIndex = winnerIndex
	return nil
}

// IsGameOver reports whether every hand has been played out.
func (g *GameState) IsGameOver() bool {
	for _, p := range g.Players {
		if p.CardCount() > 0 {
			return false
		}
	}
	return true
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() *Player {
	return g.Players[g.CurrentPlayerIdx]
}

// PlayerByID finds a player by identity, nil when absent.
func (g *GameState) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIDs returns the player identities in seat order.
func (g *GameState) PlayerIDs() []string {
	ids := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// CompletedTricks gathers every won trick in seat order, used for the
// no-shuffle redeal after a voided round.
func (g *GameState) CompletedTricks() [][]Card {
	var out [][]Card
	for _, p := range g.Players {
		out = append(out, p.TricksWon...)
	}
	return out
}

// TakerCards returns the cards credited to the taker team at settlement:
// the taker's won tricks plus the discarded dog.
func (g *GameState) TakerCards() []Card {
	if g.Contract == nil {
		return nil
	}
	taker := g.PlayerByID(g.Contract.TakerID)
	if taker == nil {
		return nil
	}
	return append(taker.WonCards(), g.Dog...)
}
