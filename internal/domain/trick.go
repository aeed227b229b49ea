package domain

// PlayedCard pairs a card with the index of the player who played it.
type PlayedCard struct {
	Card        Card
	PlayerIndex int
}

// Trick accumulates the cards of one round-robin exchange. It performs no
// legality checking; callers are expected to gate plays through LegalMoves
// first.
type Trick struct {
	plays       []PlayedCard
	leaderIndex int
}

// NewTrick creates an empty trick.
func NewTrick() *Trick {
	return &Trick{}
}

// AddCard appends a play. The first card played records its player as the
// trick leader.
func (t *Trick) AddCard(card Card, playerIndex int) {
	if len(t.plays) == 0 {
		t.leaderIndex = playerIndex
	}
	t.plays = append(t.plays, PlayedCard{Card: card, PlayerIndex: playerIndex})
}

// IsComplete reports whether every player has contributed a card.
func (t *Trick) IsComplete(numPlayers int) bool {
	return len(t.plays) == numPlayers
}

// IsEmpty reports whether no card has been played yet.
func (t *Trick) IsEmpty() bool {
	return len(t.plays) == 0
}

// Size returns the number of cards played so far.
func (t *Trick) Size() int {
	return len(t.plays)
}

// LeaderIndex returns the player index that led the trick. Meaningless on
// an empty trick.
func (t *Trick) LeaderIndex() int {
	return t.leaderIndex
}

// Cards returns the played cards in play order.
func (t *Trick) Cards() []Card {
	out := make([]Card, 0, len(t.plays))
	for _, p := range t.plays {
		out = append(out, p.Card)
	}
	return out
}

// Plays returns the (card, player) pairs in play order.
func (t *Trick) Plays() []PlayedCard {
	return append([]PlayedCard(nil), t.plays...)
}

// AskedSuit returns the suit players must follow, once established.
func (t *Trick) AskedSuit() (Suit, bool) {
	return AskedSuitOf(t.Cards())
}

// HighestTrump returns the strongest trump played so far.
func (t *Trick) HighestTrump() (Card, bool) {
	return HighestTrumpIn(t.Cards())
}

// HasTrump reports whether any trump has been played.
func (t *Trick) HasTrump() bool {
	_, ok := t.HighestTrump()
	return ok
}

// LegalMoves computes the legal plays for the given hand against this trick.
func (t *Trick) LegalMoves(hand []Card) []Card {
	return LegalMoves(hand, t.Cards())
}

// WinnerIndex resolves the trick to the winning player's index.
func (t *Trick) WinnerIndex() (int, error) {
	pos, err := TrickWinner(t.Cards())
	if err != nil {
		return 0, err
	}
	return t.plays[pos].PlayerIndex, nil
}

// Clear resets the trick for the next exchange.
func (t *Trick) Clear() {
	t.plays = t.plays[:0]
	t.leaderIndex = 0
}
