package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// DeckSize is the number of cards in a Tarot deck: 56 suited cards,
// 21 trumps and the Excuse.
const DeckSize = 78

// DogSizes maps player count to the number of cards set aside for the dog.
var DogSizes = map[int]int{3: 6, 4: 6, 5: 3}

// Deck owns the 78-card pack for one round.
type Deck struct {
	Cards []Card
}

// NewDeck builds a full deck in canonical order.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range OrdinarySuits {
		for rank := RankAce; rank <= RankKing; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	for rank := TrumpMin; rank <= TrumpMax; rank++ {
		cards = append(cards, Card{Suit: Trump, Rank: rank})
	}
	cards = append(cards, CardExcuse)
	return &Deck{Cards: cards}
}

// Shuffle permutes the deck in place. A nil rng falls back to a time-seeded
// source; callers needing reproducible deals inject their own.
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal partitions the deck into numPlayers hands and the dog. The dog is
// taken off the top of the (already shuffled) deck, then the rest goes out
// three cards at a time round-robin in index order. For every legal player
// count the remainder divides evenly, so hands always end up equal; dealing
// still drains the pack to the last card rather than assuming it.
func (d *Deck) Deal(numPlayers int) ([][]Card, []Card, error) {
	dogSize, ok := DogSizes[numPlayers]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d, must be 3, 4 or 5", ErrInvalidPlayerCount, numPlayers)
	}

	dog := make([]Card, dogSize)
	copy(dog, d.Cards[:dogSize])

	hands := make([][]Card, numPlayers)
	remaining := d.Cards[dogSize:]
	player := 0
	for len(remaining) > 0 {
		packet := 3
		if packet > len(remaining) {
			packet = len(remaining)
		}
		hands[player] = append(hands[player], remaining[:packet]...)
		remaining = remaining[packet:]
		player = (player + 1) % numPlayers
	}

	return hands, dog, nil
}

// CollectFromTricks rebuilds the deck from finished tricks followed by the
// dog, preserving order. Used after a voided bidding round (everyone
// passed): the next deal reuses this order without reshuffling.
func (d *Deck) CollectFromTricks(tricks [][]Card, dog []Card) {
	d.Cards = d.Cards[:0]
	for _, trick := range tricks {
		d.Cards = append(d.Cards, trick...)
	}
	d.Cards = append(d.Cards, dog...)
}

// Len returns the number of cards currently in the deck.
func (d *Deck) Len() int {
	return len(d.Cards)
}
