package domain

import "fmt"

// Suit identifies one of the four ordinary suits, the trump suit, or the
// Excuse. The Excuse is modeled as a pseudo-suit: it is never followable
// and never counts as trump, but giving it a Suit keeps comparisons simple.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
	Trump
	Excuse
)

// OrdinarySuits lists the four followable non-trump suits in precedence order.
var OrdinarySuits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Trèfle"
	case Diamonds:
		return "Carreau"
	case Hearts:
		return "Coeur"
	case Spades:
		return "Pique"
	case Trump:
		return "Atout"
	case Excuse:
		return "Excuse"
	default:
		return "?"
	}
}

// IsOrdinary reports whether s is one of the four followable suits.
func (s Suit) IsOrdinary() bool {
	return s == Clubs || s == Diamonds || s == Hearts || s == Spades
}

// Named ranks for the ordinary suits. Ranks are stored already normalized:
// 1..14 for ordinary suits, 1..21 for trumps, 0 for the Excuse. There is no
// offset encoding to collapse trumps and faces into one flat range.
const (
	RankExcuse = 0
	RankAce    = 1
	RankJack   = 11
	RankKnight = 12
	RankQueen  = 13
	RankKing   = 14
	TrumpMin   = 1
	TrumpMax   = 21
)

// Card is an immutable (suit, rank) pair. Construct through NewCard so the
// suit/rank invariant holds; the zero Card is not a valid Tarot card.
type Card struct {
	Suit Suit
	Rank int
}

// The three oudlers.
var (
	CardExcuse  = Card{Suit: Excuse, Rank: RankExcuse}
	CardPetit   = Card{Suit: Trump, Rank: TrumpMin}
	CardTrump21 = Card{Suit: Trump, Rank: TrumpMax}
)

// NewCard validates the suit/rank pairing and returns the card.
// Invariants: Excuse suit pairs only with rank 0, trumps carry 1..21,
// ordinary suits carry 1..14.
func NewCard(suit Suit, rank int) (Card, error) {
	switch {
	case suit == Excuse:
		if rank != RankExcuse {
			return Card{}, fmt.Errorf("%w: the Excuse has no rank, got %d", ErrInvalidCard, rank)
		}
	case suit == Trump:
		if rank < TrumpMin || rank > TrumpMax {
			return Card{}, fmt.Errorf("%w: trump rank must be in [1,21], got %d", ErrInvalidCard, rank)
		}
	case suit.IsOrdinary():
		if rank < RankAce || rank > RankKing {
			return Card{}, fmt.Errorf("%w: %s rank must be in [1,14], got %d", ErrInvalidCard, suit, rank)
		}
	default:
		return Card{}, fmt.Errorf("%w: unknown suit %d", ErrInvalidCard, suit)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// MustCard is NewCard for fixed inputs known valid; it panics on error.
func MustCard(suit Suit, rank int) Card {
	c, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// Points returns the card's scoring value. The whole deck sums to 91:
// each oudler 4.5, King 4.5, Queen 3.5, Knight 2.5, Jack 1.5, every other
// card 0.5.
func (c Card) Points() float64 {
	if c.IsOudler() {
		return 4.5
	}
	if c.Suit.IsOrdinary() {
		switch c.Rank {
		case RankKing:
			return 4.5
		case RankQueen:
			return 3.5
		case RankKnight:
			return 2.5
		case RankJack:
			return 1.5
		}
	}
	return 0.5
}

// IsOudler reports whether the card is one of the three oudlers:
// the Excuse, the Petit (trump 1) or the 21 of trump.
func (c Card) IsOudler() bool {
	return c == CardExcuse || c == CardPetit || c == CardTrump21
}

// IsExcuse reports whether the card is the Excuse.
func (c Card) IsExcuse() bool {
	return c.Suit == Excuse
}

// Less orders cards for hand sorting: the Excuse sorts below everything,
// trumps sort above every ordinary card, and ordinary suits compare by the
// fixed suit precedence then rank. Trick resolution never uses this order.
func (c Card) Less(other Card) bool {
	if c.Suit == Excuse {
		return other.Suit != Excuse
	}
	if other.Suit == Excuse {
		return false
	}
	if c.Suit == other.Suit {
		return c.Rank < other.Rank
	}
	if c.Suit == Trump {
		return false
	}
	if other.Suit == Trump {
		return true
	}
	return c.Suit < other.Suit
}

func (c Card) String() string {
	switch c.Suit {
	case Excuse:
		return "Excuse"
	case Trump:
		return fmt.Sprintf("Atout %d", c.Rank)
	}
	var name string
	switch c.Rank {
	case RankAce:
		name = "As"
	case RankJack:
		name = "Valet"
	case RankKnight:
		name = "Cavalier"
	case RankQueen:
		name = "Dame"
	case RankKing:
		name = "Roi"
	default:
		name = fmt.Sprintf("%d", c.Rank)
	}
	return fmt.Sprintf("%s de %s", name, c.Suit)
}
