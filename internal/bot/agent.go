package bot

import (
	"math/rand"

	"tarot/internal/domain"
)

// Agent bundles the three strategy capabilities of one autonomous seat.
type Agent struct {
	ID      string
	Name    string
	Cards   CardStrategy
	Bidding BiddingStrategy
	Discard DiscardStrategy
}

// NewAgent builds an agent from registered strategy names. rng may be
// nil for a time-seeded source.
func NewAgent(id, name, cardName, bidName, discardName string, rng *rand.Rand) (*Agent, error) {
	cards, err := NewCardStrategy(cardName, rng)
	if err != nil {
		return nil, err
	}
	bidding, err := NewBiddingStrategy(bidName)
	if err != nil {
		return nil, err
	}
	discard, err := NewDiscardStrategy(discardName)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: id, Name: name, Cards: cards, Bidding: bidding, Discard: discard}, nil
}

// PlayCard asks the card strategy for a move against the current trick.
func (a *Agent) PlayCard(hand, legal []domain.Card, trick *domain.Trick) (domain.Card, error) {
	return a.Cards.ChooseCard(hand, legal, trick)
}

// Bid asks the bidding strategy for this seat's bid.
func (a *Agent) Bid(hand []domain.Card, currentHighest domain.BidType) domain.BidType {
	return a.Bidding.ChooseBid(hand, currentHighest)
}

// DiscardDog asks the discard strategy which cards to bury.
func (a *Agent) DiscardDog(hand []domain.Card, dogSize int) ([]domain.Card, error) {
	return a.Discard.ChooseDiscard(hand, dogSize)
}
