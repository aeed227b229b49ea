package domain

import (
	"fmt"
	"sort"
)

// Player holds a participant's identity, hand and won tricks for one round.
type Player struct {
	ID        string
	Hand      []Card
	TricksWon [][]Card
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(id string) *Player {
	return &Player{ID: id}
}

// AddCardsToHand appends cards in bulk (deal, dog pickup) and re-sorts the
// hand for display.
func (p *Player) AddCardsToHand(cards []Card) {
	p.Hand = append(p.Hand, cards...)
	sort.Slice(p.Hand, func(i, j int) bool { return p.Hand[i].Less(p.Hand[j]) })
}

// PlayCard removes a single card from the hand.
func (p *Player) PlayCard(card Card) error {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: player %s does not hold %s", ErrCardNotInHand, p.ID, card)
}

// AddTrick credits a completed trick to the player.
func (p *Player) AddTrick(trick []Card) {
	p.TricksWon = append(p.TricksWon, trick)
}

// CardCount returns the number of cards left in hand.
func (p *Player) CardCount() int {
	return len(p.Hand)
}

// HasCard reports whether the player holds the given card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// WonCards flattens the player's tricks into a single card list.
func (p *Player) WonCards() []Card {
	var out []Card
	for _, t := range p.TricksWon {
		out = append(out, t...)
	}
	return out
}
