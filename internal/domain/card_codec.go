package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Persisted card format: "(suit_code,rank)" with two-letter suit codes.
// King of Hearts is "(co,14)", the 21 of trump "(at,21)", the Excuse
// "(ex,0)". This matches the strings already stored by the persistence
// collaborator, so the mapping must not change.
var suitCodes = map[Suit]string{
	Hearts:   "co",
	Spades:   "pi",
	Diamonds: "ca",
	Clubs:    "tr",
	Trump:    "at",
	Excuse:   "ex",
}

var codeSuits = func() map[string]Suit {
	m := make(map[string]Suit, len(suitCodes))
	for s, code := range suitCodes {
		m[code] = s
	}
	return m
}()

// EncodeCard serializes a card to its storage string.
func EncodeCard(c Card) string {
	return fmt.Sprintf("(%s,%d)", suitCodes[c.Suit], c.Rank)
}

// EncodeCards serializes a card list in order.
func EncodeCards(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, EncodeCard(c))
	}
	return out
}

// DecodeCard parses a storage string back into a card.
func DecodeCard(s string) (Card, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardString, s)
	}
	code, rankStr, ok := strings.Cut(s[1:len(s)-1], ",")
	if !ok {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCardString, s)
	}
	suit, ok := codeSuits[code]
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown suit code %q", ErrBadCardString, code)
	}
	rank, err := strconv.Atoi(rankStr)
	if err != nil {
		return Card{}, fmt.Errorf("%w: rank %q", ErrBadCardString, rankStr)
	}
	card, err := NewCard(suit, rank)
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrBadCardString, s, err)
	}
	return card, nil
}

// DecodeCards parses a list of storage strings, failing on the first bad one.
func DecodeCards(strs []string) ([]Card, error) {
	out := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := DecodeCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
