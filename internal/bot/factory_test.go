package bot

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewCardStrategyRegistry(t *testing.T) {
	for _, name := range []string{StrategyRandom, StrategyNaive} {
		s, err := NewCardStrategy(name, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("NewCardStrategy(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("strategy %q reports name %q", name, s.Name())
		}
	}

	if _, err := NewCardStrategy("bot-genius", nil); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("unknown card strategy: err = %v, want ErrUnknownStrategy", err)
	}
}

func TestNewBiddingStrategyRegistry(t *testing.T) {
	for _, name := range []string{BiddingPointBased, BiddingAlwaysPass} {
		s, err := NewBiddingStrategy(name)
		if err != nil {
			t.Fatalf("NewBiddingStrategy(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("strategy %q reports name %q", name, s.Name())
		}
	}

	if _, err := NewBiddingStrategy("bid-aggressive"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("unknown bidding strategy: err = %v, want ErrUnknownStrategy", err)
	}
}

func TestNewDiscardStrategyRegistry(t *testing.T) {
	s, err := NewDiscardStrategy(DiscardMaxPoints)
	if err != nil {
		t.Fatalf("NewDiscardStrategy: %v", err)
	}
	if s.Name() != DiscardMaxPoints {
		t.Errorf("strategy reports name %q", s.Name())
	}

	if _, err := NewDiscardStrategy("discard-random"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("unknown discard strategy: err = %v, want ErrUnknownStrategy", err)
	}
}

func TestNewAgentWiresAllThreeStrategies(t *testing.T) {
	agent, err := NewAgent("b1", "Bot One", StrategyNaive, BiddingPointBased, DiscardMaxPoints, nil)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	if agent.Cards.Name() != StrategyNaive ||
		agent.Bidding.Name() != BiddingPointBased ||
		agent.Discard.Name() != DiscardMaxPoints {
		t.Fatalf("agent strategies = %q/%q/%q",
			agent.Cards.Name(), agent.Bidding.Name(), agent.Discard.Name())
	}

	if _, err := NewAgent("b2", "Bot Two", "nope", BiddingPointBased, DiscardMaxPoints, nil); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("bad card strategy name: err = %v, want ErrUnknownStrategy", err)
	}
}
