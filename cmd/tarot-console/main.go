package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"tarot/internal/app"
	"tarot/internal/bot"
	"tarot/internal/domain"

	"github.com/pterm/pterm"
)

func main() {
	players := flag.Int("players", 4, "players at the table (3-5)")
	seed := flag.Int64("seed", 0, "rng seed, 0 for time-based")
	flag.Parse()

	if *players < 3 || *players > 5 {
		pterm.Error.Printf("invalid player count %d, must be 3-5\n", *players)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	pterm.DefaultHeader.WithFullWidth().Println("French Tarot")
	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("You").Show()

	// Human in seat 0, bots in the rest.
	seats := make([]string, *players)
	agents := make(map[string]*bot.Agent, *players-1)
	seats[0] = name
	for i := 1; i < *players; i++ {
		identity := bot.GetBotIdentity(i)
		seats[i] = identity.DisplayName
		identity.UserID = identity.DisplayName
		agent, err := bot.AgentFor(identity)
		if err != nil {
			pterm.Error.Printf("failed to build bot: %v\n", err)
			os.Exit(1)
		}
		agents[identity.DisplayName] = agent
	}

	svc := app.NewService(rng)
	totals := make(map[string]int)

	for round := 1; ; round++ {
		pterm.DefaultSection.Printf("Round %d", round)
		scores, err := playRound(svc, seats, agents, name, round)
		if err != nil {
			pterm.Error.Printf("round failed: %v\n", err)
			os.Exit(1)
		}
		for id, s := range scores {
			totals[id] += s
		}
		printScores("Totals", totals)

		again, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Play another round?").
			WithOptions([]string{"yes", "no"}).
			Show()
		if again != "yes" {
			break
		}
	}
}

func playRound(svc *app.Service, seats []string, agents map[string]*bot.Agent, human string, round int) (map[string]int, error) {
	game, _, err := svc.StartRound(seats)
	if err != nil {
		return nil, err
	}

	// Bidding, redealing the hands while everyone passes. The opener
	// moves one seat on every redeal.
	startingSeat := (round - 1) % len(seats)
	for {
		if hasTaker, err := runBidding(svc, game, agents, human, startingSeat); err != nil {
			return nil, err
		} else if hasTaker {
			break
		}
		pterm.Info.Println("Everyone passed, redealing.")
		if _, err := svc.RedealVoidedRound(game); err != nil {
			return nil, err
		}
		startingSeat = (startingSeat + 1) % len(seats)
	}

	takerID := game.BiddingRound.TakerID()
	pterm.Success.Printf("%s takes with %s\n", takerID, game.BiddingRound.ContractType().DisplayName())

	if err := runDogPhase(svc, game, agents, human, takerID); err != nil {
		return nil, err
	}

	contract, _, err := svc.FinalizeContract(game)
	if err != nil {
		return nil, err
	}
	pterm.Info.Printf("%s holds %d oudler(s) and needs %d points\n", takerID, contract.Oudlers, contract.PointsNeeded)

	if err := runTricks(svc, game, agents, human); err != nil {
		return nil, err
	}

	scores, _, err := svc.SettleScores(game)
	if err != nil {
		return nil, err
	}

	if contract.Success {
		pterm.Success.Printf("Contract made: %.1f points against %d needed\n", contract.Achieved, contract.PointsNeeded)
	} else {
		pterm.Warning.Printf("Contract lost: %.1f points against %d needed\n", contract.Achieved, contract.PointsNeeded)
	}
	printScores("Round scores", scores)
	return scores, nil
}

func runBidding(svc *app.Service, game *domain.GameState, agents map[string]*bot.Agent, human string, startingSeat int) (bool, error) {
	round := svc.OpenBidding(game, startingSeat)

	for {
		bidderID, ok := round.NextBidder()
		if !ok {
			break
		}

		var chosen domain.BidType
		if bidderID == human {
			showHand(game.PlayerByID(human).Hand)
			chosen = askBid(round.ContractType())
		} else {
			player := game.PlayerByID(bidderID)
			chosen = agents[bidderID].Bid(player.Hand, round.ContractType())
		}

		if _, _, err := svc.PlaceBid(game, bidderID, chosen); err != nil {
			return false, err
		}
		if chosen == domain.BidPass {
			pterm.Printf("%s passes\n", bidderID)
		} else {
			pterm.Printf("%s bids %s\n", pterm.LightCyan(bidderID), pterm.LightYellow(chosen.DisplayName()))
		}
	}
	return round.HasTaker(), nil
}

func askBid(currentHighest domain.BidType) domain.BidType {
	options := []string{"Pass"}
	byName := map[string]domain.BidType{"Pass": domain.BidPass}
	for _, b := range []domain.BidType{domain.BidPetite, domain.BidGarde, domain.BidGardeSans, domain.BidGardeContre} {
		if b > currentHighest {
			options = append(options, b.DisplayName())
			byName[b.DisplayName()] = b
		}
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Your bid").
		WithOptions(options).
		Show()
	return byName[choice]
}

func runDogPhase(svc *app.Service, game *domain.GameState, agents map[string]*bot.Agent, human, takerID string) error {
	if takerID != human {
		_, err := svc.RunDogPhase(game, takerID, agents[takerID].Discard)
		if err == nil {
			pterm.Printf("%s exchanges with the dog (%d cards)\n", takerID, len(game.Dog))
		}
		return err
	}

	dogSize := len(game.Dog)
	pterm.Info.Printf("The dog: %s\n", cardList(game.Dog))
	if _, err := svc.RevealDog(game, human); err != nil {
		return err
	}

	hand := game.PlayerByID(human).Hand
	for {
		options := make([]string, 0, len(hand))
		byName := make(map[string]domain.Card, len(hand))
		for _, c := range sortedCards(hand) {
			if domain.CanDiscard(c) {
				options = append(options, c.String())
				byName[c.String()] = c
			}
		}

		picked, _ := pterm.DefaultInteractiveMultiselect.
			WithDefaultText(fmt.Sprintf("Discard exactly %d cards (kings, trumps and the Excuse stay)", dogSize)).
			WithOptions(options).
			Show()
		if len(picked) != dogSize {
			pterm.Warning.Printf("Pick %d cards, you picked %d.\n", dogSize, len(picked))
			continue
		}

		discard := make([]domain.Card, 0, dogSize)
		for _, name := range picked {
			discard = append(discard, byName[name])
		}
		if _, err := svc.DiscardDog(game, human, discard); err != nil {
			pterm.Warning.Printf("Discard rejected: %v\n", err)
			continue
		}
		return nil
	}
}

func runTricks(svc *app.Service, game *domain.GameState, agents map[string]*bot.Agent, human string) error {
	for !game.IsGameOver() {
		current := game.CurrentPlayer()

		var events []app.Event
		var err error
		if current.ID == human {
			card := askCard(game, human)
			events, err = svc.PlayCard(game, game.CurrentPlayerIdx, card)
		} else {
			events, err = svc.PlayAgentCard(game, agents)
		}
		if err != nil {
			return err
		}

		for _, ev := range events {
			switch p := ev.Payload.(type) {
			case app.CardPlayedPayload:
				pterm.Printf("%s plays %s\n", p.PlayerID, pterm.LightGreen(p.Card))
			case app.TrickWonPayload:
				pterm.Info.Printf("%s wins the trick (%s)\n", p.WinnerID, cardList(p.Cards))
			}
		}
	}
	return nil
}

func askCard(game *domain.GameState, human string) domain.Card {
	hand := game.PlayerByID(human).Hand
	legal := game.CurrentTrick.LegalMoves(hand)

	if !game.CurrentTrick.IsEmpty() {
		pterm.Printf("On the table: %s\n", cardList(game.CurrentTrick.Cards()))
	}
	showHand(hand)

	options := make([]string, 0, len(legal))
	byName := make(map[string]domain.Card, len(legal))
	for _, c := range sortedCards(legal) {
		options = append(options, c.String())
		byName[c.String()] = c
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Your card").
		WithOptions(options).
		WithMaxHeight(12).
		Show()
	return byName[choice]
}

func showHand(hand []domain.Card) {
	pterm.Printf("Your hand: %s\n", cardList(sortedCards(hand)))
}

func sortedCards(cards []domain.Card) []domain.Card {
	out := append([]domain.Card(nil), cards...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func cardList(cards []domain.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s
}

func printScores(title string, scores map[string]int) {
	data := pterm.TableData{{"Player", "Score"}}
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		data = append(data, []string{id, fmt.Sprintf("%+d", scores[id])})
	}
	pterm.DefaultSection.Println(title)
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Printf("failed to render %s: %v\n", title, err)
	}
}
