package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/calvinwijaya/higher-lower-be/internal/game"
	"github.com/pterm/pterm"
)

var suitSymbols = map[game.Suit]string{
	game.Hearts:   "♥",
	game.Diamonds: "♦",
	game.Clubs:    "♣",
	game.Spades:   "♠",
}

func cardString(c *game.CardView) string {
	if c == nil {
		return "[   ]"
	}
	face := c.Label + suitSymbols[c.Suit]
	if c.Red {
		face = pterm.LightRed(face)
	}
	return "[" + face + "]"
}

func render(out io.Writer, view game.GameView) {
	next := cardString(view.NextCard)
	if view.NextCardHidden {
		next = pterm.Gray("[ ? ]")
	}

	pterm.Fprintln(out)
	pterm.Fprintln(out, fmt.Sprintf("Deck: %d cards remaining", view.CardsRemaining))
	pterm.Fprintln(out, fmt.Sprintf("Current card: %s  Next card: %s", cardString(view.CurrentCard), next))

	if len(view.PickedCards) > 0 {
		picked := make([]string, 0, len(view.PickedCards))
		for i := range view.PickedCards {
			picked = append(picked, cardString(&view.PickedCards[i]))
		}
		pterm.Fprintln(out, fmt.Sprintf("Your picked cards: %s", strings.Join(picked, " ")))
	}

	pterm.Fprintln(out, pterm.Bold.Sprint(fmt.Sprintf("Round: %d/%d", view.Round, view.TotalRounds)))

	switch view.Status {
	case game.Won:
		pterm.Fprintln(out, pterm.Green(view.Feedback))
	case game.Lost:
		pterm.Fprintln(out, pterm.Red(view.Feedback))
	default:
		if view.Feedback != "" {
			pterm.Fprintln(out, view.Feedback)
		}
	}
}

func prompt(out io.Writer, status game.GameStatus) {
	if status == game.Playing {
		pterm.Fprint(out, "(h)igher, (l)ower, (q)uit > ")
		return
	}
	pterm.Fprint(out, "(r) play again, (q)uit > ")
}

// play drives one terminal session until the player quits or input ends
func play(in io.Reader, out io.Writer, g *game.HigherLowerGame) {
	pterm.Fprintln(out, pterm.DefaultHeader.Sprint("Higher or Lower"))
	render(out, g.GetGameState())
	prompt(out, g.Status)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "q", "quit":
			pterm.Fprintln(out, "Bye!")
			return
		case "r", "reset", "again":
			g.Reset()
		case "h", "higher":
			g.Guess(game.Higher)
		case "l", "lower":
			g.Guess(game.Lower)
		case "":
			prompt(out, g.Status)
			continue
		default:
			pterm.Fprintln(out, "Unknown command")
			prompt(out, g.Status)
			continue
		}

		render(out, g.GetGameState())
		prompt(out, g.Status)
	}
}
