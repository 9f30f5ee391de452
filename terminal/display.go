package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/wizard/deck"
	"github.com/minaorangina/wizard/game"
)

const (
	welcomeText       = "Welcome to Wizard, %s!\nRounds: %d. Opponents: %d.\n"
	pregameText       = "\nEveryone draws a card to decide who goes first:\n"
	firstPlayerText   = "%s goes first.\n"
	continueText      = "\nPress enter to continue... "
	roundText         = "\n=== Round %d of %d ===\n"
	bidPromptText     = "How many tricks will you win? [0-%d] "
	playPromptText    = "Choose a card to play [1-%d]: "
	retryNumberText   = "Please enter a number.\n"
	trickWinnerText   = "\n%s wins the trick.\n"
	finalScoresText   = "\n=== Final scores ===\n"
	winnersText       = "\nThe winner is %s!\n"
	jointWinnersText  = "\nIt's a tie between %s!\n"
	cannotPlaySuffix  = " (can't play)"
	noTrumpText       = "No trump this round"
	trumpText         = "Trump: %s (turned up %s)"
	noTrumpCardText   = "No trump this round (no cards left to turn up)"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func nameOf(s game.Snapshot, playerID string) string {
	if p, ok := s.Player(playerID); ok {
		return p.Name
	}
	return playerID
}

func buildPregameText(s game.Snapshot) string {
	text := pregameText
	for _, p := range s.Players {
		for _, c := range s.PregameCards[p.ID] {
			text += fmt.Sprintf("- %s drew %s\n", p.Name, c)
		}
	}
	return text + fmt.Sprintf(firstPlayerText, nameOf(s, s.TurnOrderWinner))
}

func buildTrumpText(s game.Snapshot) string {
	if s.TrumpCard == nil {
		return noTrumpCardText
	}
	if s.Trump == deck.NoSuit {
		return fmt.Sprintf("%s (turned up %s)", noTrumpText, s.TrumpCard)
	}
	return fmt.Sprintf(trumpText, title(s.Trump.String()), s.TrumpCard)
}

// buildHandText numbers the cards in hand, flagging those that can't be played.
// legal is nil while bidding.
func buildHandText(hand []deck.Card, legal []string) string {
	allowed := map[string]bool{}
	for _, id := range legal {
		allowed[id] = true
	}

	text := "Your hand:\n"
	for i, c := range hand {
		line := fmt.Sprintf("%d - %s", i+1, c)
		if legal != nil && !allowed[c.ID] {
			line += cannotPlaySuffix
		}
		text += line + "\n"
	}
	return text
}

func buildBidsText(s game.Snapshot) string {
	if len(s.Bids) == 0 {
		return ""
	}
	text := "Bids so far:\n"
	for _, p := range s.Players {
		if bid, ok := s.Bids[p.ID]; ok {
			text += fmt.Sprintf("- %s: %d\n", p.Name, bid)
		}
	}
	return text
}

func buildTrickText(s game.Snapshot, plays []game.Play) string {
	if len(plays) == 0 {
		return "You lead this trick.\n"
	}
	text := "On the table:\n"
	for _, p := range plays {
		text += fmt.Sprintf("- %s played %s\n", nameOf(s, p.PlayerID), p.Card)
	}
	return text
}

func buildRoundSummaryText(s game.Snapshot, h game.RoundHistory) string {
	text := fmt.Sprintf("\nRound %d results:\n", h.Round)
	for _, p := range s.Players {
		text += fmt.Sprintf("- %s bid %d, won %d: %+d (total %d)\n",
			p.Name, h.Bids[p.ID], h.TricksWon[p.ID], h.ScoreDeltas[p.ID], p.Score)
	}
	return text
}

func buildScoresText(s game.Snapshot) string {
	text := finalScoresText
	for _, p := range s.Players {
		text += fmt.Sprintf("- %s: %d\n", p.Name, p.Score)
	}
	return text
}

func buildWinnersText(s game.Snapshot, winners []string) string {
	names := make([]string, 0, len(winners))
	for _, id := range winners {
		names = append(names, nameOf(s, id))
	}
	if len(names) == 1 {
		return fmt.Sprintf(winnersText, names[0])
	}
	return fmt.Sprintf(jointWinnersText, strings.Join(names, " and "))
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
