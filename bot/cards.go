package bot

import (
	"math"
	"sort"

	"github.com/minaorangina/wizard/deck"
	"github.com/minaorangina/wizard/game"
)

// value ranks cards for keeping or spending: wizards highest, jesters lowest.
func value(c deck.Card) int {
	switch c.Kind {
	case deck.HighSpecial:
		return deck.MaxRank + 1
	case deck.LowSpecial:
		return 0
	}
	return c.Rank
}

func highestCard(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if value(c) > value(best) {
			best = c
		}
	}
	return best
}

func lowestCard(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if value(c) < value(best) {
			best = c
		}
	}
	return best
}

func numbered(cards []deck.Card) []deck.Card {
	out := []deck.Card{}
	for _, c := range cards {
		if c.Kind == deck.Numbered {
			out = append(out, c)
		}
	}
	return out
}

// byRank returns a copy sorted by ascending rank, keeping hand order on ties.
func byRank(cards []deck.Card) []deck.Card {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

func countKind(cards []deck.Card, kind deck.Kind) int {
	n := 0
	for _, c := range cards {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// wouldWin reports whether playing c now would put the player on top of the trick.
func wouldWin(s game.Snapshot, playerID string, c deck.Card) bool {
	current := s.Plays()
	plays := make([]game.Play, 0, len(current)+1)
	plays = append(plays, current...)
	plays = append(plays, game.Play{PlayerID: playerID, Card: c, Order: len(current)})

	winner, err := game.ResolveWinner(plays, s.CurrentTrick.Trump)
	return err == nil && winner == playerID
}

func split(s game.Snapshot, playerID string, cards []deck.Card) (winning, losing []deck.Card) {
	for _, c := range cards {
		if wouldWin(s, playerID, c) {
			winning = append(winning, c)
		} else {
			losing = append(losing, c)
		}
	}
	return winning, losing
}

// roundTricks rounds half up and never goes below zero.
func roundTricks(expected float64) int {
	return int(math.Max(0, math.Floor(expected+0.5)))
}
