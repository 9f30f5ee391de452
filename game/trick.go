package game

import (
	"sort"

	"github.com/minaorangina/wizard/deck"
)

// ResolveWinner returns the ID of the player who takes the trick.
//
// The first HighSpecial played wins outright. LowSpecials never win
// unless every play is one, in which case the first play takes it.
// A LowSpecial lead leaves the trick without a lead suit: the highest
// remaining rank wins, the earlier play on equal rank. Otherwise the
// highest trump wins, then the highest card of the lead suit.
func ResolveWinner(plays []Play, trump deck.Suit) (string, error) {
	if len(plays) == 0 {
		return "", ErrEmptyTrick
	}

	ordered := make([]Play, len(plays))
	copy(ordered, plays)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	for _, p := range ordered {
		if p.Card.Kind == deck.HighSpecial {
			return p.PlayerID, nil
		}
	}

	remaining := []Play{}
	for _, p := range ordered {
		if p.Card.Kind != deck.LowSpecial {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == 0 {
		return ordered[0].PlayerID, nil
	}

	if ordered[0].Card.Kind == deck.LowSpecial {
		return highest(remaining, func(deck.Card) bool { return true }).PlayerID, nil
	}

	if trump != deck.NoSuit {
		isTrump := func(c deck.Card) bool { return c.Suit == trump }
		if best := highest(remaining, isTrump); best != nil {
			return best.PlayerID, nil
		}
	}

	leadSuit := ordered[0].Card.Suit
	if best := highest(remaining, func(c deck.Card) bool { return c.Suit == leadSuit }); best != nil {
		return best.PlayerID, nil
	}

	return remaining[0].PlayerID, nil
}

// highest returns the highest-ranked matching play, the earliest on equal rank.
func highest(plays []Play, match func(deck.Card) bool) *Play {
	var best *Play
	for i := range plays {
		if !match(plays[i].Card) {
			continue
		}
		if best == nil || plays[i].Card.Rank > best.Card.Rank {
			best = &plays[i]
		}
	}
	return best
}
