package game

import "github.com/minaorangina/wizard/deck"

const (
	exactBidBonus   = 20
	pointsPerTrick  = 10
	pointsPerMissed = 10
)

// LegalPlays returns the cards in hand that may be played into the trick, in hand order.
// Players must follow the lead suit when they can. Specials are always playable.
func LegalPlays(hand []deck.Card, plays []Play) []deck.Card {
	legal := make([]deck.Card, 0, len(hand))
	if len(plays) == 0 {
		return append(legal, hand...)
	}

	lead := leadPlay(plays).Card
	if lead.IsSpecial() {
		return append(legal, hand...)
	}

	canFollow := false
	for _, c := range hand {
		if c.Kind == deck.Numbered && c.Suit == lead.Suit {
			canFollow = true
			break
		}
	}
	if !canFollow {
		return append(legal, hand...)
	}

	for _, c := range hand {
		if c.IsSpecial() || c.Suit == lead.Suit {
			legal = append(legal, c)
		}
	}
	return legal
}

// ScoreDelta is the change in score for a round: a bonus plus ten a trick for an
// exact bid, minus ten for every trick over or under.
func ScoreDelta(bid, won int) int {
	if bid == won {
		return exactBidBonus + pointsPerTrick*bid
	}
	diff := bid - won
	if diff < 0 {
		diff = -diff
	}
	return -pointsPerMissed * diff
}

func leadPlay(plays []Play) Play {
	lead := plays[0]
	for _, p := range plays[1:] {
		if p.Order < lead.Order {
			lead = p
		}
	}
	return lead
}
