package bot

import (
	"sort"

	"github.com/minaorangina/wizard/deck"
	"github.com/minaorangina/wizard/game"
)

const (
	mediumHighTrump    = 10
	mediumHighTrumpOdd = 0.8
	mediumHighOffSuit  = 12
	mediumHighOffOdd   = 0.4
)

// MediumBot counts likely winners when bidding, and wins tricks as cheaply as it can.
type MediumBot struct{}

func (b *MediumBot) Bid(s game.Snapshot, playerID string) (int, error) {
	p, err := bidder(s, playerID)
	if err != nil {
		return 0, err
	}

	expected := float64(countKind(p.Hand, deck.HighSpecial))
	for _, c := range numbered(p.Hand) {
		switch {
		case s.Trump != deck.NoSuit && c.Suit == s.Trump:
			if c.Rank >= mediumHighTrump {
				expected += mediumHighTrumpOdd
			}
		case c.Rank >= mediumHighOffSuit:
			expected += mediumHighOffOdd
		}
	}

	return clampBid(roundTricks(expected), s.Round), nil
}

func (b *MediumBot) Play(s game.Snapshot, playerID string) (string, error) {
	_, legal, err := player(s, playerID)
	if err != nil {
		return "", err
	}
	return mediumPlay(s, playerID, legal).ID, nil
}

func mediumPlay(s game.Snapshot, playerID string, legal []deck.Card) deck.Card {
	if len(s.Plays()) == 0 {
		return mediumLead(legal)
	}
	return mediumFollow(s, playerID, legal)
}

// mediumLead plays the middle of the numbered cards.
func mediumLead(legal []deck.Card) deck.Card {
	nums := byRank(numbered(legal))
	if len(nums) == 0 {
		return legal[0]
	}
	return nums[len(nums)/2]
}

// mediumFollow takes the trick with the cheapest winner, saving wizards for last,
// or else throws away the lowest numbered card.
func mediumFollow(s game.Snapshot, playerID string, legal []deck.Card) deck.Card {
	winning, _ := split(s, playerID, legal)
	if len(winning) > 0 {
		sort.SliceStable(winning, func(i, j int) bool {
			return followCost(winning[i]) < followCost(winning[j])
		})
		return winning[0]
	}

	if nums := byRank(numbered(legal)); len(nums) > 0 {
		return nums[0]
	}
	return legal[0]
}

func followCost(c deck.Card) int {
	if c.Kind == deck.HighSpecial {
		return deck.MaxRank + 1
	}
	return c.Rank
}
