package bot

import (
	"github.com/minaorangina/wizard/deck"
	"github.com/minaorangina/wizard/game"
)

// conservative shaves the hard bid so it tends to come in under.
const conservative = 0.9

// HardBot weighs its hand against the table size and plays to make its bid exactly.
type HardBot struct{}

func (b *HardBot) Bid(s game.Snapshot, playerID string) (int, error) {
	p, err := bidder(s, playerID)
	if err != nil {
		return 0, err
	}

	expected := float64(countKind(p.Hand, deck.HighSpecial))
	nums := numbered(p.Hand)

	if s.Trump != deck.NoSuit {
		for _, c := range nums {
			if c.Suit == s.Trump {
				expected += trumpWeight(c.Rank)
			}
		}
	}

	tableFactor := 3 / float64(len(s.Players))
	for _, suit := range deck.Suits {
		if suit == s.Trump {
			continue
		}
		top := 0
		for _, c := range nums {
			if c.Suit == suit && c.Rank > top {
				top = c.Rank
			}
		}
		expected += topCardWeight(top) * tableFactor
	}

	return clampBid(roundTricks(expected*conservative), s.Round), nil
}

func trumpWeight(rank int) float64 {
	switch {
	case rank >= 11:
		return 0.9
	case rank >= 8:
		return 0.7
	case rank >= 5:
		return 0.4
	}
	return 0.2
}

func topCardWeight(rank int) float64 {
	switch {
	case rank == deck.MaxRank:
		return 0.7
	case rank >= 11:
		return 0.5
	case rank >= 9:
		return 0.3
	}
	return 0
}

func (b *HardBot) Play(s game.Snapshot, playerID string) (string, error) {
	p, legal, err := player(s, playerID)
	if err != nil {
		return "", err
	}

	bid := 0
	if p.Bid != nil {
		bid = *p.Bid
	}
	needed := bid - p.TricksWon
	remaining := s.Round - len(s.CompletedTricks)
	mustLose := needed <= 0 && remaining <= abs(needed)

	if len(s.Plays()) == 0 {
		switch {
		case needed == 1:
			return highestCard(legal).ID, nil
		case mustLose:
			return lowestCard(legal).ID, nil
		}
		return mediumLead(legal).ID, nil
	}

	winning, losing := split(s, playerID, legal)
	switch {
	case needed > 0 && len(winning) > 0:
		return lowestCard(winning).ID, nil
	case mustLose && len(losing) > 0:
		return highestCard(losing).ID, nil
	}
	return mediumFollow(s, playerID, legal).ID, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
