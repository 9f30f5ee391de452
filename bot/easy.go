package bot

import (
	"math/rand"

	"github.com/minaorangina/wizard/game"
)

// EasyBot bids and plays at random.
type EasyBot struct {
	rng *rand.Rand
}

func (b *EasyBot) Bid(s game.Snapshot, playerID string) (int, error) {
	if _, err := bidder(s, playerID); err != nil {
		return 0, err
	}
	return b.rng.Intn(s.Round + 1), nil
}

func (b *EasyBot) Play(s game.Snapshot, playerID string) (string, error) {
	_, legal, err := player(s, playerID)
	if err != nil {
		return "", err
	}
	return legal[b.rng.Intn(len(legal))].ID, nil
}
