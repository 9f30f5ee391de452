package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/wizard/deck"
	"github.com/minaorangina/wizard/game"
)

var (
	ErrCannotBid  = errors.New("player cannot bid now")
	ErrCannotPlay = errors.New("player cannot play now")
)

// Agent decides bids and plays for an automated player.
// It only reads the snapshot; the caller submits the decision to the engine.
type Agent interface {
	Bid(s game.Snapshot, playerID string) (int, error)
	Play(s game.Snapshot, playerID string) (string, error)
}

// New returns the agent for a tier. A nil rng is seeded from the clock.
func New(tier game.Tier, rng *rand.Rand) Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch tier {
	case game.Easy:
		return &EasyBot{rng: rng}
	case game.Hard:
		return &HardBot{}
	default:
		return &MediumBot{}
	}
}

// bidder checks the player may bid and returns them.
func bidder(s game.Snapshot, playerID string) (game.Player, error) {
	if s.Phase != game.Bidding {
		return game.Player{}, fmt.Errorf("%w: game is %s", ErrCannotBid, s.Phase)
	}
	p, ok := s.Player(playerID)
	if !ok {
		return game.Player{}, fmt.Errorf("%w: %q", game.ErrUnknownPlayer, playerID)
	}
	return p, nil
}

// player checks the player may play and returns them with their legal cards.
func player(s game.Snapshot, playerID string) (game.Player, []deck.Card, error) {
	if s.Phase != game.Playing {
		return game.Player{}, nil, fmt.Errorf("%w: game is %s", ErrCannotPlay, s.Phase)
	}
	p, ok := s.Player(playerID)
	if !ok {
		return game.Player{}, nil, fmt.Errorf("%w: %q", game.ErrUnknownPlayer, playerID)
	}
	legal := game.LegalPlays(p.Hand, s.Plays())
	if len(legal) == 0 {
		return game.Player{}, nil, fmt.Errorf("%w: %s has no cards", ErrCannotPlay, playerID)
	}
	return p, legal, nil
}

func clampBid(bid, round int) int {
	if bid < 0 {
		return 0
	}
	if bid > round {
		return round
	}
	return bid
}
