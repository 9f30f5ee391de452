package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/minaorangina/wizard/deck"
)

const (
	minPlayers = 3
	maxPlayers = 6

	HumanID     = "human"
	botIDPrefix = "bot-"
)

// SeatConfig describes one seat at the table, in clockwise order.
type SeatConfig struct {
	Name  string
	Human bool
	Tier  Tier
}

// Config carries everything needed to start a game.
// Without Seats the human sits first and PlayerCount-1 bots follow,
// one Tier each from Tiers (Medium when the list runs short).
type Config struct {
	PlayerCount int
	HumanName   string
	Tiers       []Tier
	Seats       []SeatConfig

	// MaxRounds shortens the game. 0 plays the full game for the player count.
	MaxRounds int

	// Rand drives every shuffle. A seeded source makes the game reproducible.
	Rand *rand.Rand
}

// RoundsForPlayers is the full game length for n players, or 0 when n is out of range.
func RoundsForPlayers(n int) int {
	if n < minPlayers || n > maxPlayers {
		return 0
	}
	return deck.Size / n
}

func (c Config) seats() ([]SeatConfig, error) {
	if len(c.Seats) > 0 {
		if c.PlayerCount != 0 && c.PlayerCount != len(c.Seats) {
			return nil, fmt.Errorf("%w: %d seats for %d players", ErrInvalidConfig, len(c.Seats), c.PlayerCount)
		}
		humans := 0
		for _, s := range c.Seats {
			if s.Human {
				humans++
			}
		}
		if humans > 1 {
			return nil, fmt.Errorf("%w: at most one human seat", ErrInvalidConfig)
		}
		seats := make([]SeatConfig, len(c.Seats))
		copy(seats, c.Seats)
		return seats, nil
	}

	if c.PlayerCount < minPlayers {
		return nil, ErrTooFewPlayers
	}
	if c.PlayerCount > maxPlayers {
		return nil, ErrTooManyPlayers
	}
	if len(c.Tiers) > c.PlayerCount-1 {
		return nil, fmt.Errorf("%w: %d tiers for %d bots", ErrInvalidConfig, len(c.Tiers), c.PlayerCount-1)
	}

	seats := []SeatConfig{{Name: c.HumanName, Human: true}}
	for i := 1; i < c.PlayerCount; i++ {
		tier := Medium
		if i-1 < len(c.Tiers) {
			tier = c.Tiers[i-1]
		}
		seats = append(seats, SeatConfig{Tier: tier})
	}
	return seats, nil
}

func (c Config) players() ([]*Player, error) {
	seats, err := c.seats()
	if err != nil {
		return nil, err
	}
	if len(seats) < minPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(seats) > maxPlayers {
		return nil, ErrTooManyPlayers
	}

	players := make([]*Player, 0, len(seats))
	botNum := 0
	for _, s := range seats {
		if s.Tier < Easy || s.Tier > Hard {
			return nil, fmt.Errorf("%w: tier %d", ErrInvalidConfig, s.Tier)
		}
		name := strings.TrimSpace(s.Name)
		if s.Human {
			if name == "" {
				name = "You"
			}
			players = append(players, &Player{ID: HumanID, Name: name, Actor: Actor{Kind: Human}})
			continue
		}
		botNum++
		if name == "" {
			name = fmt.Sprintf("Bot %d", botNum)
		}
		players = append(players, &Player{
			ID:    fmt.Sprintf("%s%d", botIDPrefix, botNum),
			Name:  name,
			Actor: Actor{Kind: Automated, Tier: s.Tier},
		})
	}
	return players, nil
}
