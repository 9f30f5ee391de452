package session

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/minaorangina/wizard/bot"
	"github.com/minaorangina/wizard/game"
	utils "github.com/minaorangina/wizard/internal"
)

func newTestSession(t *testing.T, cfg game.Config) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(11))
	}
	s, err := New(cfg, zap.New(core))
	require.NoError(t, err)
	return s, logs
}

// playToEnd finishes the game, letting a medium agent stand in for the human.
func playToEnd(t *testing.T, s *Session) game.Snapshot {
	t.Helper()
	stand := bot.New(game.Medium, nil)

	snap, err := s.BeginRound()
	require.NoError(t, err)

	for snap.Phase != game.Finished {
		switch snap.Phase {
		case game.PregameResult:
			snap, err = s.AdvancePregame()
		case game.TrickComplete:
			snap, err = s.AdvanceTrick()
		case game.Bidding:
			require.Equal(t, s.HumanID(), snap.Players[snap.CurrentActor].ID, "advance stops on the human")
			amount, berr := stand.Bid(snap, s.HumanID())
			require.NoError(t, berr)
			_, err = s.Bid(s.HumanID(), amount)
		case game.Playing:
			require.Equal(t, s.HumanID(), snap.Players[snap.CurrentActor].ID, "advance stops on the human")
			card, perr := stand.Play(snap, s.HumanID())
			require.NoError(t, perr)
			_, err = s.Play(s.HumanID(), card)
		}
		require.NoError(t, err)

		snap, err = s.Advance()
		require.NoError(t, err)
	}
	return snap
}

func TestNew(t *testing.T) {
	t.Run("one agent per bot", func(t *testing.T) {
		s, logs := newTestSession(t, game.Config{PlayerCount: 4, Tiers: []game.Tier{game.Easy, game.Medium, game.Hard}})

		utils.AssertEqual(t, s.HumanID(), game.HumanID)
		assert.Len(t, s.agents, 3)
		assert.IsType(t, &bot.HardBot{}, s.agents["bot-3"])
		utils.AssertTrue(t, s.ID() != "")
		utils.AssertEqual(t, s.State().GameID, s.ID())
		utils.AssertEqual(t, logs.FilterMessage("game created").Len(), 1)
	})

	t.Run("passes config errors through", func(t *testing.T) {
		_, err := New(game.Config{PlayerCount: 9}, nil)
		assert.ErrorIs(t, err, game.ErrTooManyPlayers)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("does nothing before the game begins", func(t *testing.T) {
		s, _ := newTestSession(t, game.Config{PlayerCount: 3})
		snap, err := s.Advance()
		require.NoError(t, err)
		utils.AssertEqual(t, snap.Phase, game.Setup)
	})

	t.Run("stops at the pregame result", func(t *testing.T) {
		s, _ := newTestSession(t, game.Config{PlayerCount: 3})
		_, err := s.BeginRound()
		require.NoError(t, err)

		snap, err := s.Advance()
		require.NoError(t, err)
		utils.AssertEqual(t, snap.Phase, game.PregameResult)
	})

	t.Run("bots bid until the human is up", func(t *testing.T) {
		t.Log("Given a dealt round")
		s, logs := newTestSession(t, game.Config{PlayerCount: 5})
		_, err := s.BeginRound()
		require.NoError(t, err)
		_, err = s.AdvancePregame()
		require.NoError(t, err)

		t.Log("When the bots are advanced")
		snap, err := s.Advance()
		require.NoError(t, err)

		t.Log("Then the human must bid next")
		utils.AssertEqual(t, snap.Phase, game.Bidding)
		utils.AssertTrue(t, s.IsCurrentActor(s.HumanID()))

		t.Log("and every bot seated before the human has bid")
		first := snap.SeatOf(snap.TurnOrderWinner)
		humanSeat := snap.SeatOf(s.HumanID())
		bidders := (humanSeat - first + len(snap.Players)) % len(snap.Players)
		assert.Len(t, snap.Bids, bidders)
		utils.AssertEqual(t, logs.FilterMessage("bot bid").Len(), bidders)
	})

	t.Run("rejected human moves change nothing", func(t *testing.T) {
		s, _ := newTestSession(t, game.Config{PlayerCount: 3})
		_, err := s.BeginRound()
		require.NoError(t, err)
		_, err = s.AdvancePregame()
		require.NoError(t, err)
		before, err := s.Advance()
		require.NoError(t, err)

		_, err = s.Bid(s.HumanID(), 5)
		assert.ErrorIs(t, err, game.ErrBidOutOfRange)
		_, err = s.Play(s.HumanID(), "red-1")
		assert.ErrorIs(t, err, game.ErrInvalidPhase)
		assert.Equal(t, before, s.State())
	})
}

func TestWholeGame(t *testing.T) {
	for _, players := range []int{3, 4, 5, 6} {
		s, logs := newTestSession(t, game.Config{
			PlayerCount: players,
			Tiers:       []game.Tier{game.Hard, game.Easy, game.Medium, game.Hard, game.Easy}[:players-1],
			MaxRounds:   4,
			Rand:        rand.New(rand.NewSource(int64(players))),
		})

		snap := playToEnd(t, s)

		utils.AssertEqual(t, snap.Round, 4)
		assert.Len(t, snap.History, 4)
		utils.AssertEqual(t, logs.FilterMessage("round scored").Len(), 4)
		utils.AssertEqual(t, logs.FilterMessage("game finished").Len(), 1)

		winners, err := s.Winners()
		require.NoError(t, err)
		assert.NotEmpty(t, winners)
	}
}

func TestAllBotSession(t *testing.T) {
	s, _ := newTestSession(t, game.Config{
		Seats: []game.SeatConfig{{Tier: game.Easy}, {Tier: game.Medium}, {Tier: game.Hard}},
	})
	utils.AssertEqual(t, s.HumanID(), "")

	snap, err := s.BeginRound()
	require.NoError(t, err)
	for snap.Phase != game.Finished {
		switch snap.Phase {
		case game.PregameResult:
			_, err = s.AdvancePregame()
		case game.TrickComplete:
			_, err = s.AdvanceTrick()
		}
		require.NoError(t, err)
		snap, err = s.Advance()
		require.NoError(t, err)
	}
	assert.Len(t, snap.History, 20)
}

func TestConcurrentCallers(t *testing.T) {
	s, _ := newTestSession(t, game.Config{Seats: []game.SeatConfig{{Tier: game.Easy}, {Tier: game.Easy}, {Tier: game.Easy}}, MaxRounds: 2})
	_, err := s.BeginRound()
	require.NoError(t, err)

	utils.Within(t, 5*time.Second, func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					snap := s.State()
					switch snap.Phase {
					case game.PregameResult:
						_, _ = s.AdvancePregame()
					case game.TrickComplete:
						_, _ = s.AdvanceTrick()
					case game.Finished:
						return
					default:
						_, _ = s.Advance()
					}
				}
			}()
		}
		wg.Wait()
	})

	utils.AssertEqual(t, s.State().Phase, game.Finished)
}
