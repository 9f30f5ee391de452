package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/minaorangina/wizard/bot"
	"github.com/minaorangina/wizard/game"
)

var ErrBotFailed = errors.New("automated player failed to act")

// Session is the single handle on a running game. It serialises every call
// into the engine and plays the automated seats when asked to advance.
type Session struct {
	mu     sync.Mutex
	engine *game.Engine
	agents map[string]bot.Agent
	human  string
	logger *zap.Logger
}

// New starts a game and gives each automated seat an agent of its tier.
// Agents share cfg.Rand, so a seeded config replays the same game.
func New(cfg game.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine, err := game.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	s := &Session{
		engine: engine,
		agents: map[string]bot.Agent{},
		logger: logger.With(zap.String("game", engine.ID())),
	}
	for _, p := range engine.State().Players {
		if p.Actor.IsHuman() {
			s.human = p.ID
			continue
		}
		s.agents[p.ID] = bot.New(p.Actor.Tier, agentRand(cfg.Rand))
	}

	state := engine.State()
	s.logger.Info("game created",
		zap.Int("players", len(state.Players)),
		zap.Int("maxRounds", state.MaxRounds),
	)
	return s, nil
}

func agentRand(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return nil
	}
	return rand.New(rand.NewSource(rng.Int63()))
}

func (s *Session) ID() string {
	return s.engine.ID()
}

// HumanID is the ID of the human seat, or "" when every seat is automated.
func (s *Session) HumanID() string {
	return s.human
}

func (s *Session) State() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

func (s *Session) BeginRound() (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.engine.BeginRound()
	if err != nil {
		return snap, err
	}
	s.logger.Info("turn order decided", zap.String("first", snap.TurnOrderWinner))
	return snap, nil
}

func (s *Session) AdvancePregame() (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.engine.AdvancePastPregameResult()
	if err != nil {
		return snap, err
	}
	s.logRoundDealt(snap)
	return snap, nil
}

func (s *Session) AdvanceTrick() (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round := s.engine.State().Round
	snap, err := s.engine.AdvancePastTrickComplete()
	if err != nil {
		return snap, err
	}
	switch {
	case snap.Phase == game.Finished:
		s.logRoundScored(snap)
		s.logger.Info("game finished")
	case snap.Round != round:
		s.logRoundScored(snap)
		s.logRoundDealt(snap)
	}
	return snap, nil
}

// Bid submits a bid on behalf of the human.
func (s *Session) Bid(playerID string, amount int) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.engine.SubmitBid(playerID, amount)
	if err != nil {
		s.logger.Debug("bid rejected", zap.String("player", playerID), zap.Int("bid", amount), zap.Error(err))
		return snap, err
	}
	s.logger.Debug("bid", zap.String("player", playerID), zap.Int("bid", amount))
	return snap, nil
}

// Play submits a card on behalf of the human.
func (s *Session) Play(playerID, cardID string) (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.engine.SubmitPlay(playerID, cardID)
	if err != nil {
		s.logger.Debug("play rejected", zap.String("player", playerID), zap.String("card", cardID), zap.Error(err))
		return snap, err
	}
	s.logPlay(playerID, cardID, snap)
	return snap, nil
}

func (s *Session) LegalPlays(playerID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LegalPlaysFor(playerID)
}

func (s *Session) IsCurrentActor(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.IsCurrentActor(playerID)
}

func (s *Session) Winners() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Winners()
}

// Advance lets the automated seats act until the human must act or the game
// reaches a pause: the pregame result, a completed trick, or the end.
func (s *Session) Advance() (game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		snap := s.engine.State()
		p, ok := snap.CurrentPlayer()
		if !ok || p.Actor.IsHuman() {
			return snap, nil
		}
		if err := s.act(snap, p); err != nil {
			return s.engine.State(), err
		}
	}
}

func (s *Session) act(snap game.Snapshot, p game.Player) error {
	agent, ok := s.agents[p.ID]
	if !ok {
		return fmt.Errorf("%w: no agent for %s", ErrBotFailed, p.ID)
	}

	switch snap.Phase {
	case game.Bidding:
		amount, err := agent.Bid(snap, p.ID)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBotFailed, p.ID, err)
		}
		if _, err := s.engine.SubmitBid(p.ID, amount); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBotFailed, p.ID, err)
		}
		s.logger.Debug("bot bid", zap.String("player", p.ID), zap.Stringer("tier", p.Actor.Tier), zap.Int("bid", amount))

	case game.Playing:
		cardID, err := agent.Play(snap, p.ID)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBotFailed, p.ID, err)
		}
		next, err := s.engine.SubmitPlay(p.ID, cardID)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBotFailed, p.ID, err)
		}
		s.logPlay(p.ID, cardID, next)
	}
	return nil
}

func (s *Session) logPlay(playerID, cardID string, snap game.Snapshot) {
	s.logger.Debug("card played", zap.String("player", playerID), zap.String("card", cardID))
	if snap.Phase != game.TrickComplete {
		return
	}
	if last, ok := snap.LastTrick(); ok {
		s.logger.Info("trick won",
			zap.Int("round", snap.Round),
			zap.Int("trick", last.Number),
			zap.String("winner", last.Winner),
		)
	}
}

func (s *Session) logRoundDealt(snap game.Snapshot) {
	fields := []zap.Field{zap.Int("round", snap.Round), zap.Stringer("trump", snap.Trump)}
	if snap.TrumpCard != nil {
		fields = append(fields, zap.String("trumpCard", snap.TrumpCard.ID))
	}
	s.logger.Info("round dealt", fields...)
}

func (s *Session) logRoundScored(snap game.Snapshot) {
	if len(snap.History) == 0 {
		return
	}
	h := snap.History[len(snap.History)-1]
	s.logger.Info("round scored", zap.Int("round", h.Round), zap.Any("deltas", h.ScoreDeltas))
}
