package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/minaorangina/wizard/config"
	"github.com/minaorangina/wizard/game"
	"github.com/minaorangina/wizard/session"
	"github.com/minaorangina/wizard/store"
)

type NewGameReq struct {
	Name      string   `json:"name"`
	Players   int      `json:"players"`
	Tiers     []string `json:"tiers"`
	MaxRounds int      `json:"max_rounds"`
	Seed      int64    `json:"seed"`
}

type NewGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Players  []string `json:"players"`
}

// GameServer is the bridge between a browser UI and the games in its store.
// Each game has exactly one human; everyone else is a bot.
type GameServer struct {
	store    store.GameStore
	cfg      config.Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
	http.Server
}

// NewServer creates a new GameServer
func NewServer(gameStore store.GameStore, cfg config.Config, logger *zap.Logger) *GameServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &GameServer{
		store:  gameStore,
		cfg:    cfg,
		logger: logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := http.NewServeMux()
	router.HandleFunc("POST /games", s.HandleNewGame)
	router.HandleFunc("GET /games/{id}", s.HandleFindGame)
	router.HandleFunc("GET /games/{id}/ws", s.HandleWS)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	accessLog := zap.NewStdLog(logger.Named("http")).Writer()

	s.Addr = cfg.Addr()
	s.Handler = handlers.CombinedLoggingHandler(accessLog, cors(router))
	s.ReadHeaderTimeout = 10 * time.Second

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame creates a game for one human and the requested bots.
// Anything left out of the request falls back to the server's config.
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	cfg, err := g.gameConfig(data)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := session.New(cfg, g.logger)
	if err != nil {
		if game.ErrorKind(err) == "InvalidConfig" {
			writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		g.logger.Error("creating game", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddGame(sess); err != nil {
		g.logger.Error("storing game", zap.String("game", sess.ID()), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	state := sess.State()
	human, _ := state.Player(sess.HumanID())
	payload := NewGameRes{
		GameID:   sess.ID(),
		PlayerID: human.ID,
		Name:     human.Name,
	}
	for _, p := range state.Players {
		payload.Players = append(payload.Players, p.Name)
	}

	g.writeJSON(w, http.StatusCreated, payload)
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	sess, err := g.store.FindGame(gameID)
	if err != nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	g.writeJSON(w, http.StatusOK, sess.State())
}

// HandleWS upgrades to a websocket over which the UI drives the game.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	sess, err := g.store.FindGame(gameID)
	if err != nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.logger.Warn("websocket upgrade failed", zap.String("game", gameID), zap.Error(err))
		return
	}

	c := newClient(conn, sess, g.logger.With(zap.String("game", gameID)))
	c.run()
}

func (g *GameServer) gameConfig(data NewGameReq) (game.Config, error) {
	cfg := g.cfg.Game()
	if data.Players != 0 {
		cfg.PlayerCount = data.Players
		cfg.Tiers = cfg.Tiers[:0]
		for i := 1; i < data.Players; i++ {
			cfg.Tiers = append(cfg.Tiers, g.cfg.BotTier)
		}
	}
	if data.Name != "" {
		cfg.HumanName = data.Name
	}
	if len(data.Tiers) > 0 {
		cfg.Tiers = make([]game.Tier, 0, len(data.Tiers))
		for _, name := range data.Tiers {
			tier, err := game.ParseTier(name)
			if err != nil {
				return game.Config{}, err
			}
			cfg.Tiers = append(cfg.Tiers, tier)
		}
	}
	if data.MaxRounds != 0 {
		cfg.MaxRounds = data.MaxRounds
	}
	if data.Seed != 0 {
		c := g.cfg
		c.Seed = data.Seed
		cfg.Rand = c.Rand()
	}
	return cfg, nil
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (g *GameServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error("encoding response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func (g *GameServer) writeParseError(err error, w http.ResponseWriter) {
	if errors.Is(err, io.EOF) {
		writeText(w, http.StatusBadRequest, "Missing body")
		return
	}
	g.logger.Debug("bad request body", zap.Error(err))
	writeText(w, http.StatusBadRequest, fmt.Sprintf("could not parse body: %v", err))
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}
