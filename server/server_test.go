package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/wizard/game"
	utils "github.com/minaorangina/wizard/internal"
)

func TestServerPOSTNewGame(t *testing.T) {
	t.Run("succeeds and returns expected data", func(t *testing.T) {
		server, gameStore := newTestServer()

		got := createGame(t, server, NewGameReq{Name: "Elton", Players: 3, Tiers: []string{"easy", "hard"}})

		assert.NotEmpty(t, got.GameID)
		assert.Equal(t, game.HumanID, got.PlayerID)
		assert.Equal(t, "Elton", got.Name)
		assert.Equal(t, []string{"Elton", "Bot 1", "Bot 2"}, got.Players)

		sess, err := gameStore.FindGame(got.GameID)
		require.NoError(t, err)
		state := sess.State()
		utils.AssertEqual(t, state.Phase, game.Setup)
		utils.AssertEqual(t, state.Players[1].Actor.Tier, game.Easy)
		utils.AssertEqual(t, state.Players[2].Actor.Tier, game.Hard)
	})

	t.Run("falls back to the configured table", func(t *testing.T) {
		server, gameStore := newTestServer()

		got := createGame(t, server, NewGameReq{})

		sess, err := gameStore.FindGame(got.GameID)
		require.NoError(t, err)
		state := sess.State()
		assert.Len(t, state.Players, 4)
		assert.Equal(t, 15, state.MaxRounds)
		assert.Equal(t, "You", got.Name)
		for _, p := range state.Players[1:] {
			assert.Equal(t, game.Medium, p.Actor.Tier)
		}
	})

	t.Run("honours max rounds", func(t *testing.T) {
		server, gameStore := newTestServer()

		got := createGame(t, server, NewGameReq{Players: 5, MaxRounds: 2})

		sess, err := gameStore.FindGame(got.GameID)
		require.NoError(t, err)
		assert.Equal(t, 2, sess.State().MaxRounds)
	})

	t.Run("returns 400 if the body is missing", func(t *testing.T) {
		server, _ := newTestServer()
		response := httptest.NewRecorder()

		server.ServeHTTP(response, newCreateGameRequest([]byte{}))

		assertStatus(t, response.Code, http.StatusBadRequest)
		assert.Equal(t, "Missing body", response.Body.String())
	})

	t.Run("returns 400 for an impossible table", func(t *testing.T) {
		tt := []NewGameReq{
			{Players: 2},
			{Players: 7},
			{Players: 3, Tiers: []string{"easy", "easy", "easy"}},
			{Tiers: []string{"grandmaster"}},
		}
		for _, req := range tt {
			server, gameStore := newTestServer()
			response := httptest.NewRecorder()

			server.ServeHTTP(response, newCreateGameRequest(mustMakeJson(t, req)))

			assertStatus(t, response.Code, http.StatusBadRequest)
			assert.Empty(t, gameStore.GameIDs())
		}
	})

	t.Run("does not match on GET /games", func(t *testing.T) {
		server, _ := newTestServer()
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/games", nil)

		server.ServeHTTP(response, request)

		utils.AssertTrue(t, response.Code == http.StatusNotFound || response.Code == http.StatusMethodNotAllowed)
	})
}

func TestServerGETGame(t *testing.T) {
	t.Run("returns the game state", func(t *testing.T) {
		server, _ := newTestServer()
		created := createGame(t, server, NewGameReq{Name: "Elton"})

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/games/"+created.GameID, nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusOK)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))

		var state game.Snapshot
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &state))
		assert.Equal(t, created.GameID, state.GameID)
		assert.Equal(t, game.Setup, state.Phase)
		assert.Equal(t, "Elton", state.Players[0].Name)
	})

	t.Run("returns 404 for an unknown game", func(t *testing.T) {
		server, _ := newTestServer()

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/games/nope", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
		assert.Contains(t, response.Body.String(), "unknown game ID 'nope'")
	})
}

func TestServerCORS(t *testing.T) {
	server, _ := newTestServer()

	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/games/nope", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	server.ServeHTTP(response, request)

	assert.Equal(t, "*", response.Header().Get("Access-Control-Allow-Origin"))
}

func TestCheckOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	server := NewServer(nil, cfg, nil)

	request, _ := http.NewRequest(http.MethodGet, "/games/x/ws", nil)
	assert.True(t, server.checkOrigin(request), "no origin header")

	request.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, server.checkOrigin(request))

	request.Header.Set("Origin", "http://evil.example")
	assert.False(t, server.checkOrigin(request))
}
