package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/wizard/config"
	"github.com/minaorangina/wizard/game"
	"github.com/minaorangina/wizard/protocol"
	"github.com/minaorangina/wizard/store"
)

func testConfig() config.Config {
	return config.Config{
		Port:           8000,
		Players:        4,
		BotTier:        game.Medium,
		HumanName:      "You",
		Seed:           7,
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
	}
}

func newTestServer() (*GameServer, *store.InMemoryGameStore) {
	s := store.NewInMemoryGameStore()
	return NewServer(s, testConfig(), nil), s
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	require.NoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/games", bytes.NewBuffer(data))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodeNewGameResponse(t *testing.T, body *bytes.Buffer) NewGameRes {
	t.Helper()

	var got NewGameRes
	require.NoError(t, json.Unmarshal(body.Bytes(), &got), "could not unmarshal json")
	return got
}

// createGame posts req to s and returns the new game's details.
func createGame(t *testing.T, s http.Handler, req NewGameReq) NewGameRes {
	t.Helper()

	response := httptest.NewRecorder()
	s.ServeHTTP(response, newCreateGameRequest(mustMakeJson(t, req)))
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	return decodeNewGameResponse(t, response.Body)
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "could not open ws connection on %s", url)

	return ws
}

func wsURL(server *httptest.Server, gameID string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/games/" + gameID + "/ws"
}

func send(t *testing.T, ws *websocket.Conn, msg protocol.InboundMessage) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(msg))
}

func receive(t *testing.T, ws *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg protocol.OutboundMessage
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

// roundTrip sends msg and waits for the reply.
func roundTrip(t *testing.T, ws *websocket.Conn, msg protocol.InboundMessage) protocol.OutboundMessage {
	t.Helper()
	send(t, ws, msg)
	return receive(t, ws)
}
