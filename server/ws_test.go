package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/wizard/game"
	"github.com/minaorangina/wizard/protocol"
)

func TestWebsocketRound(t *testing.T) {
	server, _ := newTestServer()
	created := createGame(t, server, NewGameReq{Name: "Elton", Players: 3, Tiers: []string{"easy", "medium"}, Seed: 42})

	httpServer := httptest.NewServer(server)
	defer httpServer.Close()

	ws := mustDialWS(t, wsURL(httpServer, created.GameID))
	defer ws.Close()

	t.Log("Given a freshly connected client")
	greeting := receive(t, ws)
	assert.Equal(t, protocol.State, greeting.Command)
	require.NotNil(t, greeting.State)
	assert.Equal(t, game.Setup, greeting.State.Phase)

	t.Log("When the round begins")
	msg := roundTrip(t, ws, protocol.InboundMessage{Command: protocol.BeginRound})
	require.Equal(t, protocol.BeginRound, msg.Command, msg.Error)
	assert.Equal(t, game.PregameResult, msg.State.Phase)
	assert.NotEmpty(t, msg.State.TurnOrderWinner)

	t.Log("Then the bots bid until it is the human's turn")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.AdvancePregame})
	require.Equal(t, protocol.AdvancePregame, msg.Command, msg.Error)
	assert.Equal(t, game.Bidding, msg.State.Phase)
	current, ok := msg.State.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, game.HumanID, current.ID)

	t.Log("And a bid out of range is refused")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.Bid, Amount: 2})
	assert.Equal(t, protocol.Error, msg.Command)
	assert.Equal(t, "BidOutOfRange", msg.ErrorKind)

	t.Log("When the human bids")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.Bid, PlayerID: game.HumanID, Amount: 0})
	require.Equal(t, protocol.Bid, msg.Command, msg.Error)
	assert.Equal(t, game.Playing, msg.State.Phase)
	assert.True(t, msg.State.BiddingComplete)
	current, ok = msg.State.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, game.HumanID, current.ID)

	t.Log("Then the human's only card is legal")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.LegalPlays})
	require.Equal(t, protocol.LegalPlays, msg.Command, msg.Error)
	require.Len(t, msg.CardIDs, 1)

	t.Log("When it is played the trick completes")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.Play, CardID: msg.CardIDs[0]})
	require.Equal(t, protocol.Play, msg.Command, msg.Error)
	assert.Equal(t, game.TrickComplete, msg.State.Phase)
	require.Len(t, msg.State.CompletedTricks, 1)

	t.Log("And advancing moves on to round two")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.AdvanceTrick})
	require.Equal(t, protocol.AdvanceTrick, msg.Command, msg.Error)
	assert.Equal(t, 2, msg.State.Round)
	assert.Equal(t, game.Bidding, msg.State.Phase)
	require.Len(t, msg.State.History, 1)

	t.Log("And the game has no winners yet")
	msg = roundTrip(t, ws, protocol.InboundMessage{Command: protocol.Winners})
	assert.Equal(t, protocol.Error, msg.Command)
	assert.Equal(t, "InvalidPhase", msg.ErrorKind)
}

func TestWebsocketErrors(t *testing.T) {
	server, _ := newTestServer()
	created := createGame(t, server, NewGameReq{Players: 3})

	httpServer := httptest.NewServer(server)
	defer httpServer.Close()

	t.Run("unknown game is 404", func(t *testing.T) {
		_, response, err := websocket.DefaultDialer.Dial(wsURL(httpServer, "nope"), nil)
		require.Error(t, err)
		require.NotNil(t, response)
		assert.Equal(t, http.StatusNotFound, response.StatusCode)
	})

	ws := mustDialWS(t, wsURL(httpServer, created.GameID))
	defer ws.Close()
	receive(t, ws)

	t.Run("garbage is reported, not fatal", func(t *testing.T) {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"command":"Shuffle"}`)))
		msg := receive(t, ws)
		assert.Equal(t, protocol.Error, msg.Command)
		assert.Contains(t, msg.Error, "could not parse message")
	})

	t.Run("commands out of phase", func(t *testing.T) {
		msg := roundTrip(t, ws, protocol.InboundMessage{Command: protocol.AdvanceTrick})
		assert.Equal(t, "InvalidPhase", msg.ErrorKind)
	})

	t.Run("bots cannot be driven from the socket", func(t *testing.T) {
		msg := roundTrip(t, ws, protocol.InboundMessage{Command: protocol.Bid, PlayerID: "bot-1"})
		assert.Equal(t, "NotCurrentActor", msg.ErrorKind)
	})

	t.Run("connection still serves state", func(t *testing.T) {
		msg := roundTrip(t, ws, protocol.InboundMessage{Command: protocol.State})
		require.NotNil(t, msg.State)
		assert.Equal(t, game.Setup, msg.State.Phase)
	})
}
