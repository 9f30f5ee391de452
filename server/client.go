package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/minaorangina/wizard/game"
	"github.com/minaorangina/wizard/protocol"
	"github.com/minaorangina/wizard/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// client is one websocket connection to a session.
type client struct {
	conn    *websocket.Conn
	session *session.Session
	logger  *zap.Logger
	send    chan []byte
	done    chan struct{}
}

func newClient(conn *websocket.Conn, sess *session.Session, logger *zap.Logger) *client {
	return &client{
		conn:    conn,
		session: sess,
		logger:  logger,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
}

// run greets the client with the current state, then reads until the connection drops.
func (c *client) run() {
	go c.writePump()
	c.reply(protocol.StateMessage(protocol.State, c.session.State()))
	c.readPump()
}

func (c *client) readPump() {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket closed", zap.Error(err))
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(protocol.ErrorMessage(fmt.Errorf("could not parse message: %w", err)))
			continue
		}
		if !c.reply(dispatch(c.session, msg)) {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply queues msg for the write pump. It reports false once the pump has stopped.
func (c *client) reply(msg protocol.OutboundMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("encoding message", zap.Stringer("command", msg.Command), zap.Error(err))
		return true
	}
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	}
}

// dispatch applies one inbound command to the session. Commands that change
// the game let the bots catch up before the state is sent back.
func dispatch(sess *session.Session, msg protocol.InboundMessage) protocol.OutboundMessage {
	playerID := msg.PlayerID
	if playerID == "" {
		playerID = sess.HumanID()
	}

	var (
		snap game.Snapshot
		err  error
	)

	switch msg.Command {
	case protocol.State:
		return protocol.StateMessage(msg.Command, sess.State())

	case protocol.LegalPlays:
		cardIDs, err := sess.LegalPlays(playerID)
		if err != nil {
			return protocol.ErrorMessage(err)
		}
		return protocol.OutboundMessage{Command: msg.Command, CardIDs: cardIDs}

	case protocol.Winners:
		winners, err := sess.Winners()
		if err != nil {
			return protocol.ErrorMessage(err)
		}
		return protocol.OutboundMessage{Command: msg.Command, Winners: winners}

	case protocol.BeginRound:
		_, err = sess.BeginRound()
	case protocol.AdvancePregame:
		_, err = sess.AdvancePregame()
	case protocol.AdvanceTrick:
		_, err = sess.AdvanceTrick()

	case protocol.Bid, protocol.Play:
		if playerID != sess.HumanID() {
			return protocol.ErrorMessage(fmt.Errorf("%w: %s is not controlled by this connection", game.ErrNotCurrentActor, playerID))
		}
		if msg.Command == protocol.Bid {
			_, err = sess.Bid(playerID, msg.Amount)
		} else {
			_, err = sess.Play(playerID, msg.CardID)
		}

	default:
		return protocol.ErrorMessage(fmt.Errorf("unsupported command %s", msg.Command))
	}

	if err != nil {
		return protocol.ErrorMessage(err)
	}
	if snap, err = sess.Advance(); err != nil {
		return protocol.ErrorMessage(err)
	}
	return protocol.StateMessage(msg.Command, snap)
}
