package network

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 256
)

// Client is one connected player seen from the server. Its fields other than
// send are owned by the hub goroutine.
type Client struct {
	id     string
	remote string
	conn   *websocket.Conn
	hub    *Hub

	// send is drained by writeLoop. Deliver never blocks on it.
	send    chan Message
	limiter *rate.Limiter
	closed  bool
}

func newClient(conn *websocket.Conn, hub *Hub, limit rate.Limit, burst int) *Client {
	return &Client{
		id:      uuid.NewString(),
		remote:  conn.RemoteAddr().String(),
		conn:    conn,
		hub:     hub,
		send:    make(chan Message, sendBuffer),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// ID is the opaque connection identifier handed to the game layer.
func (c *Client) ID() string { return c.id }

func (c *Client) RemoteAddr() string { return c.remote }

// Deliver queues msg for writing. A full queue or a closed client drops the
// message and reports false.
func (c *Client) Deliver(msg Message) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		log.Warn().Str("conn", c.id).Str("type", msg.Type).Msg("send queue full, dropping message")
		return false
	}
}

// close is called by the hub exactly once, after which writeLoop says goodbye.
func (c *Client) close() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("conn", c.id).Str("remote", c.remote).Msg("unexpected close")
			}
			return
		}
		if !c.limiter.Allow() {
			log.Debug().Str("conn", c.id).Msg("rate limited, dropping message")
			continue
		}

		// A frame that is not an envelope is forwarded with an empty type so
		// the handler can answer it like any unknown request.
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("conn", c.id).Msg("malformed frame")
			msg = Message{}
		}
		if !c.hub.submit(c, msg) {
			return
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Str("conn", c.id).Msg("write failed")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
