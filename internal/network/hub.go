package network

import (
	"context"
	"errors"
	"time"
)

var ErrHubStopped = errors.New("hub stopped")

type clientMessage struct {
	client *Client
	msg    Message
}

// Hub owns the set of live clients and funnels every event into the handler
// from a single goroutine, so the handler needs no locking.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage
	stats      chan chan int
	done       chan struct{}

	handler EventHandler
}

func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		stats:      make(chan chan int),
		done:       make(chan struct{}),
		handler:    handler,
	}
}

// Run processes events until ctx is cancelled. On the way out every remaining
// client is disconnected through the handler and then closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
				h.handler.OnDisconnect(client)
			}

		case in := <-h.incoming:
			if _, ok := h.clients[in.client]; ok {
				h.handler.OnMessage(in.client, in.msg)
			}

		case reply := <-h.stats:
			reply <- len(h.clients)

		case <-ctx.Done():
			remaining := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				remaining = append(remaining, client)
			}
			clear(h.clients)
			for _, client := range remaining {
				h.handler.OnDisconnect(client)
			}
			for _, client := range remaining {
				client.close()
			}
			return
		}
	}
}

// Clients returns the number of registered clients, answered by the hub goroutine.
func (h *Hub) Clients(ctx context.Context) (int, error) {
	reply := make(chan int, 1)
	select {
	case h.stats <- reply:
		return <-reply, nil
	case <-h.done:
		return 0, ErrHubStopped
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Check is a health probe: the hub must answer within a second.
func (h *Hub) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := h.Clients(ctx)
	return err
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) submit(c *Client, msg Message) bool {
	select {
	case h.incoming <- clientMessage{client: c, msg: msg}:
		return true
	case <-h.done:
		return false
	}
}
