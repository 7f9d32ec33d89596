package session

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"twentyq/internal/game/room"
	"twentyq/internal/network"
	"twentyq/internal/services/events"
	"twentyq/internal/session/message"
)

// CommandHandlerFunc handles one inbound message type for a session.
type CommandHandlerFunc func(h *GameHandler, s *PlayerSession, payload json.RawMessage)

// GameHandler implements network.EventHandler. It owns the room registry and
// the room groups, and it only ever runs on the hub goroutine.
type GameHandler struct {
	sessions map[string]*PlayerSession
	registry *room.Registry
	// groups maps a room code to the sessions attached to it.
	groups    map[string]map[string]*PlayerSession
	publisher events.Publisher

	router map[string]CommandHandlerFunc
}

func NewGameHandler(publisher events.Publisher) *GameHandler {
	if publisher == nil {
		publisher = events.Noop{}
	}
	h := &GameHandler{
		sessions:  make(map[string]*PlayerSession),
		registry:  room.NewRegistry(),
		groups:    make(map[string]map[string]*PlayerSession),
		publisher: publisher,
		router:    make(map[string]CommandHandlerFunc),
	}
	h.registerRoomHandlers()
	return h
}

func (h *GameHandler) OnConnect(c *network.Client) {
	h.Connect(c)
}

func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.Disconnect(c)
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	h.Handle(c, msg)
}

// Connect opens a session and greets the peer with its connection id.
func (h *GameHandler) Connect(p Peer) {
	s := NewPlayerSession(p)
	h.sessions[p.ID()] = s
	s.Deliver(message.CreateWelcome(p.ID()))
	log.Debug().Str("conn", p.ID()).Int("sessions", len(h.sessions)).Msg("session opened")
}

// Disconnect leaves every room the peer is attached to, which closes the rooms it hosts.
func (h *GameHandler) Disconnect(p Peer) {
	s, ok := h.sessions[p.ID()]
	if !ok {
		return
	}
	for _, code := range s.Rooms() {
		h.dispatch(s, code, room.Leave{})
	}
	delete(h.sessions, p.ID())
	log.Debug().Str("conn", p.ID()).Int("sessions", len(h.sessions)).Msg("session closed")
}

// Handle routes one inbound message. Unknown types and undecodable frames get an errorMsg.
func (h *GameHandler) Handle(p Peer, msg network.Message) {
	s, ok := h.sessions[p.ID()]
	if !ok {
		return
	}
	handler, found := h.router[msg.Type]
	if !found {
		log.Debug().Str("conn", p.ID()).Str("type", msg.Type).Msg("unknown message type")
		s.Deliver(message.CreateErrorMsg(message.TextUnknownType))
		return
	}
	handler(h, s, msg.Payload)
}

// Rooms lists the live room codes.
func (h *GameHandler) Rooms() []string {
	return h.registry.Codes()
}

// decode treats a missing payload as an empty object.
func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	return json.Unmarshal(payload, v)
}
