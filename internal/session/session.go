package session

import (
	"slices"

	"twentyq/internal/network"
)

// Peer is the transport side of a connection as the game sees it.
// *network.Client satisfies it.
type Peer interface {
	ID() string
	Deliver(msg network.Message) bool
}

// PlayerSession tracks one connection and the rooms it is currently attached to.
// Room-scoped commands are only accepted for those rooms.
type PlayerSession struct {
	Peer
	rooms map[string]struct{}
}

func NewPlayerSession(p Peer) *PlayerSession {
	return &PlayerSession{Peer: p, rooms: make(map[string]struct{})}
}

func (s *PlayerSession) InRoom(code string) bool {
	_, ok := s.rooms[code]
	return ok
}

// Rooms lists the attached room codes in sorted order.
func (s *PlayerSession) Rooms() []string {
	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
