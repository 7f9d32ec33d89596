package session

import (
	"github.com/rs/zerolog/log"

	"twentyq/internal/game/room"
	"twentyq/internal/services/events"
	"twentyq/internal/session/message"
)

// deliver applies group directives and sends every data notification to its
// audience, in order. A broadcast is encoded once and queued for each member.
func (h *GameHandler) deliver(notes []room.Notification) {
	for _, n := range notes {
		if n.Directive() {
			h.applyDirective(n)
			continue
		}

		msg, err := message.FromNotification(n)
		if err != nil {
			log.Error().Err(err).Str("room", n.Room).Str("type", string(n.Kind)).Msg("encode notification")
			continue
		}

		if !n.Broadcast() {
			if s, ok := h.sessions[string(n.To)]; ok {
				s.Deliver(msg)
			}
			continue
		}
		for _, s := range h.groups[n.Room] {
			s.Deliver(msg)
		}
	}
}

func (h *GameHandler) applyDirective(n room.Notification) {
	switch n.Kind {
	case room.KindAttach:
		s, ok := h.sessions[string(n.To)]
		if !ok {
			return
		}
		group, ok := h.groups[n.Room]
		if !ok {
			group = make(map[string]*PlayerSession)
			h.groups[n.Room] = group
		}
		group[s.ID()] = s
		s.rooms[n.Room] = struct{}{}

	case room.KindDetach:
		delete(h.groups[n.Room], string(n.To))
		if s, ok := h.sessions[string(n.To)]; ok {
			delete(s.rooms, n.Room)
		}

	case room.KindDisband:
		for _, s := range h.groups[n.Room] {
			delete(s.rooms, n.Room)
		}
		delete(h.groups, n.Room)
		log.Info().Str("room", n.Room).Msg("room destroyed")
	}
}

// publishEnd reports why a room went away.
func (h *GameHandler) publishEnd(r *room.Room) {
	e := events.Event{
		Type:          events.RoomClosed,
		Room:          r.Code(),
		Host:          r.Host().Name,
		Players:       len(r.Members()),
		QuestionCount: r.QuestionCount(),
		Reason:        "hostLeft",
	}
	if r.GameOver() {
		e.Type = events.GameOver
		e.Outcome = r.Outcome().ForGuesser()
		e.FinalWord = r.Word()
		e.Reason = ""
	}
	h.publish(e)
}

func (h *GameHandler) publish(e events.Event) {
	if err := h.publisher.Publish(e); err != nil {
		log.Warn().Err(err).Str("room", e.Room).Str("event", string(e.Type)).Msg("publish room event")
	}
}
