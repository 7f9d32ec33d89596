package session

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"twentyq/internal/game/room"
	"twentyq/internal/services/events"
	"twentyq/internal/session/message"
)

type createRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
	Word     string `json:"word"`
}

type joinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

type textPayload struct {
	RoomCode string `json:"roomCode"`
	Text     string `json:"text"`
	Nickname string `json:"nickname"`
}

type answerPayload struct {
	RoomCode   string `json:"roomCode"`
	QuestionID int    `json:"questionId"`
	Kind       string `json:"kind"`
}

type kickPayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type leavePayload struct {
	RoomCode string `json:"roomCode"`
}

func (h *GameHandler) registerRoomHandlers() {
	h.router["createRoom"] = handleCreateRoom
	h.router["joinRoom"] = handleJoinRoom
	h.router["sendHint"] = handleSendHint
	h.router["askQuestion"] = handleAskQuestion
	h.router["answerQuestion"] = handleAnswerQuestion
	h.router["sendChatMessage"] = handleSendChat
	h.router["kickPlayer"] = handleKickPlayer
	h.router["leaveRoom"] = handleLeaveRoom
}

func handleCreateRoom(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req createRoomPayload
	if err := decode(payload, &req); err != nil {
		s.Deliver(message.CreateErrorMsg(message.TextBadPayload))
		return
	}
	code := strings.TrimSpace(req.RoomCode)
	switch {
	case code == "":
		s.Deliver(message.CreateErrorMsg(message.TextMissingCode))
		return
	case strings.TrimSpace(req.Word) == "":
		s.Deliver(message.CreateErrorMsg(message.TextMissingWord))
		return
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = room.DefaultHostName
	}

	r, notes, err := h.registry.Create(code, room.ConnID(s.ID()), nickname, req.Word)
	if err != nil {
		log.Debug().Err(err).Str("conn", s.ID()).Str("room", code).Msg("createRoom rejected")
		s.Deliver(message.CreateErrorMsg(setupErrorText(err)))
		return
	}
	log.Info().Str("room", code).Str("host", s.ID()).Msg("room created")
	h.deliver(notes)
	h.publish(events.Event{Type: events.RoomCreated, Room: r.Code(), Host: r.Host().Name})
}

func handleJoinRoom(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req joinRoomPayload
	if err := decode(payload, &req); err != nil {
		s.Deliver(message.CreateErrorMsg(message.TextBadPayload))
		return
	}
	code := strings.TrimSpace(req.RoomCode)

	notes, err := h.registry.Dispatch(code, room.ConnID(s.ID()), room.Join{Nickname: req.Nickname})
	if err != nil {
		log.Debug().Err(err).Str("conn", s.ID()).Str("room", code).Msg("joinRoom rejected")
		s.Deliver(message.CreateErrorMsg(setupErrorText(err)))
		return
	}
	h.deliver(notes)
}

func handleSendHint(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req textPayload
	if h.decodeScoped(s, payload, &req, &req.RoomCode) {
		h.dispatch(s, req.RoomCode, room.SendHint{Text: req.Text})
	}
}

func handleAskQuestion(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req textPayload
	if h.decodeScoped(s, payload, &req, &req.RoomCode) {
		h.dispatch(s, req.RoomCode, room.AskQuestion{Text: req.Text, Nickname: req.Nickname})
	}
}

func handleAnswerQuestion(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req answerPayload
	if h.decodeScoped(s, payload, &req, &req.RoomCode) {
		h.dispatch(s, req.RoomCode, room.AnswerQuestion{QuestionID: req.QuestionID, Kind: room.AnswerKind(req.Kind)})
	}
}

func handleSendChat(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req textPayload
	if h.decodeScoped(s, payload, &req, &req.RoomCode) {
		h.dispatch(s, req.RoomCode, room.SendChat{Text: req.Text, Nickname: req.Nickname})
	}
}

func handleKickPlayer(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req kickPayload
	if h.decodeScoped(s, payload, &req, &req.RoomCode) {
		h.dispatch(s, req.RoomCode, room.Kick{Target: room.ConnID(req.PlayerID)})
	}
}

func handleLeaveRoom(h *GameHandler, s *PlayerSession, payload json.RawMessage) {
	var req leavePayload
	if h.decodeScoped(s, payload, &req, &req.RoomCode) {
		h.dispatch(s, req.RoomCode, room.Leave{})
	}
}

// decodeScoped decodes a room-scoped command and reports whether it may run.
// Commands for rooms the session is not attached to are dropped without reply.
func (h *GameHandler) decodeScoped(s *PlayerSession, payload json.RawMessage, v any, code *string) bool {
	if err := decode(payload, v); err != nil {
		s.Deliver(message.CreateErrorMsg(message.TextBadPayload))
		return false
	}
	*code = strings.TrimSpace(*code)
	if !s.InRoom(*code) {
		log.Debug().Str("conn", s.ID()).Str("room", *code).Msg("command for a room the connection is not in")
		return false
	}
	return true
}

// dispatch runs cmd against the room and fans the result out. Rejections are
// only logged: the client gets no reply for them.
func (h *GameHandler) dispatch(s *PlayerSession, code string, cmd room.Command) {
	r, err := h.registry.Get(code)
	if err != nil {
		log.Debug().Err(err).Str("conn", s.ID()).Msg("command dropped")
		return
	}
	notes, err := h.registry.Dispatch(code, room.ConnID(s.ID()), cmd)
	if err != nil {
		log.Debug().Err(err).Str("conn", s.ID()).Str("room", code).Msgf("%T rejected", cmd)
		return
	}
	h.deliver(notes)

	if r.Finished() {
		h.publishEnd(r)
	}
}

// setupErrorText maps createRoom/joinRoom failures to the text shown to the player.
func setupErrorText(err error) string {
	switch {
	case errors.Is(err, room.ErrDuplicateRoom):
		return message.TextDuplicateRoom
	case errors.Is(err, room.ErrNotFound):
		return message.TextRoomNotFound
	case errors.Is(err, room.ErrMissingField):
		return message.TextMissingCode
	}
	return message.TextBadPayload
}
