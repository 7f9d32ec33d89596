package message

// Server -> client envelopes.

import (
	"twentyq/internal/game/room"
	"twentyq/internal/network"
)

const (
	TypeWelcome = "welcome"
	TypeError   = "errorMsg"
)

// Texts shown to players. They are sent verbatim in errorMsg payloads.
const (
	TextMissingCode   = "방 코드를 입력하세요."
	TextDuplicateRoom = "이미 존재하는 방 코드입니다."
	TextRoomNotFound  = "존재하지 않는 방 코드입니다."
	TextMissingWord   = "단어를 입력하세요."
	TextUnknownType   = "알 수 없는 요청입니다."
	TextBadPayload    = "잘못된 요청 형식입니다."
)

type WelcomePayload struct {
	ConnectionID string `json:"connectionId"`
}

// CreateWelcome tells a fresh connection its own id, which is also the id
// other players see in playersUpdate and use as a kick target.
func CreateWelcome(connID string) network.Message {
	msg, _ := network.NewMessage(TypeWelcome, WelcomePayload{ConnectionID: connID})
	return msg
}

// CreateErrorMsg carries a bare string payload.
func CreateErrorMsg(text string) network.Message {
	msg, _ := network.NewMessage(TypeError, text)
	return msg
}

// FromNotification encodes a room event. The notification kind is the wire type.
func FromNotification(n room.Notification) (network.Message, error) {
	return network.NewMessage(string(n.Kind), n.Payload)
}
