package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"twentyq/internal/game/room"
	"twentyq/internal/network"
	"twentyq/internal/session/message"
)

var answerLabels = map[room.AnswerKind]string{
	room.AnswerYes:     "예",
	room.AnswerNo:      "아니오",
	room.AnswerIDK:     "모르겠어요",
	room.AnswerCorrect: "정답!",
}

// render formats a server message for the terminal and reports the room the
// client is in afterwards. An empty room means the client left it.
func render(msg network.Message, current string) (string, string) {
	switch msg.Type {
	case message.TypeWelcome:
		var p message.WelcomePayload
		_ = json.Unmarshal(msg.Payload, &p)
		return fmt.Sprintf("connected as %s (type /help)", p.ConnectionID), current

	case message.TypeError:
		var text string
		_ = json.Unmarshal(msg.Payload, &text)
		return "! " + text, current

	case string(room.KindRoomJoined):
		var p room.RoomJoinedPayload
		_ = json.Unmarshal(msg.Payload, &p)
		line := fmt.Sprintf("joined room %s as %s (%d/%d questions)", p.RoomCode, p.Role, p.QuestionCount, room.QuestionBudget)
		if p.Word != "" {
			line += fmt.Sprintf(", secret word: %s", p.Word)
		}
		return line, p.RoomCode

	case string(room.KindPlayersUpdate):
		var p room.PlayersPayload
		_ = json.Unmarshal(msg.Payload, &p)
		names := make([]string, 0, len(p.Players))
		for _, m := range p.Players {
			names = append(names, fmt.Sprintf("%s[%s]", m.Name, m.ID))
		}
		return fmt.Sprintf("host %s, players: %s", p.Host.Name, strings.Join(names, ", ")), current

	case string(room.KindChatUpdate):
		var p room.ChatUpdatePayload
		_ = json.Unmarshal(msg.Payload, &p)
		lines := make([]string, 0, len(p.Items))
		for _, rec := range p.Items {
			lines = append(lines, renderRecord(rec))
		}
		return strings.Join(lines, "\n"), current

	case string(room.KindNewQuestion), string(room.KindNewAnswer):
		var p room.EventPayload
		_ = json.Unmarshal(msg.Payload, &p)
		return fmt.Sprintf("%s  (%d/%d)", renderRecord(p.Record), p.QuestionCount, room.QuestionBudget), current

	case string(room.KindNewHint), string(room.KindNewChatMessage):
		var rec room.Record
		_ = json.Unmarshal(msg.Payload, &rec)
		return renderRecord(rec), current

	case string(room.KindGameOver):
		var p room.GameOverPayload
		_ = json.Unmarshal(msg.Payload, &p)
		return fmt.Sprintf("game over: %s, the word was %s", p.GameResultForGuesser, p.FinalWord), ""

	case string(room.KindRoomClosed):
		return "the host left, room closed", ""

	case string(room.KindKicked):
		return "you were kicked from the room", ""

	case string(room.KindEffect):
		var p room.EffectPayload
		_ = json.Unmarshal(msg.Payload, &p)
		return fmt.Sprintf("*** %s by %s ***", p.Effect, p.From), current
	}
	return fmt.Sprintf("%s %s", msg.Type, string(msg.Payload)), current
}

func renderRecord(rec room.Record) string {
	switch rec.Type {
	case room.RecordQuestion:
		return fmt.Sprintf("Q%d %s: %s", rec.ID, rec.From, rec.Text)
	case room.RecordAnswer:
		return fmt.Sprintf("A%d %s: %s", rec.QuestionID, rec.From, answerLabels[rec.Kind])
	case room.RecordHint:
		if rec.Auto {
			return "hint (auto): " + rec.Text
		}
		return fmt.Sprintf("hint from %s: %s", rec.From, rec.Text)
	case room.RecordSystem:
		return "-- " + rec.Text
	}
	return fmt.Sprintf("%s: %s", rec.From, rec.Text)
}
