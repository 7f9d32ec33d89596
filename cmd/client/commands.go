package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"twentyq/internal/network"
)

var errNotInRoom = errors.New("not in a room; use /create or /join first")

const usage = `commands:
  /create <code> <word> [nickname]   open a room as host
  /join <code> [nickname]            join a room as guesser
  /ask <question>                    ask the host (guesser)
  /answer <id> yes|no|idk|correct    answer a question (host)
  /hint <text>                       send a hint (host)
  /kick <playerId>                   remove a guesser (host)
  /leave                             leave the current room
  /quit                              disconnect
  anything else                      chat in the current room`

// state is what the input side needs to know about the session.
type state struct {
	room     string
	nickname string
}

// parseInput turns one line typed by the user into an envelope. A nil message
// with a nil error means there is nothing to send.
func parseInput(line string, st state) (*network.Message, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	if !strings.HasPrefix(line, "/") {
		if st.room == "" {
			return nil, errNotInRoom
		}
		return build("sendChatMessage", map[string]any{"roomCode": st.room, "text": line, "nickname": st.nickname})
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "/create":
		if len(args) < 2 {
			return nil, errors.New("usage: /create <code> <word> [nickname]")
		}
		nickname := st.nickname
		if len(args) > 2 {
			nickname = strings.Join(args[2:], " ")
		}
		return build("createRoom", map[string]any{"roomCode": args[0], "word": args[1], "nickname": nickname})

	case "/join":
		if len(args) < 1 {
			return nil, errors.New("usage: /join <code> [nickname]")
		}
		nickname := st.nickname
		if len(args) > 1 {
			nickname = strings.Join(args[1:], " ")
		}
		return build("joinRoom", map[string]any{"roomCode": args[0], "nickname": nickname})

	case "/help":
		return nil, errors.New(usage)
	}

	if st.room == "" {
		return nil, errNotInRoom
	}

	switch cmd {
	case "/ask":
		if rest == "" {
			return nil, errors.New("usage: /ask <question>")
		}
		return build("askQuestion", map[string]any{"roomCode": st.room, "text": rest, "nickname": st.nickname})

	case "/answer":
		if len(args) != 2 {
			return nil, errors.New("usage: /answer <id> yes|no|idk|correct")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("question id %q is not a number", args[0])
		}
		return build("answerQuestion", map[string]any{"roomCode": st.room, "questionId": id, "kind": args[1]})

	case "/hint":
		if rest == "" {
			return nil, errors.New("usage: /hint <text>")
		}
		return build("sendHint", map[string]any{"roomCode": st.room, "text": rest})

	case "/kick":
		if len(args) != 1 {
			return nil, errors.New("usage: /kick <playerId>")
		}
		return build("kickPlayer", map[string]any{"roomCode": st.room, "playerId": args[0]})

	case "/leave":
		return build("leaveRoom", map[string]any{"roomCode": st.room})
	}
	return nil, fmt.Errorf("unknown command %s\n%s", cmd, usage)
}

func build(msgType string, payload map[string]any) (*network.Message, error) {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
