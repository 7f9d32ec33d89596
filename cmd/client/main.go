package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"twentyq/internal/logger"
	"twentyq/internal/network"
)

// session is shared by the read loop, which learns the current room, and the
// input loop, which needs it to address commands.
type session struct {
	mu sync.Mutex
	st state
}

func (s *session) get() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

func (s *session) setRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.room = code
}

func main() {
	_ = logger.Setup(os.Getenv("LOG_LEVEL"), true)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addrs := []string{"localhost:3000"}
	if env := os.Getenv("SERVER_ADDRESSES"); env != "" {
		addrs = strings.Split(env, ",")
	}

	conn := dial(addrs)
	if conn == nil {
		log.Fatal().Strs("addrs", addrs).Msg("no server reachable")
	}
	defer conn.Close()

	sess := &session{st: state{nickname: os.Getenv("NICKNAME")}}
	done := make(chan struct{})
	go readLoop(conn, sess, done)
	go inputLoop(conn, sess, done)

	select {
	case <-done:
		log.Info().Msg("disconnected")
	case <-interrupt:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

// dial tries every address in order and returns the first connection.
func dial(addrs []string) *websocket.Conn {
	for _, addr := range addrs {
		u := url.URL{Scheme: "ws", Host: strings.TrimSpace(addr), Path: "/ws"}
		conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
		if err == nil {
			log.Info().Str("url", u.String()).Msg("connected")
			return conn
		}
		ev := log.Warn().Err(err).Str("url", u.String())
		if resp != nil {
			ev = ev.Str("status", resp.Status)
		}
		ev.Msg("connect failed")
	}
	return nil
}

func readLoop(conn *websocket.Conn, sess *session, done chan struct{}) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		line, room := render(msg, sess.get().room)
		sess.setRoom(room)
		if line != "" {
			fmt.Println(line)
		}
	}
}

func inputLoop(conn *websocket.Conn, sess *session, done <-chan struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "/quit" {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
		msg, err := parseInput(line, sess.get())
		if err != nil {
			fmt.Println(err)
			continue
		}
		if msg == nil {
			continue
		}
		select {
		case <-done:
			return
		default:
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Msg("send failed")
			return
		}
		if msg.Type == "leaveRoom" {
			sess.setRoom("")
		}
	}
}
