package session

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twentyq/internal/game/room"
	"twentyq/internal/network"
	"twentyq/internal/session/message"
)

type wsPlayer struct {
	t    *testing.T
	conn *websocket.Conn
	id   string
}

func dialPlayer(t *testing.T, url string) *wsPlayer {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	p := &wsPlayer{t: t, conn: conn}
	welcome := p.expect(message.TypeWelcome)
	p.id = payloadOf[message.WelcomePayload](t, welcome).ConnectionID
	require.NotEmpty(t, p.id)
	return p
}

func (p *wsPlayer) send(msgType string, payload any) {
	p.t.Helper()
	msg, err := network.NewMessage(msgType, payload)
	require.NoError(p.t, err)
	require.NoError(p.t, p.conn.WriteJSON(msg))
}

// expect skips other messages until one of msgType arrives.
func (p *wsPlayer) expect(msgType string) network.Message {
	p.t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		require.NoError(p.t, p.conn.SetReadDeadline(deadline))
		var msg network.Message
		require.NoError(p.t, p.conn.ReadJSON(&msg), "waiting for %s", msgType)
		if msg.Type == msgType {
			return msg
		}
	}
}

func startServer(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen on loopback: %v", err)
	}
	_ = l.Close()

	srv := network.NewServer(NewGameHandler(nil), network.Options{RatePerSecond: 100, RateBurst: 100})
	ctx, cancel := context.WithCancel(context.Background())
	srv.Start(ctx)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestEndToEnd_FullRound(t *testing.T) {
	url := startServer(t)
	host := dialPlayer(t, url)
	guest := dialPlayer(t, url)

	host.send("createRoom", map[string]string{"roomCode": "e2e", "nickname": "Host", "word": "사과"})
	joined := payloadOf[room.RoomJoinedPayload](t, host.expect("roomJoined"))
	assert.Equal(t, "사과", joined.Word)
	host.expect("playersUpdate")

	guest.send("joinRoom", map[string]string{"roomCode": "e2e", "nickname": "Guest"})
	guestJoined := payloadOf[room.RoomJoinedPayload](t, guest.expect("roomJoined"))
	assert.Empty(t, guestJoined.Word)
	players := payloadOf[room.PlayersPayload](t, host.expect("playersUpdate"))
	require.Len(t, players.Players, 1)
	assert.Equal(t, guest.id, string(players.Players[0].ID))

	guest.send("askQuestion", map[string]string{"roomCode": "e2e", "text": "과일인가요?"})
	q := payloadOf[room.EventPayload](t, host.expect("newQuestion"))
	assert.Equal(t, "Guest", q.From)

	host.send("answerQuestion", map[string]any{"roomCode": "e2e", "questionId": q.ID, "kind": "correct"})
	for _, p := range []*wsPlayer{host, guest} {
		over := payloadOf[room.GameOverPayload](t, p.expect("gameOver"))
		assert.Equal(t, "guesserWin", over.GameResultForGuesser)
		assert.Equal(t, "사과", over.FinalWord)
	}

	guest.send("createRoom", map[string]string{"roomCode": "e2e", "nickname": "Guest", "word": "배"})
	assert.Equal(t, room.RoleHost, payloadOf[room.RoomJoinedPayload](t, guest.expect("roomJoined")).Role)
}

func TestEndToEnd_HostDropClosesRoom(t *testing.T) {
	url := startServer(t)
	host := dialPlayer(t, url)
	guest := dialPlayer(t, url)

	host.send("createRoom", map[string]string{"roomCode": "drop", "nickname": "Host", "word": "사과"})
	host.expect("roomJoined")
	guest.send("joinRoom", map[string]string{"roomCode": "drop", "nickname": "Guest"})
	guest.expect("roomJoined")

	require.NoError(t, host.conn.Close())

	closed := payloadOf[room.RoomClosedPayload](t, guest.expect("roomClosed"))
	assert.Equal(t, "drop", closed.RoomCode)

	guest.send("joinRoom", map[string]string{"roomCode": "drop", "nickname": "Guest"})
	assert.Equal(t, message.TextRoomNotFound, payloadOf[string](t, guest.expect(message.TypeError)))
}
