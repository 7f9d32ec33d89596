package network

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler is only touched by the hub goroutine; tests read it after a
// Clients round trip, which orders the reads after the writes.
type recordingHandler struct {
	events []string
	onMsg  func(c *Client, msg Message)
}

func (h *recordingHandler) OnConnect(c *Client)    { h.events = append(h.events, "connect:"+c.ID()) }
func (h *recordingHandler) OnDisconnect(c *Client) { h.events = append(h.events, "disconnect:"+c.ID()) }
func (h *recordingHandler) OnMessage(c *Client, msg Message) {
	h.events = append(h.events, "message:"+c.ID()+":"+msg.Type)
	if h.onMsg != nil {
		h.onMsg(c, msg)
	}
}

func fakeClient(h *Hub, id string, buffer int) *Client {
	return &Client{id: id, hub: h, send: make(chan Message, buffer)}
}

func startHub(t *testing.T, handler EventHandler) (*Hub, context.CancelFunc) {
	t.Helper()
	h := NewHub(handler)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h, cancel
}

func roundTrip(t *testing.T, h *Hub) int {
	t.Helper()
	n, err := h.Clients(context.Background())
	require.NoError(t, err)
	return n
}

func TestHub_Lifecycle(t *testing.T) {
	rec := &recordingHandler{}
	h, _ := startHub(t, rec)
	a := fakeClient(h, "a", 4)

	require.True(t, h.join(a))
	require.True(t, h.submit(a, Message{Type: "askQuestion"}))
	assert.Equal(t, 1, roundTrip(t, h))

	h.leave(a)
	assert.Equal(t, 0, roundTrip(t, h))

	_, open := <-a.send
	assert.False(t, open)
	assert.Equal(t, []string{"connect:a", "message:a:askQuestion", "disconnect:a"}, rec.events)
}

func TestHub_IgnoresUnknownClients(t *testing.T) {
	rec := &recordingHandler{}
	h, _ := startHub(t, rec)
	stranger := fakeClient(h, "x", 1)

	h.submit(stranger, Message{Type: "sendChatMessage"})
	h.leave(stranger)
	roundTrip(t, h)

	assert.Empty(t, rec.events)
}

func TestHub_DeliverIsNonBlocking(t *testing.T) {
	var results []bool
	rec := &recordingHandler{onMsg: func(c *Client, _ Message) {
		for i := 0; i < 3; i++ {
			results = append(results, c.Deliver(Message{Type: "newChatMessage"}))
		}
	}}
	h, _ := startHub(t, rec)
	a := fakeClient(h, "a", 2)
	h.join(a)

	h.submit(a, Message{Type: "sendChatMessage"})
	roundTrip(t, h)

	assert.Equal(t, []bool{true, true, false}, results)
}

func TestHub_DeliverAfterCloseIsDropped(t *testing.T) {
	c := fakeClient(nil, "a", 1)
	c.close()
	c.close()

	assert.False(t, c.Deliver(Message{Type: "welcome"}))
}

func TestHub_ShutdownDisconnectsEveryone(t *testing.T) {
	rec := &recordingHandler{}
	h, cancel := startHub(t, rec)
	a, b := fakeClient(h, "a", 1), fakeClient(h, "b", 1)
	h.join(a)
	h.join(b)
	roundTrip(t, h)

	cancel()
	select {
	case <-h.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	assert.ElementsMatch(t, []string{"connect:a", "connect:b", "disconnect:a", "disconnect:b"}, rec.events)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.ErrorIs(t, h.Check(), ErrHubStopped)
	assert.False(t, h.join(fakeClient(h, "late", 1)))
	assert.False(t, h.submit(a, Message{}))
}

func TestHub_Check(t *testing.T) {
	h, _ := startHub(t, &recordingHandler{})

	assert.NoError(t, h.Check())
}
