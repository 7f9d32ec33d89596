package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"twentyq/internal/network"
	"twentyq/internal/services/events"
)

// --- Publisher ---

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(e events.Event) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockPublisher) Check() error {
	return m.Called().Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// --- Peer ---

type fakePeer struct {
	id    string
	inbox []network.Message
}

func newPeer(id string) *fakePeer {
	return &fakePeer{id: id}
}

func (p *fakePeer) ID() string { return p.id }

func (p *fakePeer) Deliver(msg network.Message) bool {
	p.inbox = append(p.inbox, msg)
	return true
}

func (p *fakePeer) types() []string {
	out := make([]string, 0, len(p.inbox))
	for _, m := range p.inbox {
		out = append(out, m.Type)
	}
	return out
}

func (p *fakePeer) reset() {
	p.inbox = nil
}

// find returns the last queued message of the given type.
func (p *fakePeer) find(t *testing.T, msgType string) network.Message {
	t.Helper()
	for i := len(p.inbox) - 1; i >= 0; i-- {
		if p.inbox[i].Type == msgType {
			return p.inbox[i]
		}
	}
	require.Failf(t, "message not delivered", "%s never reached %s; got %v", msgType, p.id, p.types())
	return network.Message{}
}

func payloadOf[T any](t *testing.T, msg network.Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Payload, &v))
	return v
}
