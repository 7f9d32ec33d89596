package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

var ErrDisconnected = errors.New("nats: not connected")

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	IsConnected() bool
	Drain() error
}

// NATSPublisher publishes events as JSON on <prefix>.<type>. Publishing is
// buffered by the client library, so it never waits on the network.
type NATSPublisher struct {
	nc       conn
	prefix   string
	instance string
}

// Connect dials url and keeps reconnecting in the background for as long as
// the process runs.
func Connect(url, prefix, instance string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(instance),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	log.Info().Str("url", url).Str("prefix", prefix).Msg("publishing room events to nats")
	return newNATSPublisher(nc, prefix, instance), nil
}

func newNATSPublisher(nc conn, prefix, instance string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix, instance: instance}
}

func (p *NATSPublisher) Publish(e Event) error {
	if e.Instance == "" {
		e.Instance = p.instance
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	subject := Subject(p.prefix, e.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Check() error {
	if !p.nc.IsConnected() {
		return ErrDisconnected
	}
	return nil
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
