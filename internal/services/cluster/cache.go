package cluster

import (
	"time"
)

// LookupFunc resolves a service name to its instance addresses.
type LookupFunc func(serviceName string) ([]string, error)

type peerEntry struct {
	addrs      []string
	expiration time.Time
}

type peerRequest struct {
	serviceName string
	reply       chan<- []string
}

// PeerCache is an actor that memoizes instance lookups for ttl. A failed
// lookup keeps serving the previous answer.
type PeerCache struct {
	entries map[string]peerEntry
	ttl     time.Duration
	lookup  LookupFunc

	requestCh chan peerRequest
	done      chan struct{}
}

func NewPeerCache(ttl time.Duration, lookup LookupFunc) *PeerCache {
	pc := &PeerCache{
		entries:   make(map[string]peerEntry),
		ttl:       ttl,
		lookup:    lookup,
		requestCh: make(chan peerRequest),
		done:      make(chan struct{}),
	}
	go pc.run()
	return pc
}

func (pc *PeerCache) run() {
	for {
		select {
		case req := <-pc.requestCh:
			req.reply <- pc.resolve(req.serviceName)
		case <-pc.done:
			return
		}
	}
}

func (pc *PeerCache) resolve(serviceName string) []string {
	entry, found := pc.entries[serviceName]
	if found && time.Now().Before(entry.expiration) {
		return entry.addrs
	}

	addrs, err := pc.lookup(serviceName)
	if err != nil {
		return entry.addrs
	}
	pc.entries[serviceName] = peerEntry{addrs: addrs, expiration: time.Now().Add(pc.ttl)}
	return addrs
}

// Peers returns the cached instances of serviceName, refreshing them when stale.
func (pc *PeerCache) Peers(serviceName string) []string {
	select {
	case <-pc.done:
		return nil
	default:
	}

	replyCh := make(chan []string, 1)
	select {
	case pc.requestCh <- peerRequest{serviceName: serviceName, reply: replyCh}:
		return <-replyCh
	case <-pc.done:
		return nil
	}
}

// Close stops the actor. Peers returns nil afterwards.
func (pc *PeerCache) Close() {
	close(pc.done)
}
