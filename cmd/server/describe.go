package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"twentyq/internal/network"
	"twentyq/internal/services/cluster"
)

type descriptor struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
	Clients   int      `json:"clients"`
	Checks    []string `json:"checks"`
	Peers     []string `json:"peers,omitempty"`
}

// describe serves a small JSON summary of the instance. peers may be nil when
// consul is not configured.
func describe(service string, hub *network.Hub, health *cluster.HealthAggregator, peers *cluster.PeerCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		d := descriptor{
			Service:   service,
			Endpoints: []string{"GET /ws", "GET /health"},
			Checks:    health.Names(),
		}
		n, err := hub.Clients(ctx)
		if err != nil {
			http.Error(w, `{"error":"hub unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		d.Clients = n
		if peers != nil {
			d.Peers = peers.Peers(service)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(d)
	}
}
