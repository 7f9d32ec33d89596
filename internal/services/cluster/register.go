package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog/log"
)

// Registration is one service instance announced to consul.
type Registration struct {
	agent *consul.Agent
	ID    string
	Name  string
}

// ServiceID derives an instance id from the host name, which is unique per container.
func ServiceID(serviceName string) string {
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	return fmt.Sprintf("%s-%s", serviceName, hostname)
}

// Register announces the service with an HTTP check against /health on the same port.
func Register(client *consul.Client, serviceName string, port int) (*Registration, error) {
	id := ServiceID(serviceName)
	hostname, _ := os.Hostname()

	reg := &consul.AgentServiceRegistration{
		ID:   id,
		Name: serviceName,
		Port: port,
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", hostname, port),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
	if err := client.Agent().ServiceRegister(reg); err != nil {
		return nil, fmt.Errorf("register %s in consul: %w", id, err)
	}

	log.Info().Str("service", serviceName).Str("id", id).Msg("registered in consul")
	return &Registration{agent: client.Agent(), ID: id, Name: serviceName}, nil
}

func (r *Registration) Deregister() error {
	if err := r.agent.ServiceDeregister(r.ID); err != nil {
		return fmt.Errorf("deregister %s: %w", r.ID, err)
	}
	log.Info().Str("id", r.ID).Msg("deregistered from consul")
	return nil
}

// HealthyInstances lists host:port of every passing instance of the service.
func HealthyInstances(client *consul.Client, serviceName string) ([]string, error) {
	entries, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", serviceName, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		addr := e.Service.Address
		if addr == "" {
			addr = e.Node.Address
		}
		out = append(out, fmt.Sprintf("%s:%d", addr, e.Service.Port))
	}
	return out, nil
}

// LeaderCheck fails when the agent lost sight of the consul leader.
func LeaderCheck(client *consul.Client) CheckFunc {
	return func() error {
		_, err := client.Status().Leader()
		return err
	}
}
