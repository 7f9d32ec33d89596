package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog/log"
)

// NewConsulClient tries each agent address in turn and returns the first one
// that can see a cluster leader.
func NewConsulClient(addrs []string) (*consul.Client, error) {
	for _, node := range addrs {
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.Warn().Err(err).Str("consul", node).Msg("consul client rejected")
			continue
		}
		if _, err := client.Status().Leader(); err != nil {
			log.Warn().Err(err).Str("consul", node).Msg("consul agent has no leader")
			continue
		}

		log.Info().Str("consul", node).Msg("connected to consul")
		return client, nil
	}
	return nil, fmt.Errorf("no consul agent available in [%s]", strings.Join(addrs, ","))
}
