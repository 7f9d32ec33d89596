package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"twentyq/internal/config"
	"twentyq/internal/logger"
	"twentyq/internal/network"
	"twentyq/internal/services/cluster"
	"twentyq/internal/services/events"
	"twentyq/internal/session"
)

const peerCacheTTL = 30 * time.Second

func main() {
	dotenvErr := config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Warn().Err(err).Msg("log level")
	}
	if dotenvErr != nil {
		log.Warn().Err(dotenvErr).Msg("read .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.Port).
		Bool("consul", len(cfg.ConsulAddrs) > 0).
		Bool("nats", cfg.NATSURL != "").
		Msg("configuration loaded")

	health := cluster.NewHealthAggregator()

	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		nats, err := events.Connect(cfg.NATSURL, cfg.NATSSubjectPrefix, cluster.ServiceID(cfg.ServiceName))
		if err != nil {
			return err
		}
		publisher = nats
		health.AddCheck("nats", nats.Check)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("close event publisher")
		}
	}()

	srv := network.NewServer(session.NewGameHandler(publisher), network.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RatePerSecond:  cfg.RatePerSecond,
		RateBurst:      cfg.RateBurst,
	})
	health.AddCheck("hub", srv.Hub().Check)

	var peers *cluster.PeerCache
	if len(cfg.ConsulAddrs) > 0 {
		client, err := cluster.NewConsulClient(cfg.ConsulAddrs)
		if err != nil {
			return err
		}
		reg, err := cluster.Register(client, cfg.ServiceName, cfg.Port)
		if err != nil {
			return err
		}
		defer func() {
			if err := reg.Deregister(); err != nil {
				log.Warn().Err(err).Msg("consul deregistration")
			}
		}()
		health.AddCheck("consul", cluster.LeaderCheck(client))

		peers = cluster.NewPeerCache(peerCacheTTL, func(name string) ([]string, error) {
			return cluster.HealthyInstances(client, name)
		})
		defer peers.Close()
	}

	router := srv.Router()
	router.Get("/health", health.Handler())
	router.Get("/", describe(cfg.ServiceName, srv.Hub(), health, peers))

	return srv.Listen(ctx, cfg.Addr())
}
