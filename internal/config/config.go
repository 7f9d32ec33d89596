package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultServiceName   = "twentyq"
	defaultPort          = 3000
	defaultLogLevel      = "info"
	defaultRatePerSecond = 5
	defaultRateBurst     = 10
	defaultSubjectPrefix = "twentyq"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Config holds every runtime setting of the server.
type Config struct {
	ServiceName string
	Port        int

	LogLevel  string
	LogPretty bool

	// AllowedOrigins is checked by the WebSocket upgrader. Empty accepts any origin.
	AllowedOrigins []string

	RatePerSecond float64
	RateBurst     int

	// ConsulAddrs and NATSURL are optional; empty disables the integration.
	ConsulAddrs       []string
	NATSURL           string
	NATSSubjectPrefix string
}

func Default() Config {
	return Config{
		ServiceName:       defaultServiceName,
		Port:              defaultPort,
		LogLevel:          defaultLogLevel,
		RatePerSecond:     defaultRatePerSecond,
		RateBurst:         defaultRateBurst,
		NATSSubjectPrefix: defaultSubjectPrefix,
	}
}

// Load reads the configuration from the environment on top of Default.
func Load() (Config, error) {
	cfg := Default()

	if raw := os.Getenv("SERVICE_NAME"); raw != "" {
		cfg.ServiceName = raw
	}
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}
	if raw := os.Getenv("LOG_PRETTY"); raw != "" {
		pretty, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_PRETTY: %w", err)
		}
		cfg.LogPretty = pretty
	}
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	if raw := os.Getenv("RATE_LIMIT_PER_SEC"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_PER_SEC %q", raw)
		}
		cfg.RatePerSecond = rps
	}
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_BURST %q", raw)
		}
		cfg.RateBurst = burst
	}

	cfg.ConsulAddrs = splitList(os.Getenv("CONSUL_HTTP_ADDR"))
	cfg.NATSURL = strings.TrimSpace(os.Getenv("NATS_URL"))
	if raw := os.Getenv("NATS_SUBJECT_PREFIX"); raw != "" {
		cfg.NATSSubjectPrefix = strings.Trim(raw, ". ")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
