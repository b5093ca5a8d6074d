// Package config loads service settings from the environment. In
// development, .env and .env.local are read first; variables already set in
// the process environment always win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	strutil "diddht/pkg/platform/strings"
)

func init() {
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", file, err)
		}
	}
}

// Store backends for identifiers and sealed private keys.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// KMSLocal is the name of the in-process key management system, the only
// one the server registers.
const KMSLocal = "local"

// Config is the full service configuration.
type Config struct {
	Server   Server
	Log      Log
	Agent    Agent
	Auth     Auth
	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Gateway  GatewayConfig
	// NetworksFile is a YAML network definition file. Empty means the
	// single in-memory network returned by DefaultNetworks.
	NetworksFile string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	MetricsAddr     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type Log struct {
	Level  string
	Format string
}

// Agent configures the DID manager and key manager.
type Agent struct {
	DefaultProvider string
	DefaultKMS      string
	// SecretKey is the 32-byte hex key sealing private keys at rest.
	SecretKey string
	Store     string
}

// Auth enables bearer token auth on the agent API when SigningKey is set.
type Auth struct {
	SigningKey string
	Issuer     string
	Audience   string
}

// RedisConfig configures the Redis client backing redis networks.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type PostgresConfig struct {
	DSN string
}

// KafkaConfig configures the producer behind kafka networks.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// GatewayConfig is the default for gateway networks that omit url/timeout.
type GatewayConfig struct {
	URL     string
	Timeout time.Duration
}

const (
	defaultAddr            = ":8080"
	defaultMetricsAddr     = ":9090"
	defaultProvider        = "did:dht:example-network"
	defaultKMS             = KMSLocal
	defaultKafkaTopic      = "did-dht-puts"
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultGatewayTimeout  = 10 * time.Second
)

// FromEnv builds a Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	p := parser{}

	cfg.Server = Server{
		Addr:            envOr("DIDDHT_ADDR", defaultAddr),
		MetricsAddr:     envOr("DIDDHT_METRICS_ADDR", defaultMetricsAddr),
		RequestTimeout:  p.duration("DIDDHT_REQUEST_TIMEOUT", defaultRequestTimeout),
		ShutdownTimeout: p.duration("DIDDHT_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}
	cfg.Log = Log{
		Level:  envOr("LOG_LEVEL", "info"),
		Format: envOr("LOG_FORMAT", "json"),
	}
	cfg.Agent = Agent{
		DefaultProvider: envOr("DIDDHT_DEFAULT_PROVIDER", defaultProvider),
		DefaultKMS:      envOr("DIDDHT_DEFAULT_KMS", defaultKMS),
		SecretKey:       os.Getenv("DIDDHT_SECRET_KEY"),
		Store:           strings.ToLower(envOr("DIDDHT_STORE", StoreMemory)),
	}
	cfg.Auth = Auth{
		SigningKey: os.Getenv("JWT_SIGNING_KEY"),
		Issuer:     envOr("JWT_ISSUER", "diddht"),
		Audience:   envOr("JWT_AUDIENCE", "diddht-agent"),
	}
	cfg.Redis = RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
		MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
	cfg.Postgres = PostgresConfig{DSN: os.Getenv("DATABASE_URL")}
	cfg.Kafka = KafkaConfig{
		Brokers: strutil.SplitCSV(os.Getenv("KAFKA_BROKERS")),
		Topic:   envOr("KAFKA_TOPIC", defaultKafkaTopic),
	}
	cfg.Gateway = GatewayConfig{
		URL:     os.Getenv("DHT_GATEWAY_URL"),
		Timeout: p.duration("DHT_GATEWAY_TIMEOUT", defaultGatewayTimeout),
	}
	cfg.NetworksFile = os.Getenv("DIDDHT_NETWORKS_FILE")

	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Agent.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when DIDDHT_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown DIDDHT_STORE %q", c.Agent.Store)
	}
	if c.Agent.DefaultKMS != KMSLocal {
		return fmt.Errorf("unknown DIDDHT_DEFAULT_KMS %q: only %q is available", c.Agent.DefaultKMS, KMSLocal)
	}
	if c.Agent.SecretKey != "" && len(c.Agent.SecretKey) != 64 {
		return fmt.Errorf("DIDDHT_SECRET_KEY must be 32 bytes of hex")
	}
	return nil
}

// parser keeps the first conversion error so FromEnv reads top to bottom.
type parser struct {
	err error
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return d
}

func (p *parser) integer(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return n
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

