package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"diddht/internal/didmanager"
	"diddht/internal/identifier/store"
	jwttoken "diddht/internal/jwt_token"
	"diddht/internal/kms"
	"diddht/internal/network"
	"diddht/internal/platform/config"
	"diddht/internal/platform/httpserver"
	"diddht/internal/platform/kafka"
	"diddht/internal/platform/logger"
	"diddht/internal/platform/metrics"
	"diddht/internal/platform/middleware"
	"diddht/internal/platform/postgres"
	"diddht/internal/platform/redis"
	"diddht/internal/provider"
	providermetrics "diddht/internal/provider/metrics"
	httptransport "diddht/internal/transport/http"
)

// main wires high-level dependencies, exposes the agent API and metrics, and
// keeps the server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

type infra struct {
	redis  *redis.Client
	db     *sql.DB
	pool   *pgxpool.Pool
	kafka  *kgo.Client
	checks map[string]httptransport.HealthCheck
}

func (i *infra) close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.pool != nil {
		i.pool.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	specs := config.DefaultNetworks()
	if cfg.NetworksFile != "" {
		loaded, err := config.LoadNetworks(cfg.NetworksFile)
		if err != nil {
			return err
		}
		specs = loaded
	}

	deps, err := connect(ctx, cfg, specs)
	if err != nil {
		return err
	}
	defer deps.close()

	backends := network.Backends{
		KafkaTopic: cfg.Kafka.Topic,
		Gateway:    cfg.Gateway,
	}
	if deps.redis != nil {
		backends.Redis = deps.redis.Client
	}
	if deps.kafka != nil {
		backends.Kafka = deps.kafka
	}
	nets, err := network.Build(specs, backends)
	if err != nil {
		return err
	}
	registry, err := network.NewRegistry(nets...)
	if err != nil {
		return err
	}

	keys, err := newKeyManager(ctx, cfg, deps, log)
	if err != nil {
		return err
	}

	prov, err := provider.New(keys, registry, cfg.Agent.DefaultKMS,
		provider.WithLogger(log),
		provider.WithMetrics(providermetrics.New()),
	)
	if err != nil {
		return err
	}

	identifiers, err := newIdentifierStore(ctx, cfg, deps)
	if err != nil {
		return err
	}
	dids, err := didmanager.New(identifiers,
		map[string]didmanager.IdentifierProvider{provider.Name: prov},
		cfg.Agent.DefaultProvider,
		didmanager.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var validator middleware.JWTValidator
	if cfg.Auth.SigningKey != "" {
		validator = jwttoken.NewJWTServiceAdapter(
			jwttoken.NewJWTService(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience))
	} else {
		log.Warn("JWT_SIGNING_KEY not set, agent API is unauthenticated")
	}

	handler := httptransport.New(dids, keys, log, metrics.New(), validator, cfg.Server.RequestTimeout)
	apiSrv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(handler, deps.checks))
	metricsSrv := httpserver.New(cfg.Server.MetricsAddr, promhttp.Handler())

	log.Info("starting diddht",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Server.MetricsAddr,
		"networks", registry.Names(),
		"providers", dids.Providers(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(ctx, apiSrv, cfg.Server.ShutdownTimeout)
	})
	g.Go(func() error {
		return httpserver.Run(ctx, metricsSrv, cfg.Server.ShutdownTimeout)
	})
	err = g.Wait()
	log.Info("shutdown complete")
	return err
}

// connect opens only the clients that the store selection and network
// backends need.
func connect(ctx context.Context, cfg config.Config, specs []config.NetworkSpec) (*infra, error) {
	deps := &infra{checks: map[string]httptransport.HealthCheck{}}

	if config.Uses(specs, config.BackendRedis) {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			deps.close()
			return nil, err
		}
		if client != nil {
			deps.redis = client
			deps.checks["redis"] = client.Health
		}
	}

	if cfg.Agent.Store == config.StorePostgres {
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			deps.close()
			return nil, err
		}
		deps.db = db
		deps.checks["postgres"] = db.PingContext

		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			deps.close()
			return nil, err
		}
		deps.pool = pool
	}

	if config.Uses(specs, config.BackendKafka) && len(cfg.Kafka.Brokers) > 0 {
		client, err := kafka.NewClient(cfg.Kafka)
		if err != nil {
			deps.close()
			return nil, err
		}
		deps.kafka = client
		deps.checks["kafka"] = client.Ping
		for _, topic := range kafkaTopics(cfg.Kafka.Topic, specs) {
			if err := kafka.EnsureTopic(ctx, client, topic, -1, -1); err != nil {
				deps.close()
				return nil, err
			}
		}
	}

	return deps, nil
}

func kafkaTopics(fallback string, specs []config.NetworkSpec) []string {
	seen := map[string]bool{}
	var topics []string
	for _, spec := range specs {
		if !config.Uses([]config.NetworkSpec{spec}, config.BackendKafka) {
			continue
		}
		topic := spec.KafkaTopic
		if topic == "" {
			topic = fallback
		}
		if !seen[topic] {
			seen[topic] = true
			topics = append(topics, topic)
		}
	}
	return topics
}

func newKeyManager(ctx context.Context, cfg config.Config, deps *infra, log *slog.Logger) (*kms.KeyManager, error) {
	secret := cfg.Agent.SecretKey
	if secret == "" {
		generated, err := kms.GenerateSecretKey()
		if err != nil {
			return nil, err
		}
		secret = generated
		log.Warn("DIDDHT_SECRET_KEY not set, sealing private keys with an ephemeral key")
	}
	box, err := kms.NewSecretBox(secret)
	if err != nil {
		return nil, err
	}

	var (
		private kms.PrivateKeyStore = kms.NewInMemoryPrivateKeyStore()
		public  kms.KeyStore        = kms.NewInMemoryKeyStore()
	)
	if deps.pool != nil {
		pgPrivate := kms.NewPostgresPrivateKeyStore(deps.pool)
		if err := pgPrivate.Migrate(ctx); err != nil {
			return nil, err
		}
		pgPublic := kms.NewPostgresKeyStore(deps.pool)
		if err := pgPublic.Migrate(ctx); err != nil {
			return nil, err
		}
		private, public = pgPrivate, pgPublic
	}

	local, err := kms.NewLocal(private, box)
	if err != nil {
		return nil, err
	}
	return kms.NewKeyManager(public,
		map[string]kms.KeyManagementSystem{config.KMSLocal: local},
		kms.WithLogger(log),
	)
}

func newIdentifierStore(ctx context.Context, cfg config.Config, deps *infra) (store.Store, error) {
	switch cfg.Agent.Store {
	case config.StorePostgres:
		if deps.db == nil {
			return nil, errors.New("postgres store selected without a database connection")
		}
		pg := store.NewPostgres(deps.db)
		if err := pg.Migrate(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return store.NewInMemoryStore(), nil
	}
}
