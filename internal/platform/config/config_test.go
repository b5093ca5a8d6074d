package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DIDDHT_ADDR", "DIDDHT_STORE", "DIDDHT_SECRET_KEY", "KAFKA_BROKERS", "DIDDHT_NETWORKS_FILE", "JWT_SIGNING_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, ":9090", cfg.Server.MetricsAddr)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "did:dht:example-network", cfg.Agent.DefaultProvider)
	assert.Equal(t, "local", cfg.Agent.DefaultKMS)
	assert.Equal(t, StoreMemory, cfg.Agent.Store)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "did-dht-puts", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Auth.SigningKey)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DIDDHT_ADDR", ":7000")
	t.Setenv("DIDDHT_STORE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/diddht")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("REDIS_POOL_SIZE", "42")
	t.Setenv("DHT_GATEWAY_TIMEOUT", "2s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, StorePostgres, cfg.Agent.Store)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 42, cfg.Redis.PoolSize)
	assert.Equal(t, 2*time.Second, cfg.Gateway.Timeout)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad duration", map[string]string{"DIDDHT_REQUEST_TIMEOUT": "soon"}, "DIDDHT_REQUEST_TIMEOUT"},
		{"bad integer", map[string]string{"REDIS_POOL_SIZE": "many"}, "REDIS_POOL_SIZE"},
		{"unknown store", map[string]string{"DIDDHT_STORE": "sqlite"}, `unknown DIDDHT_STORE "sqlite"`},
		{"postgres without dsn", map[string]string{"DIDDHT_STORE": "postgres", "DATABASE_URL": ""}, "DATABASE_URL is required"},
		{"short secret key", map[string]string{"DIDDHT_SECRET_KEY": "abcd"}, "DIDDHT_SECRET_KEY"},
		{"unknown default kms", map[string]string{"DIDDHT_DEFAULT_KMS": "vault"}, `unknown DIDDHT_DEFAULT_KMS "vault"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseNetworks(t *testing.T) {
	doc := []byte(`
networks:
  - name: example-network
    backend: memory
  - name: mainline
    backend: fanout
    backends: [gateway, kafka]
    gateway_url: https://dht-gateway.internal
    gateway_timeout: 3s
  - name: shared
    backend: redis
    redis_ttl: 1h
`)
	specs, err := ParseNetworks(doc)
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "example-network", specs[0].Name)
	assert.Equal(t, []string{BackendGateway, BackendKafka}, specs[1].Backends)
	assert.Equal(t, 3*time.Second, specs[1].GatewayTimeout)
	assert.Equal(t, time.Hour, specs[2].RedisTTL)

	assert.True(t, Uses(specs, BackendKafka))
	assert.True(t, Uses(specs, BackendRedis))
	assert.False(t, Uses(DefaultNetworks(), BackendRedis))
}

func TestParseNetworksErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", `networks: []`, "defines no networks"},
		{"missing name", "networks:\n  - backend: memory\n", "name is required"},
		{"duplicate", "networks:\n  - {name: a, backend: memory}\n  - {name: a, backend: redis}\n", "duplicate name"},
		{"unknown backend", "networks:\n  - {name: a, backend: ipfs}\n", `unknown backend "ipfs"`},
		{"empty fanout", "networks:\n  - {name: a, backend: fanout}\n", "at least one backend"},
		{"nested fanout", "networks:\n  - {name: a, backend: fanout, backends: [fanout]}\n", "invalid fanout member"},
		{"members outside fanout", "networks:\n  - {name: a, backend: redis, backends: [memory]}\n", "only valid for fanout"},
		{"not yaml", "networks: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNetworks([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadNetworks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("networks:\n  - {name: example-network, backend: memory}\n"), 0o600))

	specs, err := LoadNetworks(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultNetworks(), specs)

	_, err = LoadNetworks(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read networks file")
}
