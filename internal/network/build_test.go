package network

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"diddht/internal/dht"
	"diddht/internal/platform/config"
)

type nopProducer struct{}

func (nopProducer) ProduceSync(context.Context, ...*kgo.Record) kgo.ProduceResults {
	return nil
}

func TestBuild(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	backends := Backends{
		Redis:      rdb,
		Kafka:      nopProducer{},
		KafkaTopic: "did-dht-puts",
		Gateway:    config.GatewayConfig{URL: "http://gateway.invalid", Timeout: time.Second},
	}
	specs := []config.NetworkSpec{
		{Name: "example-network", Backend: config.BackendMemory},
		{Name: "shared", Backend: config.BackendRedis, RedisTTL: time.Hour},
		{Name: "mainline", Backend: config.BackendGateway},
		{Name: "bridged", Backend: config.BackendKafka},
		{Name: "replicated", Backend: config.BackendFanout, Backends: []string{config.BackendMemory, config.BackendKafka}},
	}

	cfgs, err := Build(specs, backends)
	require.NoError(t, err)
	require.Len(t, cfgs, len(specs))

	assert.IsType(t, &dht.Memory{}, cfgs[0].Publisher)
	assert.IsType(t, &dht.Redis{}, cfgs[1].Publisher)
	assert.IsType(t, &dht.Gateway{}, cfgs[2].Publisher)
	assert.IsType(t, &dht.Kafka{}, cfgs[3].Publisher)
	assert.IsType(t, &dht.Fanout{}, cfgs[4].Publisher)

	r, err := NewRegistry(cfgs...)
	require.NoError(t, err)
	assert.Equal(t, []string{"example-network", "shared", "mainline", "bridged", "replicated"}, r.Names())
}

func TestBuild_MissingClients(t *testing.T) {
	tests := []struct {
		name    string
		spec    config.NetworkSpec
		wantErr string
	}{
		{"redis", config.NetworkSpec{Name: "n", Backend: config.BackendRedis}, "REDIS_URL"},
		{"kafka", config.NetworkSpec{Name: "n", Backend: config.BackendKafka}, "KAFKA_BROKERS"},
		{"gateway", config.NetworkSpec{Name: "n", Backend: config.BackendGateway}, "gateway url"},
		{"fanout member", config.NetworkSpec{Name: "n", Backend: config.BackendFanout, Backends: []string{config.BackendMemory, config.BackendRedis}}, "REDIS_URL"},
		{"unknown", config.NetworkSpec{Name: "n", Backend: "ipfs"}, `unknown backend "ipfs"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build([]config.NetworkSpec{tt.spec}, Backends{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "network n")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuild_DefaultNetworks(t *testing.T) {
	cfgs, err := Build(config.DefaultNetworks(), Backends{})
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, "example-network", cfgs[0].Name)
}
