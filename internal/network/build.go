package network

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"diddht/internal/dht"
	"diddht/internal/platform/config"
)

// Backends are the shared clients network publishers are built on. A nil
// client makes every network that needs it fail to build.
type Backends struct {
	Redis      *redis.Client
	Kafka      dht.Producer
	KafkaTopic string
	Gateway    config.GatewayConfig
}

// Build turns network specs into configurations, in spec order.
func Build(specs []config.NetworkSpec, b Backends) ([]Configuration, error) {
	cfgs := make([]Configuration, 0, len(specs))
	for _, spec := range specs {
		pub, err := b.publisher(spec, spec.Backend)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", spec.Name, err)
		}
		cfgs = append(cfgs, Configuration{Name: spec.Name, Publisher: pub})
	}
	return cfgs, nil
}

func (b Backends) publisher(spec config.NetworkSpec, backend string) (dht.Publisher, error) {
	switch backend {
	case config.BackendMemory:
		return dht.NewMemory(), nil
	case config.BackendRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("redis backend needs REDIS_URL")
		}
		var opts []dht.RedisOption
		if spec.RedisTTL > 0 {
			opts = append(opts, dht.WithRedisTTL(spec.RedisTTL))
		}
		return dht.NewRedis(b.Redis, opts...), nil
	case config.BackendGateway:
		url := spec.GatewayURL
		if url == "" {
			url = b.Gateway.URL
		}
		if url == "" {
			return nil, fmt.Errorf("gateway backend needs a gateway url")
		}
		timeout := spec.GatewayTimeout
		if timeout == 0 {
			timeout = b.Gateway.Timeout
		}
		var opts []dht.GatewayOption
		if timeout > 0 {
			opts = append(opts, dht.WithHTTPClient(&http.Client{Timeout: timeout}))
		}
		return dht.NewGateway(url, opts...), nil
	case config.BackendKafka:
		if b.Kafka == nil {
			return nil, fmt.Errorf("kafka backend needs KAFKA_BROKERS")
		}
		topic := spec.KafkaTopic
		if topic == "" {
			topic = b.KafkaTopic
		}
		return dht.NewKafka(b.Kafka, topic), nil
	case config.BackendFanout:
		members := make([]dht.Publisher, 0, len(spec.Backends))
		for _, m := range spec.Backends {
			if m == config.BackendFanout {
				return nil, fmt.Errorf("fanout cannot contain fanout")
			}
			pub, err := b.publisher(spec, m)
			if err != nil {
				return nil, err
			}
			members = append(members, pub)
		}
		fanout, err := dht.NewFanout(members...)
		if err != nil {
			return nil, err
		}
		return fanout, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
