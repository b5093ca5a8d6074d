package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Network backends a NetworkSpec may name.
const (
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendGateway = "gateway"
	BackendKafka   = "kafka"
	BackendFanout  = "fanout"
)

// NetworksFile is the YAML network definition file:
//
//	networks:
//	  - name: example-network
//	    backend: memory
//	  - name: mainline
//	    backend: fanout
//	    backends: [gateway, kafka]
//	    gateway_url: https://dht-gateway.internal
type NetworksFile struct {
	Networks []NetworkSpec `yaml:"networks"`
}

// NetworkSpec describes one DHT network and the publisher writing into it.
// Unset gateway, redis and kafka fields fall back to the service-wide
// settings.
type NetworkSpec struct {
	Name    string `yaml:"name"`
	Backend string `yaml:"backend"`
	// Backends lists the members of a fanout network.
	Backends       []string      `yaml:"backends,omitempty"`
	GatewayURL     string        `yaml:"gateway_url,omitempty"`
	GatewayTimeout time.Duration `yaml:"gateway_timeout,omitempty"`
	RedisTTL       time.Duration `yaml:"redis_ttl,omitempty"`
	KafkaTopic     string        `yaml:"kafka_topic,omitempty"`
}

// DefaultNetworks is used when no networks file is configured.
func DefaultNetworks() []NetworkSpec {
	return []NetworkSpec{{Name: "example-network", Backend: BackendMemory}}
}

// LoadNetworks reads and validates a networks file.
func LoadNetworks(path string) ([]NetworkSpec, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - operator supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read networks file: %w", err)
	}
	return ParseNetworks(data)
}

// ParseNetworks decodes and validates a networks document.
func ParseNetworks(data []byte) ([]NetworkSpec, error) {
	var file NetworksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse networks file: %w", err)
	}
	if len(file.Networks) == 0 {
		return nil, fmt.Errorf("networks file defines no networks")
	}
	seen := make(map[string]bool, len(file.Networks))
	for i, n := range file.Networks {
		if n.Name == "" {
			return nil, fmt.Errorf("network %d: name is required", i)
		}
		if seen[n.Name] {
			return nil, fmt.Errorf("network %s: duplicate name", n.Name)
		}
		seen[n.Name] = true
		if err := validateBackend(n); err != nil {
			return nil, fmt.Errorf("network %s: %w", n.Name, err)
		}
	}
	return file.Networks, nil
}

func validateBackend(n NetworkSpec) error {
	switch n.Backend {
	case BackendMemory, BackendRedis, BackendGateway, BackendKafka:
		if len(n.Backends) > 0 {
			return fmt.Errorf("backends is only valid for fanout")
		}
		return nil
	case BackendFanout:
		if len(n.Backends) == 0 {
			return fmt.Errorf("fanout needs at least one backend")
		}
		for _, b := range n.Backends {
			switch b {
			case BackendMemory, BackendRedis, BackendGateway, BackendKafka:
			default:
				return fmt.Errorf("invalid fanout member %q", b)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown backend %q", n.Backend)
	}
}

// Uses reports whether any network needs backend, directly or as a fanout
// member.
func Uses(specs []NetworkSpec, backend string) bool {
	for _, n := range specs {
		if n.Backend == backend {
			return true
		}
		for _, b := range n.Backends {
			if b == backend {
				return true
			}
		}
	}
	return false
}
