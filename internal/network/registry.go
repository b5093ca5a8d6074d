// Package network maps DHT network names to the publishers that write into them.
package network

import (
	"errors"
	"fmt"

	"diddht/internal/dht"
)

// Configuration binds a network name to its publisher.
type Configuration struct {
	Name      string
	Publisher dht.Publisher
}

// Registry is an immutable, ordered set of network configurations.
// It is safe for concurrent use.
type Registry struct {
	networks []Configuration
	byName   map[string]int
}

// NewRegistry validates cfgs eagerly and keeps them in the given order.
// Names must be non-empty and unique, publishers non-nil.
func NewRegistry(cfgs ...Configuration) (*Registry, error) {
	r := &Registry{
		networks: make([]Configuration, 0, len(cfgs)),
		byName:   make(map[string]int, len(cfgs)),
	}
	for _, cfg := range cfgs {
		if cfg.Name == "" {
			return nil, errors.New("network name is required")
		}
		if cfg.Publisher == nil {
			return nil, fmt.Errorf("network %s: publisher is required", cfg.Name)
		}
		if _, exists := r.byName[cfg.Name]; exists {
			return nil, fmt.Errorf("network %s already registered", cfg.Name)
		}
		r.byName[cfg.Name] = len(r.networks)
		r.networks = append(r.networks, cfg)
	}
	return r, nil
}

// Resolve returns the configuration named name. An empty name selects the
// first registered network. Matching is exact and case-sensitive.
func (r *Registry) Resolve(name string) (Configuration, bool) {
	if name == "" {
		if len(r.networks) == 0 {
			return Configuration{}, false
		}
		return r.networks[0], true
	}
	i, ok := r.byName[name]
	if !ok {
		return Configuration{}, false
	}
	return r.networks[i], true
}

// Names lists network names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.networks))
	for i, n := range r.networks {
		names[i] = n.Name
	}
	return names
}

// Len reports how many networks are registered.
func (r *Registry) Len() int {
	return len(r.networks)
}
