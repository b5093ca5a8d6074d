package models

import (
	"diddht/internal/kms"
)

// Identifier is a created DID together with the keys and services that
// belong to it. Provider and Alias are filled in by the DID manager.
type Identifier struct {
	DID             string    `json:"did"`
	Provider        string    `json:"provider,omitempty"`
	Alias           string    `json:"alias,omitempty"`
	ControllerKeyID string    `json:"controllerKeyId"`
	Keys            []kms.Key `json:"keys"`
	Services        []Service `json:"services"`
}

// Service is a DID document service entry.
type Service struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
	Description     string `json:"description,omitempty"`
}

// KeyIDs returns the ids of the identifier's keys, in order.
func (i Identifier) KeyIDs() []string {
	ids := make([]string, len(i.Keys))
	for n, k := range i.Keys {
		ids[n] = k.KID
	}
	return ids
}

// CreateArgs are the inputs to identifier creation. An empty KMS selects the
// provider's default.
type CreateArgs struct {
	KMS     string        `json:"kms,omitempty"`
	Alias   string        `json:"alias,omitempty"`
	Options CreateOptions `json:"options"`
}

// CreateOptions carries provider-specific creation options.
type CreateOptions struct {
	NetworkName string `json:"networkName,omitempty"`
}

// AddKeyArgs are the inputs to adding a key to an identifier.
type AddKeyArgs struct {
	Identifier Identifier     `json:"identifier"`
	Key        kms.Key        `json:"key"`
	Options    map[string]any `json:"options,omitempty"`
}

// AddServiceArgs are the inputs to adding a service to an identifier.
type AddServiceArgs struct {
	Identifier Identifier     `json:"identifier"`
	Service    Service        `json:"service"`
	Options    map[string]any `json:"options,omitempty"`
}

// RemoveKeyArgs are the inputs to removing a key from an identifier.
type RemoveKeyArgs struct {
	Identifier Identifier     `json:"identifier"`
	KID        string         `json:"kid"`
	Options    map[string]any `json:"options,omitempty"`
}

// RemoveServiceArgs are the inputs to removing a service from an identifier.
type RemoveServiceArgs struct {
	Identifier Identifier     `json:"identifier"`
	ID         string         `json:"id"`
	Options    map[string]any `json:"options,omitempty"`
}

// UpdateArgs are the inputs to replacing parts of a DID document.
type UpdateArgs struct {
	DID      string         `json:"did"`
	Document map[string]any `json:"document"`
	Options  map[string]any `json:"options,omitempty"`
}
