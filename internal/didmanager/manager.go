// Package didmanager is the agent-side registry of DID providers.
//
// It picks a provider by name for creation, stores what the provider
// returns, and routes every later operation on a stored identifier back to
// the provider that created it. A provider name may carry a network suffix:
// "did:dht:example-network" selects the "did:dht" provider and passes
// "example-network" as the network name.
package didmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"diddht/internal/identifier/models"
	"diddht/internal/identifier/store"
	"diddht/internal/kms"
	dErrors "diddht/pkg/domain-errors"
	"diddht/pkg/platform/sentinel"
	"diddht/pkg/requestcontext"
)

// IdentifierProvider creates identifiers for one DID method and owns every
// mutation of them.
type IdentifierProvider interface {
	CreateIdentifier(ctx context.Context, args models.CreateArgs) (*models.Identifier, error)
	DeleteIdentifier(ctx context.Context, id models.Identifier) (bool, error)
	AddKey(ctx context.Context, args models.AddKeyArgs) error
	AddService(ctx context.Context, args models.AddServiceArgs) error
	RemoveKey(ctx context.Context, args models.RemoveKeyArgs) error
	RemoveService(ctx context.Context, args models.RemoveServiceArgs) error
	UpdateIdentifier(ctx context.Context, args models.UpdateArgs) (*models.Identifier, error)
}

// CreateRequest selects the provider and carries the provider's arguments.
// An empty Provider selects the manager's default.
type CreateRequest struct {
	Provider string               `json:"provider,omitempty"`
	Alias    string               `json:"alias,omitempty"`
	KMS      string               `json:"kms,omitempty"`
	Options  models.CreateOptions `json:"options"`
}

// FindRequest filters stored identifiers. Empty fields match everything.
type FindRequest struct {
	Provider string `json:"provider,omitempty"`
	Alias    string `json:"alias,omitempty"`
}

type Manager struct {
	providers map[string]IdentifierProvider
	// byLength holds the provider names longest first, ties by name, so
	// prefix resolution prefers the most specific provider.
	byLength        []string
	defaultProvider string
	store           store.Store
	logger          *slog.Logger
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New builds a manager. defaultProvider must resolve to a registered
// provider, either exactly or through a network suffix.
func New(st store.Store, providers map[string]IdentifierProvider, defaultProvider string, opts ...Option) (*Manager, error) {
	if st == nil {
		return nil, errors.New("identifier store is required")
	}
	if len(providers) == 0 {
		return nil, errors.New("at least one provider is required")
	}
	for name, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("provider %q is nil", name)
		}
	}
	byLength := make([]string, 0, len(providers))
	for name := range providers {
		byLength = append(byLength, name)
	}
	sort.Slice(byLength, func(i, j int) bool {
		if len(byLength[i]) != len(byLength[j]) {
			return len(byLength[i]) > len(byLength[j])
		}
		return byLength[i] < byLength[j]
	})
	m := &Manager{
		providers:       providers,
		byLength:        byLength,
		defaultProvider: defaultProvider,
		store:           st,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, _, _, err := m.resolve(defaultProvider); err != nil {
		return nil, fmt.Errorf("default provider: %w", err)
	}
	return m, nil
}

// Providers lists the registered provider names, sorted.
func (m *Manager) Providers() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve maps a requested provider name to a registered provider. The
// returned name is the registered one; network is the suffix, if any.
func (m *Manager) resolve(requested string) (IdentifierProvider, string, string, error) {
	if p, ok := m.providers[requested]; ok {
		return p, requested, "", nil
	}
	for _, name := range m.byLength {
		if network, ok := strings.CutPrefix(requested, name+":"); ok && network != "" {
			return m.providers[name], name, network, nil
		}
	}
	return nil, "", "", dErrors.New(dErrors.CodeBadRequest, "invalid_argument: Provider not found: "+requested)
}

// Create asks the selected provider for a new identifier and stores it under
// the requested provider name and alias.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*models.Identifier, error) {
	requested := req.Provider
	if requested == "" {
		requested = m.defaultProvider
	}
	p, _, network, err := m.resolve(requested)
	if err != nil {
		return nil, err
	}

	if req.Alias != "" {
		existing, err := m.store.Find(ctx, store.Filter{Provider: requested, Alias: req.Alias})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up alias")
		}
		if len(existing) > 0 {
			return nil, dErrors.New(dErrors.CodeConflict,
				"illegal_argument: Identifier with alias: "+req.Alias+", provider: "+requested+" already exists")
		}
	}

	opts := req.Options
	if opts.NetworkName == "" {
		opts.NetworkName = network
	}
	id, err := p.CreateIdentifier(ctx, models.CreateArgs{KMS: req.KMS, Alias: req.Alias, Options: opts})
	if err != nil {
		return nil, err
	}
	id.Provider = requested
	id.Alias = req.Alias

	if err := m.store.Save(ctx, *id); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "identifier already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save identifier")
	}

	m.logger.InfoContext(ctx, "identifier stored",
		"request_id", requestcontext.RequestID(ctx),
		"subject", requestcontext.Subject(ctx),
		"did", id.DID,
		"provider", requested,
		"alias", req.Alias,
	)
	return id, nil
}

// Get returns a stored identifier.
func (m *Manager) Get(ctx context.Context, did string) (*models.Identifier, error) {
	id, err := m.store.Get(ctx, did)
	if err != nil {
		return nil, translateStoreErr(err, did)
	}
	return &id, nil
}

// GetByAlias returns the identifier stored under alias for provider. An
// empty provider means the default provider.
func (m *Manager) GetByAlias(ctx context.Context, alias, provider string) (*models.Identifier, error) {
	if provider == "" {
		provider = m.defaultProvider
	}
	found, err := m.store.Find(ctx, store.Filter{Provider: provider, Alias: alias})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up alias")
	}
	if len(found) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "Identifier not found: alias "+alias)
	}
	return &found[0], nil
}

// Find returns stored identifiers matching req.
func (m *Manager) Find(ctx context.Context, req FindRequest) ([]models.Identifier, error) {
	found, err := m.store.Find(ctx, store.Filter{Provider: req.Provider, Alias: req.Alias})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find identifiers")
	}
	return found, nil
}

// Delete asks the owning provider to delete the identifier and removes it
// from the store only when the provider agrees.
func (m *Manager) Delete(ctx context.Context, did string) (bool, error) {
	id, p, err := m.owned(ctx, did)
	if err != nil {
		return false, err
	}
	ok, err := p.DeleteIdentifier(ctx, *id)
	if err != nil || !ok {
		return false, err
	}
	if err := m.store.Delete(ctx, did); err != nil {
		return false, translateStoreErr(err, did)
	}
	return true, nil
}

func (m *Manager) AddKey(ctx context.Context, did string, key kms.Key, options map[string]any) error {
	id, p, err := m.owned(ctx, did)
	if err != nil {
		return err
	}
	return p.AddKey(ctx, models.AddKeyArgs{Identifier: *id, Key: key, Options: options})
}

func (m *Manager) AddService(ctx context.Context, did string, svc models.Service, options map[string]any) error {
	id, p, err := m.owned(ctx, did)
	if err != nil {
		return err
	}
	return p.AddService(ctx, models.AddServiceArgs{Identifier: *id, Service: svc, Options: options})
}

func (m *Manager) RemoveKey(ctx context.Context, did, kid string, options map[string]any) error {
	id, p, err := m.owned(ctx, did)
	if err != nil {
		return err
	}
	return p.RemoveKey(ctx, models.RemoveKeyArgs{Identifier: *id, KID: kid, Options: options})
}

func (m *Manager) RemoveService(ctx context.Context, did, serviceID string, options map[string]any) error {
	id, p, err := m.owned(ctx, did)
	if err != nil {
		return err
	}
	return p.RemoveService(ctx, models.RemoveServiceArgs{Identifier: *id, ID: serviceID, Options: options})
}

func (m *Manager) Update(ctx context.Context, args models.UpdateArgs) (*models.Identifier, error) {
	_, p, err := m.owned(ctx, args.DID)
	if err != nil {
		return nil, err
	}
	return p.UpdateIdentifier(ctx, args)
}

// owned loads a stored identifier and the provider it was created with.
func (m *Manager) owned(ctx context.Context, did string) (*models.Identifier, IdentifierProvider, error) {
	id, err := m.Get(ctx, did)
	if err != nil {
		return nil, nil, err
	}
	p, _, _, err := m.resolve(id.Provider)
	if err != nil {
		return nil, nil, err
	}
	return id, p, nil
}

func translateStoreErr(err error, did string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Identifier not found: "+did)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "identifier store failure")
}
