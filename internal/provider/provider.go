// Package provider creates did:dht identifiers.
//
// CreateIdentifier resolves the target network, asks the key manager for an
// Ed25519 key, derives the DID and its resolution records from the public key
// and publishes the records to the network's DHT. Every mutation of an
// existing identifier is rejected: the identity key is the DID, so there is
// nothing that could change without changing the identifier itself.
package provider

import (
	"context"
	"crypto/ed25519"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"diddht/internal/didht"
	"diddht/internal/identifier/models"
	"diddht/internal/kms"
	"diddht/internal/network"
	"diddht/internal/provider/metrics"
	dErrors "diddht/pkg/domain-errors"
	"diddht/pkg/requestcontext"
)

// Name is the provider name the DID manager registers this provider under.
const Name = "did:dht"

// KeyManager creates identity keys in a named KMS.
type KeyManager interface {
	CreateKey(ctx context.Context, kmsName string, t kms.KeyType) (kms.Key, error)
}

// Networks resolves a network name to its configuration.
type Networks interface {
	Resolve(name string) (network.Configuration, bool)
}

// Provider is stateless across calls; it is safe for concurrent use.
type Provider struct {
	keys       KeyManager
	networks   Networks
	defaultKMS string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) {
		p.metrics = m
	}
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(p *Provider) {
		if t != nil {
			p.tracer = t
		}
	}
}

// New constructs a provider. defaultKMS is used when a request names no KMS.
func New(keys KeyManager, networks Networks, defaultKMS string, opts ...Option) (*Provider, error) {
	if keys == nil {
		return nil, errors.New("key manager is required")
	}
	if networks == nil {
		return nil, errors.New("network registry is required")
	}
	if defaultKMS == "" {
		return nil, errors.New("default kms is required")
	}
	p := &Provider{
		keys:       keys,
		networks:   networks,
		defaultKMS: defaultKMS,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:     otel.Tracer("diddht/internal/provider"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CreateIdentifier creates and publishes a new did:dht identifier.
//
// The network is resolved before any key is generated. Key manager errors are
// returned unchanged. A publish failure returns a CodePublishFailed error and
// no identifier; the key already created is not rolled back.
func (p *Provider) CreateIdentifier(ctx context.Context, args models.CreateArgs) (*models.Identifier, error) {
	ctx, span := p.tracer.Start(ctx, "provider.CreateIdentifier")
	defer span.End()

	requested := args.Options.NetworkName
	net, ok := p.networks.Resolve(requested)
	if !ok {
		err := dErrors.New(dErrors.CodeInvalidNetwork, invalidNetworkPrefix+requested)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("dht.network", net.Name))

	kmsName := args.KMS
	if kmsName == "" {
		kmsName = p.defaultKMS
	}
	key, err := p.createKey(ctx, kmsName)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "key generation failed")
		return nil, err
	}

	pub, err := identityPublicKey(key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid identity key")
		p.logger.ErrorContext(ctx, "key manager returned an unusable identity key",
			"request_id", requestcontext.RequestID(ctx),
			"kms", kmsName,
			"kid", key.KID,
			"error", err,
		)
		return nil, err
	}
	did := didht.DID(pub)
	envelope := didht.Envelope(didht.Records(pub))

	hash, err := p.publish(ctx, net, envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		p.logger.ErrorContext(ctx, "did publish failed",
			"request_id", requestcontext.RequestID(ctx),
			"network", net.Name,
			"did", did,
			"kid", key.KID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodePublishFailed,
			"Failed to store DID Document in DHT: "+err.Error())
	}

	p.metrics.IncrementCreated(net.Name)
	p.logger.InfoContext(ctx, "did created",
		"request_id", requestcontext.RequestID(ctx),
		"network", net.Name,
		"did", did,
		"commit", hash,
	)

	return &models.Identifier{
		DID:             did,
		ControllerKeyID: key.KID,
		Keys:            []kms.Key{key},
		Services:        []models.Service{},
	}, nil
}

func (p *Provider) createKey(ctx context.Context, kmsName string) (kms.Key, error) {
	ctx, span := p.tracer.Start(ctx, "kms.CreateKey", trace.WithAttributes(attribute.String("kms", kmsName)))
	defer span.End()
	key, err := p.keys.CreateKey(ctx, kmsName, kms.KeyTypeEd25519)
	if err != nil {
		return kms.Key{}, err
	}
	p.metrics.IncrementKeysCreated(kmsName)
	return key, nil
}

const invalidNetworkPrefix = "invalid_network: No configuration found for network "

// InvalidNetworkName extracts the requested network name from an
// invalid_network error.
func InvalidNetworkName(err error) (string, bool) {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code != dErrors.CodeInvalidNetwork {
		return "", false
	}
	return strings.CutPrefix(de.Message, invalidNetworkPrefix)
}

// identityPublicKey returns the raw public key of an Ed25519 identity key.
// Anything else would yield a DID that does not decode back to a key.
func identityPublicKey(key kms.Key) ([]byte, error) {
	if key.Type != kms.KeyTypeEd25519 {
		return nil, dErrors.Newf(dErrors.CodeInternal,
			"identity key %s has type %q, want %q", key.KID, key.Type, kms.KeyTypeEd25519)
	}
	pub, err := key.PublicKey()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "identity key has an invalid public key")
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, dErrors.Newf(dErrors.CodeInternal,
			"identity key %s has a %d-byte public key, want %d", key.KID, len(pub), ed25519.PublicKeySize)
	}
	return pub, nil
}

func (p *Provider) publish(ctx context.Context, net network.Configuration, envelope []byte) (string, error) {
	ctx, span := p.tracer.Start(ctx, "dht.Put", trace.WithAttributes(
		attribute.String("dht.network", net.Name),
		attribute.Int("dht.value_size", len(envelope)),
	))
	defer span.End()

	start := time.Now()
	hash, err := net.Publisher.Put(ctx, envelope)
	p.metrics.ObservePublish(net.Name, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}
