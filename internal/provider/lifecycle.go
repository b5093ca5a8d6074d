package provider

import (
	"context"
	"errors"
	"strings"

	"diddht/internal/identifier/models"
	dErrors "diddht/pkg/domain-errors"
)

// Mutations of a did:dht identifier are refused as policy. The methods
// exist so the DID manager can dispatch to them and get a consistent
// CodeNotImplemented error naming the operation. None of them touches the
// key manager or a publisher.

const (
	OpDeleteIdentifier = "deleteIdentifier"
	OpAddKey           = "addKey"
	OpAddService       = "addService"
	OpRemoveKey        = "removeKey"
	OpRemoveService    = "removeService"
	OpUpdateIdentifier = "updateIdentifier"
)

func (p *Provider) DeleteIdentifier(_ context.Context, _ models.Identifier) (bool, error) {
	return false, p.notImplemented(OpDeleteIdentifier)
}

func (p *Provider) AddKey(_ context.Context, _ models.AddKeyArgs) error {
	return p.notImplemented(OpAddKey)
}

func (p *Provider) AddService(_ context.Context, _ models.AddServiceArgs) error {
	return p.notImplemented(OpAddService)
}

func (p *Provider) RemoveKey(_ context.Context, _ models.RemoveKeyArgs) error {
	return p.notImplemented(OpRemoveKey)
}

func (p *Provider) RemoveService(_ context.Context, _ models.RemoveServiceArgs) error {
	return p.notImplemented(OpRemoveService)
}

func (p *Provider) UpdateIdentifier(_ context.Context, _ models.UpdateArgs) (*models.Identifier, error) {
	return nil, p.notImplemented(OpUpdateIdentifier)
}

func (p *Provider) notImplemented(op string) error {
	p.metrics.IncrementRejected(op)
	return dErrors.New(dErrors.CodeNotImplemented, "not_implemented: "+op)
}

// NotImplementedOp extracts the operation name from a rejection error.
func NotImplementedOp(err error) (string, bool) {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code != dErrors.CodeNotImplemented {
		return "", false
	}
	return strings.CutPrefix(de.Message, "not_implemented: ")
}
