package dht

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Fanout replicates every Put to all of its backends concurrently. A Put
// succeeds only if every backend stored the value; the first failure cancels
// the rest.
type Fanout struct {
	backends []Publisher
}

// NewFanout combines backends into one publisher. At least one is required.
func NewFanout(backends ...Publisher) (*Fanout, error) {
	if len(backends) == 0 {
		return nil, errors.New("fanout requires at least one backend")
	}
	for i, b := range backends {
		if b == nil {
			return nil, fmt.Errorf("fanout backend %d is nil", i)
		}
	}
	return &Fanout{backends: backends}, nil
}

func (f *Fanout) Put(ctx context.Context, value []byte) (CommitHash, error) {
	if err := checkValue(value); err != nil {
		return "", err
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, b := range f.backends {
		g.Go(func() error {
			_, err := b.Put(ctx, value)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return Target(value), nil
}

// Get returns the first value any backend can produce, in backend order.
func (f *Fanout) Get(ctx context.Context, key []byte) ([]byte, error) {
	var errs []error
	for _, b := range f.backends {
		v, err := b.Get(ctx, key)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
