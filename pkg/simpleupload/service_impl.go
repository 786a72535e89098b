package simpleupload

import (
	"context"
	"fmt"
)

// resolver implements the Resolver interface
type resolver struct {
	probers map[SchemeClass]Prober
}

// Option represents a functional option for configuring the resolver
type Option func(*resolver)

// WithProber registers a prober for a scheme class
func WithProber(class SchemeClass, p Prober) Option {
	return func(r *resolver) {
		if r.probers == nil {
			r.probers = make(map[SchemeClass]Prober)
		}
		r.probers[class] = p
	}
}

// New creates a new resolver instance with the given options
func New(options ...Option) (Resolver, error) {
	r := &resolver{
		probers: make(map[SchemeClass]Prober),
	}

	for _, option := range options {
		option(r)
	}

	if len(r.probers) == 0 {
		return nil, fmt.Errorf("at least one prober is required")
	}

	return r, nil
}

func (r *resolver) Resolve(ctx context.Context, req ResolveRequest) (*ResourceMetadata, error) {
	if req.URL == "" {
		return nil, ErrEmptyURL
	}

	class := ClassifyURL(req.URL)
	p, ok := r.probers[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProberNotRegistered, class)
	}

	return p.Probe(ctx, req.URL, ProbeOptions{BlockLocalAddrs: req.BlockLocalAddrs})
}

func (r *resolver) RegisterProber(class SchemeClass, p Prober) {
	r.probers[class] = p
}

func (r *resolver) GetProber(class SchemeClass) (Prober, error) {
	p, ok := r.probers[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProberNotRegistered, class)
	}
	return p, nil
}
