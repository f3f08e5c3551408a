package db

import "context"

// New creates and opens an adapter for path. It is a small convenience
// wrapper around NewAdapter and Open for callers that have nothing to
// configure in between.
func New(ctx context.Context, path string, opts ...Option) (*Adapter, error) {
	a := NewAdapter(path, opts...)
	if err := a.Open(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
