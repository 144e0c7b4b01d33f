package mocks

import "context"

// Transactor runs units of work inline, without a database.
type Transactor struct{}

func (Transactor) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
