// Package mongodb implements MongoDB adapters for the application.
package mongodb

import "context"

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every adapter in order.
func EnsureIndexes(ctx context.Context, adapters ...indexer) error {
	for _, a := range adapters {
		if err := a.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
