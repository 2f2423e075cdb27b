package repository

import "context"

// StateRepository is a small key/value store for app state that outlives
// a session, such as the Home filter.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
