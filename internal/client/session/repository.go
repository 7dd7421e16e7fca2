// Package session persists the CLI's auth session (token pair and current
// user) in a local SQLite database, so a login survives client restarts.
package session

import "context"

// Repository is a small key-value store backing the session data.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
