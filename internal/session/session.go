// Package session holds short-lived per-session values, such as the order
// draft carried from the order summary to the payment step.
package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session key not found")

type Store interface {
	Put(ctx context.Context, sessionID, key, value string) error
	Get(ctx context.Context, sessionID, key string) (string, error)
	Delete(ctx context.Context, sessionID, key string) error
}
