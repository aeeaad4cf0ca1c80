// Package kv provides the durable key-value storage that backs the session gate.
// Every backend scopes its keys to a namespace, the server-side stand-in for a
// browser origin.
package kv

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("kv key must not be empty")

type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that depend on a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
