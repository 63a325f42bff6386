// Package kv provides the string key/value storage that plays the role of
// browser local storage on the server.
package kv

import "context"

// Store is a string-valued key/value store. Writes to a single key are atomic;
// concurrent writers to the same key resolve as last write wins.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

type prefixedStore struct {
	inner  Store
	prefix string
}

// Prefixed returns a view of inner where every key is stored as prefix+key.
// Closing the view does not close inner.
func Prefixed(inner Store, prefix string) Store {
	return &prefixedStore{inner: inner, prefix: prefix}
}

func (s *prefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *prefixedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *prefixedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *prefixedStore) Close() error {
	return nil
}
