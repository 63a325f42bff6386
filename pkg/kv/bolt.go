package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var localStorageBucket = []byte("LocalStorage")

// BoltStore keeps all keys in a single bbolt bucket.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBolt opens (or creates) the bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(localStorageBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(localStorageBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction
		value, ok = string(v), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, ok, nil
}

func (s *BoltStore) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(localStorageBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *BoltStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(localStorageBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
