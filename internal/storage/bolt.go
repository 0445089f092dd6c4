// Package storage provides the local durable key/value store backing the
// vault blob and the network preference.
package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// openTimeout bounds how long Open waits for the file lock held by
	// another process.
	openTimeout = 5 * time.Second
)

// walletBucket holds every key this application persists.
var walletBucket = []byte("wallet")

// Store is the minimal persistence surface the vault and network manager
// need. Get returns a nil value (and nil error) for an absent key.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// BoltStore is a Store backed by a single-file bbolt database.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file and ensures the wallet
// bucket exists.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(walletBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create wallet bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get returns the value stored under key, or nil if the key is absent.
func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(walletBucket).Get([]byte(key))
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, overwriting any previous value.
func (s *BoltStore) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(walletBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
