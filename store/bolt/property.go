package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pandodao/passkey-wallet/core"
	"go.etcd.io/bbolt"
)

const propertyBucket = "properties"

// Store keeps properties in a single BoltDB bucket.
type Store struct {
	db *bbolt.DB
}

var _ core.PropertyStore = (*Store)(nil)

// Open opens a BoltDB-backed property store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(propertyBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var raw []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(propertyBucket)).Get([]byte(key)); v != nil {
			raw = append(raw, v...)
		}
		return nil
	}); err != nil {
		return err
	}

	if raw == nil {
		return nil
	}

	return json.Unmarshal(raw, value)
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(propertyBucket)).Put([]byte(key), payload)
	})
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(propertyBucket))
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}
