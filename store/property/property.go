package property

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pandodao/passkey-wallet/core"
	"github.com/pandodao/passkey-wallet/store"
	"github.com/tsenart/nap"
)

type propertyStore struct {
	db *nap.DB
}

func New(db *nap.DB) core.PropertyStore {
	return &propertyStore{db: db}
}

// Get leaves value untouched when the key is missing.
func (s *propertyStore) Get(ctx context.Context, key string, value any) error {
	var raw []byte
	if err := s.db.QueryRowContext(ctx, "SELECT `value` FROM properties WHERE `key` = ?", key).Scan(&raw); err == nil {
		return json.Unmarshal(raw, value)
	} else if store.IsErrNotFound(err) {
		return nil
	} else {
		return err
	}
}

func (s *propertyStore) Set(ctx context.Context, key string, value any) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	r, err := s.db.ExecContext(ctx, "UPDATE `properties` SET `value` = ?, `version` = `version` + 1, `updated_at` = CURRENT_TIMESTAMP WHERE `key` = ?", jsonValue, key)
	if err != nil {
		return fmt.Errorf("failed to set property: %w", err)
	}

	n, err := r.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if n > 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx, "INSERT INTO `properties` (`key`, `value`) VALUES (?, ?)", key, jsonValue)
	return err
}

func (s *propertyStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	b := sq.Delete("properties").Where(sq.Eq{"`key`": keys})
	if _, err := b.RunWith(s.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to delete properties: %w", err)
	}

	return nil
}
