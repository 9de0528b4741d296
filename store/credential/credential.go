package credential

import (
	"context"
	"errors"

	"github.com/pandodao/passkey-wallet/core"
)

const (
	keyWalletAddress  = "walletAddress"
	keyOrganizationID = "organizationId"
)

func New(properties core.PropertyStore) core.CredentialStore {
	return &credentialStore{properties: properties}
}

type credentialStore struct {
	properties core.PropertyStore
}

func (s *credentialStore) Load(ctx context.Context) (*core.Credentials, error) {
	var c core.Credentials
	if err := s.properties.Get(ctx, keyWalletAddress, &c.Address); err != nil {
		return nil, &core.PersistenceError{Op: "load", Err: err}
	}

	if err := s.properties.Get(ctx, keyOrganizationID, &c.OrganizationID); err != nil {
		return nil, &core.PersistenceError{Op: "load", Err: err}
	}

	if c.Address == "" || c.OrganizationID == "" {
		return nil, nil
	}

	return &c, nil
}

func (s *credentialStore) Save(ctx context.Context, c *core.Credentials) error {
	if c == nil || c.Address == "" || c.OrganizationID == "" {
		return &core.PersistenceError{Op: "save", Err: errors.New("incomplete credentials")}
	}

	if err := s.properties.Set(ctx, keyWalletAddress, c.Address); err != nil {
		return &core.PersistenceError{Op: "save", Err: err}
	}

	if err := s.properties.Set(ctx, keyOrganizationID, c.OrganizationID); err != nil {
		return &core.PersistenceError{Op: "save", Err: err}
	}

	return nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	if err := s.properties.Delete(ctx, keyWalletAddress, keyOrganizationID); err != nil {
		return &core.PersistenceError{Op: "clear", Err: err}
	}

	return nil
}
