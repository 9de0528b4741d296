package core

import "context"

// Credentials identify the sub-organization and wallet of the last session.
type Credentials struct {
	Address        string `json:"wallet_address"`
	OrganizationID string `json:"organization_id"`
}

type PropertyStore interface {
	Get(ctx context.Context, key string, value any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type CredentialStore interface {
	// Load returns nil credentials when nothing complete has been saved.
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, credentials *Credentials) error
	Clear(ctx context.Context) error
}
