package core

import "context"

type SubOrganization struct {
	ID       string `json:"id"`
	WalletID string `json:"wallet_id,omitempty"`
	SignWith string `json:"sign_with"`
}

type Wallet struct {
	ID   string `json:"wallet_id"`
	Name string `json:"wallet_name"`
}

type WalletAccount struct {
	WalletID string `json:"wallet_id"`
	Address  string `json:"address"`
	Path     string `json:"path"`
}

type SubOrganizationInput struct {
	Name           string
	RootUserName   string
	Attestation    *Attestation
	WalletName     string
	MnemonicLength int
	DerivationPath string
	TimestampMs    int64
}

// Registrar creates sub-organizations under the parent organization and is
// stamped with its API key.
type Registrar interface {
	CreateSubOrganization(ctx context.Context, input *SubOrganizationInput) (*SubOrganization, error)
}

type CustodyService interface {
	Registrar
	Whoami(ctx context.Context) (string, error)
	ListWallets(ctx context.Context, organizationID string) ([]*Wallet, error)
	ListWalletAccounts(ctx context.Context, organizationID, walletID string) ([]*WalletAccount, error)
	SignTransaction(ctx context.Context, organizationID, signWith, unsignedTx string) (string, error)
}
