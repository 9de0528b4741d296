package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Session is a point-in-time view of the account session.
type Session struct {
	Address        string `json:"address,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	LoggedIn       bool   `json:"logged_in"`
	Loading        bool   `json:"loading"`
}

// LoginMode selects how Login resolves the sub-organization to sign with.
type LoginMode interface {
	loginMode()
}

// FreshLogin asserts the passkey and asks the custody service who the caller is.
type FreshLogin struct{}

// RestoreLogin signs with a previously persisted sub-organization and address,
// skipping the passkey prompt and the wallet lookups.
type RestoreLogin struct {
	OrganizationID string
	Address        string
}

func (FreshLogin) loginMode()   {}
func (RestoreLogin) loginMode() {}

type AccountService interface {
	Signup(ctx context.Context) error
	Login(ctx context.Context, mode LoginMode) error
	Logout(ctx context.Context)
	Restore(ctx context.Context) bool
	Session() Session
	SendTransaction(ctx context.Context, to, amount string) (common.Hash, error)
	GetBalance(ctx context.Context) (string, error)
	GetTransactions(ctx context.Context) ([]*Transfer, error)
}
