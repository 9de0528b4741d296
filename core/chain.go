package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Provider is the signing handle of an authenticated session.
type Provider interface {
	Address() common.Address
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	SendTransaction(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error)
}

type ProviderFactory interface {
	Connect(ctx context.Context, sub *SubOrganization) (Provider, error)
}
