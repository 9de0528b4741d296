package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pandodao/passkey-wallet/core"
)

// Client is the subset of ethclient.Client the provider needs.
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

func New(client Client, custody core.CustodyService) core.ProviderFactory {
	return &factory{client: client, custody: custody}
}

type factory struct {
	client  Client
	custody core.CustodyService
}

func (f *factory) Connect(ctx context.Context, sub *core.SubOrganization) (core.Provider, error) {
	if sub == nil || sub.ID == "" {
		return nil, fmt.Errorf("%w: sub-organization is required", core.ErrInvalidArgument)
	}

	if !common.IsHexAddress(sub.SignWith) {
		return nil, fmt.Errorf("%w: sign-with address %q", core.ErrInvalidArgument, sub.SignWith)
	}

	chainID, err := f.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chain id: %w", err)
	}

	return &provider{
		client:         f.client,
		custody:        f.custody,
		chainID:        chainID,
		organizationID: sub.ID,
		address:        common.HexToAddress(sub.SignWith),
	}, nil
}

type provider struct {
	client         Client
	custody        core.CustodyService
	chainID        *big.Int
	organizationID string
	address        common.Address
}

func (p *provider) Address() common.Address {
	return p.address
}

func (p *provider) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return p.client.BalanceAt(ctx, address, nil)
}

func (p *provider) SendTransaction(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error) {
	nonce, err := p.client.PendingNonceAt(ctx, p.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}

	tip, err := p.client.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas tip: %w", err)
	}

	head, err := p.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("latest header: %w", err)
	}

	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := p.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  p.address,
		To:    &to,
		Value: value,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}

	unsigned := &types.DynamicFeeTx{
		ChainID:   p.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
	}

	tx, err := p.sign(ctx, unsigned)
	if err != nil {
		return common.Hash{}, err
	}

	if err := p.client.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, fmt.Errorf("broadcast transaction: %w", err)
	}

	return tx.Hash(), nil
}
