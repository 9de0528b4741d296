package history

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pandodao/passkey-wallet/core"
	"github.com/shopspring/decimal"
)

const methodGetAssetTransfers = "alchemy_getAssetTransfers"

// Caller is satisfied by *rpc.Client.
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

func New(caller Caller) core.HistoryService {
	return &service{caller: caller}
}

type service struct {
	caller Caller
}

type assetTransfersParams struct {
	FromBlock        string                  `json:"fromBlock"`
	ToBlock          string                  `json:"toBlock"`
	FromAddress      string                  `json:"fromAddress,omitempty"`
	ToAddress        string                  `json:"toAddress,omitempty"`
	Category         []core.TransferCategory `json:"category"`
	ExcludeZeroValue bool                    `json:"excludeZeroValue"`
	MaxCount         hexutil.Uint64          `json:"maxCount,omitempty"`
}

type assetTransfer struct {
	BlockNum hexutil.Uint64      `json:"blockNum"`
	UniqueID string              `json:"uniqueId"`
	Hash     common.Hash         `json:"hash"`
	From     string              `json:"from"`
	To       *string             `json:"to"`
	Value    decimal.NullDecimal `json:"value"`
	Asset    *string             `json:"asset"`
	Category string              `json:"category"`
}

type assetTransfersResult struct {
	Transfers []assetTransfer `json:"transfers"`
	PageKey   string          `json:"pageKey,omitempty"`
}

// ListTransfers returns a single page; results beyond MaxCount are dropped.
func (s *service) ListTransfers(ctx context.Context, query core.TransferQuery) ([]*core.Transfer, error) {
	params := assetTransfersParams{
		FromBlock:        "0x0",
		ToBlock:          "latest",
		FromAddress:      query.FromAddress,
		ToAddress:        query.ToAddress,
		Category:         query.Categories,
		ExcludeZeroValue: query.ExcludeZeroValue,
		MaxCount:         hexutil.Uint64(query.MaxCount),
	}

	var result assetTransfersResult
	if err := s.caller.CallContext(ctx, &result, methodGetAssetTransfers, params); err != nil {
		return nil, err
	}

	transfers := make([]*core.Transfer, 0, len(result.Transfers))
	for _, t := range result.Transfers {
		transfers = append(transfers, &core.Transfer{
			UniqueID: t.UniqueID,
			Hash:     t.Hash,
			BlockNum: uint64(t.BlockNum),
			From:     t.From,
			To:       deref(t.To),
			Value:    t.Value,
			Asset:    deref(t.Asset),
			Category: core.TransferCategory(t.Category),
		})
	}

	return transfers, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
