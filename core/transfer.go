package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type TransferCategory string

const (
	TransferCategoryExternal   TransferCategory = "external"
	TransferCategoryInternal   TransferCategory = "internal"
	TransferCategoryERC20      TransferCategory = "erc20"
	TransferCategoryERC721     TransferCategory = "erc721"
	TransferCategoryERC1155    TransferCategory = "erc1155"
	TransferCategorySpecialNFT TransferCategory = "specialnft"
)

// AllTransferCategories lists every category the history view asks for.
var AllTransferCategories = []TransferCategory{
	TransferCategoryERC1155,
	TransferCategoryERC20,
	TransferCategoryERC721,
	TransferCategoryExternal,
	TransferCategoryInternal,
	TransferCategorySpecialNFT,
}

type Transfer struct {
	UniqueID string              `json:"unique_id,omitempty"`
	Hash     common.Hash         `json:"hash"`
	BlockNum uint64              `json:"block_num"`
	From     string              `json:"from"`
	To       string              `json:"to,omitempty"`
	Value    decimal.NullDecimal `json:"value"`
	Asset    string              `json:"asset,omitempty"`
	Category TransferCategory    `json:"category"`
}

type TransferQuery struct {
	FromAddress      string
	ToAddress        string
	Categories       []TransferCategory
	MaxCount         int
	ExcludeZeroValue bool
}

type HistoryService interface {
	ListTransfers(ctx context.Context, query TransferQuery) ([]*Transfer, error)
}
