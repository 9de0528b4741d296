package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// unsignedPayload serializes tx the way EIP-1559 wallets present it for
// signing: the type byte followed by the rlp list without signature values.
func unsignedPayload(tx *types.DynamicFeeTx) ([]byte, error) {
	enc, err := rlp.EncodeToBytes([]any{
		tx.ChainID,
		tx.Nonce,
		tx.GasTipCap,
		tx.GasFeeCap,
		tx.Gas,
		tx.To,
		tx.Value,
		tx.Data,
		tx.AccessList,
	})
	if err != nil {
		return nil, err
	}

	return append([]byte{types.DynamicFeeTxType}, enc...), nil
}

func (p *provider) sign(ctx context.Context, unsigned *types.DynamicFeeTx) (*types.Transaction, error) {
	payload, err := unsignedPayload(unsigned)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	signed, err := p.custody.SignTransaction(ctx, p.organizationID, p.address.Hex(), hexutil.Encode(payload))
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(common.FromHex(signed)); err != nil {
		return nil, fmt.Errorf("decode signed transaction: %w", err)
	}

	from, err := types.Sender(types.LatestSignerForChainID(p.chainID), tx)
	if err != nil {
		return nil, fmt.Errorf("recover signer: %w", err)
	}

	if from != p.address {
		return nil, fmt.Errorf("transaction signed by %s, want %s", from.Hex(), p.address.Hex())
	}

	return tx, nil
}
