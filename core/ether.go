package core

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const etherDecimals = 18

// ParseEther converts a decimal ETH amount into wei. Amounts must be
// positive and carry at most 18 fraction digits.
func ParseEther(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %v", ErrInvalidArgument, amount, err)
	}

	if !d.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	wei := d.Shift(etherDecimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("%w: amount %q has more than %d decimals", ErrInvalidArgument, amount, etherDecimals)
	}

	return wei.BigInt(), nil
}

// FormatEther renders wei as a decimal ETH string without trailing zeros.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}
