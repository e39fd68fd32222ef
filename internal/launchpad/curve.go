package launchpad

import (
	"math/big"
)

// Display-only quote math. The on-chain program is the sole authority on
// swap output; these estimates exist to compute default minimum-out values
// and CLI previews. They intentionally ignore rounding details the program
// may apply.

// QuoteBuyExactIn estimates the base tokens received for a quote amount,
// using the pool's virtual reserves and constant-product pricing. The trade
// fee is deducted from the input before quoting.
func QuoteBuyExactIn(pool *PoolState, amountIn, tradeFeeRateBps uint64) uint64 {
	if pool == nil || amountIn == 0 {
		return 0
	}

	amountLessFee := amountIn - feeAmount(amountIn, tradeFeeRateBps)

	virtualBase := new(big.Int).SetUint64(pool.VirtualBase)
	virtualQuote := new(big.Int).SetUint64(pool.VirtualQuote)

	// k = virtual_base * virtual_quote
	k := new(big.Int).Mul(virtualBase, virtualQuote)

	newQuote := new(big.Int).Add(virtualQuote, new(big.Int).SetUint64(amountLessFee))
	newBase := new(big.Int).Div(k, newQuote)

	out := new(big.Int).Sub(virtualBase, newBase)
	if out.Sign() < 0 {
		return 0
	}

	// Never quote more than the pool can actually sell. A pool that has
	// sold out (or past) its allocation has nothing left.
	if pool.RealBase >= pool.TotalBaseSell {
		return 0
	}
	remaining := pool.TotalBaseSell - pool.RealBase
	if out.IsUint64() && out.Uint64() <= remaining {
		return out.Uint64()
	}
	return remaining
}

// QuoteSellExactIn estimates the quote tokens received for a base amount.
// The trade fee is deducted from the output after quoting.
func QuoteSellExactIn(pool *PoolState, amountIn, tradeFeeRateBps uint64) uint64 {
	if pool == nil || amountIn == 0 {
		return 0
	}

	virtualBase := new(big.Int).SetUint64(pool.VirtualBase)
	virtualQuote := new(big.Int).SetUint64(pool.VirtualQuote)

	newBase := new(big.Int).Add(virtualBase, new(big.Int).SetUint64(amountIn))

	// out = amount_in * virtual_quote / new_base
	out := new(big.Int).Mul(new(big.Int).SetUint64(amountIn), virtualQuote)
	out.Div(out, newBase)

	if !out.IsUint64() {
		return pool.RealQuote
	}
	gross := out.Uint64()
	net := gross - feeAmount(gross, tradeFeeRateBps)

	// The pool cannot pay out more quote than it holds.
	if net > pool.RealQuote {
		return pool.RealQuote
	}
	return net
}

// ApplySlippage returns the minimum acceptable amount after a basis-point
// haircut off an expected amount. slippageBps of 500 keeps 95% of expected.
func ApplySlippage(expected, slippageBps uint64) uint64 {
	if slippageBps >= MaxFeeRateBps {
		return 0
	}

	keep := new(big.Int).SetUint64(MaxFeeRateBps - slippageBps)
	out := new(big.Int).Mul(new(big.Int).SetUint64(expected), keep)
	out.Div(out, big.NewInt(MaxFeeRateBps))
	return out.Uint64()
}

func feeAmount(amount, feeRateBps uint64) uint64 {
	fee := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(feeRateBps))
	fee.Div(fee, big.NewInt(MaxFeeRateBps))
	return fee.Uint64()
}
