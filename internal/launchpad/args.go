package launchpad

import (
	"encoding/binary"
	"fmt"

	"github.com/lugondev/go-launchpad/internal/errors"
)

// CurveKind selects the bonding-curve shape for a new pool. The set is
// closed: the program knows exactly these three variants.
type CurveKind uint8

const (
	CurveConstant CurveKind = iota
	CurveFixed
	CurveLinear
)

func (k CurveKind) String() string {
	switch k {
	case CurveConstant:
		return "constant"
	case CurveFixed:
		return "fixed"
	case CurveLinear:
		return "linear"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// MintParams describes the token being launched.
type MintParams struct {
	Decimals uint8
	Name     string
	Symbol   string
	URI      string
}

// CurveParams is the tagged union of curve configurations. Kind selects the
// variant; the Constant variant carries TotalBaseSell, the Fixed and Linear
// variants omit it on the wire.
type CurveParams struct {
	Kind                  CurveKind
	Supply                uint64
	TotalBaseSell         uint64
	TotalQuoteFundRaising uint64
	MigrateType           uint8
}

// VestingParams describes creator vesting for a new pool.
type VestingParams struct {
	TotalLockedAmount uint64
	CliffPeriod       uint64
	UnlockPeriod      uint64
}

// InitializeArgs are the arguments of the initialize instruction.
type InitializeArgs struct {
	Mint    MintParams
	Curve   CurveParams
	Vesting VestingParams
}

// BuyExactInArgs are the arguments of the buy_exact_in instruction.
type BuyExactInArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
	ShareFeeRate     uint64
}

// SellExactInArgs are the arguments of the sell_exact_in instruction.
type SellExactInArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
	ShareFeeRate     uint64
}

// swapArgsSize is discriminator + amountIn + minimumAmountOut + shareFeeRate.
const swapArgsSize = 8 + 8 + 8 + 8

// Offset-based writers. The wire format is fixed little-endian with
// u32-length-prefixed strings; field order must match the program's IDL.

func putDiscriminator(data []byte, disc [8]byte, offset *int) {
	copy(data[*offset:], disc[:])
	*offset += 8
}

func putUint8(data []byte, v uint8, offset *int) {
	data[*offset] = v
	*offset++
}

func putUint64(data []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(data[*offset:], v)
	*offset += 8
}

func putString(data []byte, s string, offset *int) {
	binary.LittleEndian.PutUint32(data[*offset:], uint32(len(s)))
	*offset += 4
	copy(data[*offset:], s)
	*offset += len(s)
}

func stringSize(s string) int {
	return 4 + len(s)
}

// Validate checks the args against the wire-format limits. Violations are
// encoding errors: they are deterministic and must be caught before a bundle
// is built, not discovered on-chain.
func (a *BuyExactInArgs) Validate() error {
	if a.AmountIn == 0 {
		return errors.EncodingFailed("buy amount_in must be greater than zero")
	}
	if a.ShareFeeRate > MaxFeeRateBps {
		return errors.EncodingFailed(fmt.Sprintf("share_fee_rate %d exceeds %d bps", a.ShareFeeRate, MaxFeeRateBps))
	}
	return nil
}

// Encode serializes the args as discriminator ++ fields.
func (a *BuyExactInArgs) Encode() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var offset int
	data := make([]byte, swapArgsSize)
	putDiscriminator(data, DiscriminatorBuyExactIn, &offset)
	putUint64(data, a.AmountIn, &offset)
	putUint64(data, a.MinimumAmountOut, &offset)
	putUint64(data, a.ShareFeeRate, &offset)
	return data, nil
}

// Validate checks the args against the wire-format limits.
func (a *SellExactInArgs) Validate() error {
	if a.AmountIn == 0 {
		return errors.EncodingFailed("sell amount_in must be greater than zero")
	}
	if a.ShareFeeRate > MaxFeeRateBps {
		return errors.EncodingFailed(fmt.Sprintf("share_fee_rate %d exceeds %d bps", a.ShareFeeRate, MaxFeeRateBps))
	}
	return nil
}

// Encode serializes the args as discriminator ++ fields.
func (a *SellExactInArgs) Encode() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var offset int
	data := make([]byte, swapArgsSize)
	putDiscriminator(data, DiscriminatorSellExactIn, &offset)
	putUint64(data, a.AmountIn, &offset)
	putUint64(data, a.MinimumAmountOut, &offset)
	putUint64(data, a.ShareFeeRate, &offset)
	return data, nil
}

// Validate checks mint, curve, and vesting parameters against the wire-format
// limits.
func (a *InitializeArgs) Validate() error {
	if a.Mint.Name == "" {
		return errors.EncodingFailed("token name cannot be empty")
	}
	if len(a.Mint.Name) > MaxNameLen {
		return errors.EncodingFailed(fmt.Sprintf("token name exceeds %d bytes", MaxNameLen))
	}
	if a.Mint.Symbol == "" {
		return errors.EncodingFailed("token symbol cannot be empty")
	}
	if len(a.Mint.Symbol) > MaxSymbolLen {
		return errors.EncodingFailed(fmt.Sprintf("token symbol exceeds %d bytes", MaxSymbolLen))
	}
	if len(a.Mint.URI) > MaxURILen {
		return errors.EncodingFailed(fmt.Sprintf("token uri exceeds %d bytes", MaxURILen))
	}
	switch a.Curve.Kind {
	case CurveConstant, CurveFixed, CurveLinear:
	default:
		return errors.EncodingFailed(fmt.Sprintf("unknown curve kind %d", uint8(a.Curve.Kind)))
	}
	if a.Curve.Supply == 0 {
		return errors.EncodingFailed("curve supply must be greater than zero")
	}
	if a.Curve.TotalQuoteFundRaising == 0 {
		return errors.EncodingFailed("curve total_quote_fund_raising must be greater than zero")
	}
	return nil
}

func (a *InitializeArgs) encodedSize() int {
	size := 8 // discriminator
	size += 1 + stringSize(a.Mint.Name) + stringSize(a.Mint.Symbol) + stringSize(a.Mint.URI)
	size++ // curve tag
	switch a.Curve.Kind {
	case CurveConstant:
		size += 8 + 8 + 8 + 1
	default:
		size += 8 + 8 + 1
	}
	size += 8 + 8 + 8 // vesting
	return size
}

// Encode serializes the args as discriminator ++ mint params ++ curve params
// ++ vesting params.
func (a *InitializeArgs) Encode() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var offset int
	data := make([]byte, a.encodedSize())

	putDiscriminator(data, DiscriminatorInitialize, &offset)

	putUint8(data, a.Mint.Decimals, &offset)
	putString(data, a.Mint.Name, &offset)
	putString(data, a.Mint.Symbol, &offset)
	putString(data, a.Mint.URI, &offset)

	putUint8(data, uint8(a.Curve.Kind), &offset)
	switch a.Curve.Kind {
	case CurveConstant:
		putUint64(data, a.Curve.Supply, &offset)
		putUint64(data, a.Curve.TotalBaseSell, &offset)
		putUint64(data, a.Curve.TotalQuoteFundRaising, &offset)
		putUint8(data, a.Curve.MigrateType, &offset)
	default:
		putUint64(data, a.Curve.Supply, &offset)
		putUint64(data, a.Curve.TotalQuoteFundRaising, &offset)
		putUint8(data, a.Curve.MigrateType, &offset)
	}

	putUint64(data, a.Vesting.TotalLockedAmount, &offset)
	putUint64(data, a.Vesting.CliffPeriod, &offset)
	putUint64(data, a.Vesting.UnlockPeriod, &offset)

	return data, nil
}
