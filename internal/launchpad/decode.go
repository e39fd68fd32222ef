package launchpad

import (
	"github.com/lugondev/go-launchpad/pkg/decoder"
)

// instructionRegistry decodes launchpad instruction payloads back into their
// typed args. Used for inspecting transactions and for verifying encodings.
var instructionRegistry = newInstructionRegistry()

func newInstructionRegistry() *decoder.Registry {
	reg := decoder.NewRegistry()
	reg.Register(DiscriminatorInitialize, decodeInitialize)
	reg.Register(DiscriminatorBuyExactIn, func(r *decoder.Reader) (any, error) {
		return decodeSwap(r, false)
	})
	reg.Register(DiscriminatorSellExactIn, func(r *decoder.Reader) (any, error) {
		return decodeSwap(r, true)
	})
	return reg
}

// DecodeInstruction decodes an instruction payload into InitializeArgs,
// BuyExactInArgs, or SellExactInArgs by its discriminator.
func DecodeInstruction(data []byte) (any, error) {
	return instructionRegistry.Decode(data)
}

func decodeSwap(r *decoder.Reader, sell bool) (any, error) {
	amountIn, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	minimumOut, err := r.Uint64()
	if err != nil {
		return nil, err
	}
	shareFeeRate, err := r.Uint64()
	if err != nil {
		return nil, err
	}

	if sell {
		return SellExactInArgs{AmountIn: amountIn, MinimumAmountOut: minimumOut, ShareFeeRate: shareFeeRate}, nil
	}
	return BuyExactInArgs{AmountIn: amountIn, MinimumAmountOut: minimumOut, ShareFeeRate: shareFeeRate}, nil
}

func decodeInitialize(r *decoder.Reader) (any, error) {
	var args InitializeArgs
	var err error

	if args.Mint.Decimals, err = r.Uint8(); err != nil {
		return nil, err
	}
	if args.Mint.Name, err = r.String(); err != nil {
		return nil, err
	}
	if args.Mint.Symbol, err = r.String(); err != nil {
		return nil, err
	}
	if args.Mint.URI, err = r.String(); err != nil {
		return nil, err
	}

	tag, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	args.Curve.Kind = CurveKind(tag)

	if args.Curve.Supply, err = r.Uint64(); err != nil {
		return nil, err
	}
	if args.Curve.Kind == CurveConstant {
		if args.Curve.TotalBaseSell, err = r.Uint64(); err != nil {
			return nil, err
		}
	}
	if args.Curve.TotalQuoteFundRaising, err = r.Uint64(); err != nil {
		return nil, err
	}
	if args.Curve.MigrateType, err = r.Uint8(); err != nil {
		return nil, err
	}

	if args.Vesting.TotalLockedAmount, err = r.Uint64(); err != nil {
		return nil, err
	}
	if args.Vesting.CliffPeriod, err = r.Uint64(); err != nil {
		return nil, err
	}
	if args.Vesting.UnlockPeriod, err = r.Uint64(); err != nil {
		return nil, err
	}

	return args, nil
}
