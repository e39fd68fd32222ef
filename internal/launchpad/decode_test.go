package launchpad

import (
	"reflect"
	"testing"
)

func TestDecodeInstructionRoundTrip(t *testing.T) {
	initArgs := InitializeArgs{
		Mint: MintParams{Decimals: 6, Name: "Round Trip", Symbol: "RT", URI: "ipfs://x"},
		Curve: CurveParams{
			Kind:                  CurveConstant,
			Supply:                1_000_000_000_000_000,
			TotalBaseSell:         793_100_000_000_000,
			TotalQuoteFundRaising: 85_000_000_000,
			MigrateType:           1,
		},
		Vesting: VestingParams{TotalLockedAmount: 10, CliffPeriod: 20, UnlockPeriod: 30},
	}
	buyArgs := BuyExactInArgs{AmountIn: 1_000_000, MinimumAmountOut: 950_000, ShareFeeRate: 25}
	sellArgs := SellExactInArgs{AmountIn: 2_000_000, MinimumAmountOut: 1_800_000}

	cases := []struct {
		name   string
		encode func() ([]byte, error)
		want   any
	}{
		{"initialize", initArgs.Encode, initArgs},
		{"buy_exact_in", buyArgs.Encode, buyArgs},
		{"sell_exact_in", sellArgs.Encode, sellArgs},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := DecodeInstruction(data)
			if err != nil {
				t.Fatalf("DecodeInstruction failed: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, tc.want)
			}
		})
	}
}

func TestDecodeInstructionRoundTripLinearCurve(t *testing.T) {
	args := InitializeArgs{
		Mint:  MintParams{Decimals: 9, Name: "Linear", Symbol: "LIN", URI: ""},
		Curve: CurveParams{Kind: CurveLinear, Supply: 100, TotalQuoteFundRaising: 10, MigrateType: 0},
	}

	data, err := args.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := DecodeInstruction(data)
	if err != nil {
		t.Fatalf("DecodeInstruction failed: %v", err)
	}
	if !reflect.DeepEqual(got, args) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, args)
	}
}

func TestDecodeInstructionUnknownDiscriminator(t *testing.T) {
	data := make([]byte, 16)
	if _, err := DecodeInstruction(data); err == nil {
		t.Error("expected error for unknown discriminator")
	}
}
