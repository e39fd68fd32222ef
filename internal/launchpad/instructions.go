package launchpad

import (
	"github.com/gagliardetto/solana-go"
)

// InitializeAccounts is the account context of the initialize instruction.
type InitializeAccounts struct {
	Payer          solana.PublicKey
	Creator        solana.PublicKey
	GlobalConfig   solana.PublicKey
	PlatformConfig solana.PublicKey
	Authority      solana.PublicKey
	PoolState      solana.PublicKey
	BaseMint       solana.PublicKey
	QuoteMint      solana.PublicKey
	BaseVault      solana.PublicKey
	QuoteVault     solana.PublicKey
	Metadata       solana.PublicKey
}

// SwapAccounts is the account context shared by buy_exact_in and
// sell_exact_in.
type SwapAccounts struct {
	Payer          solana.PublicKey
	Authority      solana.PublicKey
	GlobalConfig   solana.PublicKey
	PlatformConfig solana.PublicKey
	PoolState      solana.PublicKey
	UserBaseToken  solana.PublicKey
	UserQuoteToken solana.PublicKey
	BaseVault      solana.PublicKey
	QuoteVault     solana.PublicKey
	BaseMint       solana.PublicKey
	QuoteMint      solana.PublicKey
}

// InitializeAccountMetas returns the initialize account list in the
// program's fixed order. The order is structural: changing it breaks
// on-chain decoding even when every referenced account is correct.
func InitializeAccountMetas(accounts InitializeAccounts) solana.AccountMetaSlice {
	eventAuthority, _, _ := DeriveEventAuthority()

	return solana.AccountMetaSlice{
		{PublicKey: accounts.Payer, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.Creator, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.GlobalConfig, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.PlatformConfig, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.Authority, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.PoolState, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.BaseMint, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.QuoteMint, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.BaseVault, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.QuoteVault, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.Metadata, IsWritable: true, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: MetadataProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SystemProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.SysVarRentPubkey, IsWritable: false, IsSigner: false},
		{PublicKey: eventAuthority, IsWritable: false, IsSigner: false},
		{PublicKey: ProgramID, IsWritable: false, IsSigner: false},
	}
}

// SwapAccountMetas returns the buy_exact_in/sell_exact_in account list in the
// program's fixed order.
func SwapAccountMetas(accounts SwapAccounts) solana.AccountMetaSlice {
	eventAuthority, _, _ := DeriveEventAuthority()

	return solana.AccountMetaSlice{
		{PublicKey: accounts.Payer, IsWritable: true, IsSigner: true},
		{PublicKey: accounts.Authority, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.GlobalConfig, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.PlatformConfig, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.PoolState, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.UserBaseToken, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.UserQuoteToken, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.BaseVault, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.QuoteVault, IsWritable: true, IsSigner: false},
		{PublicKey: accounts.BaseMint, IsWritable: false, IsSigner: false},
		{PublicKey: accounts.QuoteMint, IsWritable: false, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: solana.TokenProgramID, IsWritable: false, IsSigner: false},
		{PublicKey: eventAuthority, IsWritable: false, IsSigner: false},
		{PublicKey: ProgramID, IsWritable: false, IsSigner: false},
	}
}

// NewInitializeInstruction builds the initialize instruction.
func NewInitializeInstruction(accounts InitializeAccounts, args InitializeArgs) (*solana.GenericInstruction, error) {
	data, err := args.Encode()
	if err != nil {
		return nil, err
	}

	return &solana.GenericInstruction{
		ProgID:        ProgramID,
		AccountValues: InitializeAccountMetas(accounts),
		DataBytes:     data,
	}, nil
}

// NewBuyExactInInstruction builds the buy_exact_in instruction.
func NewBuyExactInInstruction(accounts SwapAccounts, args BuyExactInArgs) (*solana.GenericInstruction, error) {
	data, err := args.Encode()
	if err != nil {
		return nil, err
	}

	return &solana.GenericInstruction{
		ProgID:        ProgramID,
		AccountValues: SwapAccountMetas(accounts),
		DataBytes:     data,
	}, nil
}

// NewSellExactInInstruction builds the sell_exact_in instruction.
func NewSellExactInInstruction(accounts SwapAccounts, args SellExactInArgs) (*solana.GenericInstruction, error) {
	data, err := args.Encode()
	if err != nil {
		return nil, err
	}

	return &solana.GenericInstruction{
		ProgID:        ProgramID,
		AccountValues: SwapAccountMetas(accounts),
		DataBytes:     data,
	}, nil
}
