package launchpad

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Pool status values stored in PoolState.Status.
const (
	PoolStatusFunding  uint8 = 0
	PoolStatusMigrated uint8 = 1
	PoolStatusTrading  uint8 = 2
)

// VestingSchedule mirrors the on-chain vesting portion of a pool state.
type VestingSchedule struct {
	TotalLockedAmount    uint64
	CliffPeriod          uint64
	UnlockPeriod         uint64
	StartTime            uint64
	AllocatedShareAmount uint64
}

// PoolState mirrors the on-chain pool account. Decode-only: this layer never
// writes pool state, it reads reserves for quotes and vault addresses for
// instruction contexts.
type PoolState struct {
	Epoch                 uint64
	AuthBump              uint8
	Status                uint8
	BaseDecimals          uint8
	QuoteDecimals         uint8
	MigrateType           uint8
	Supply                uint64
	TotalBaseSell         uint64
	VirtualBase           uint64
	VirtualQuote          uint64
	RealBase              uint64
	RealQuote             uint64
	TotalQuoteFundRaising uint64
	QuoteProtocolFee      uint64
	PlatformFee           uint64
	MigrateFee            uint64
	Vesting               VestingSchedule
	GlobalConfig          solana.PublicKey
	PlatformConfig        solana.PublicKey
	BaseMint              solana.PublicKey
	QuoteMint             solana.PublicKey
	BaseVault             solana.PublicKey
	QuoteVault            solana.PublicKey
	Creator               solana.PublicKey
}

// GlobalConfig mirrors the head of the on-chain global config account.
type GlobalConfig struct {
	Epoch               uint64
	CurveType           uint8
	Index               uint16
	MigrateFee          uint64
	TradeFeeRate        uint64
	MaxShareFeeRate     uint64
	MinBaseSupply       uint64
	MaxLockRate         uint64
	MinBaseSellRate     uint64
	MinBaseMigrateRate  uint64
	MinQuoteFundRaising uint64
	QuoteMint           solana.PublicKey
	ProtocolFeeOwner    solana.PublicKey
	MigrateFeeOwner     solana.PublicKey
}

// PlatformConfig mirrors the head of the on-chain platform config account.
type PlatformConfig struct {
	Epoch             uint64
	PlatformFeeWallet solana.PublicKey
	PlatformNFTWallet solana.PublicKey
	PlatformScale     uint64
	CreatorScale      uint64
	BurnScale         uint64
	FeeRate           uint64
}

// accountDiscriminatorLen is the opaque 8-byte prefix every program account
// carries before its Borsh payload.
const accountDiscriminatorLen = 8

// ParsePoolState decodes a pool state account's data.
func ParsePoolState(data []byte) (*PoolState, error) {
	if len(data) <= accountDiscriminatorLen {
		return nil, fmt.Errorf("pool state data too short: %d bytes", len(data))
	}

	var state PoolState
	if err := bin.NewBorshDecoder(data[accountDiscriminatorLen:]).Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode pool state: %w", err)
	}
	return &state, nil
}

// ParseGlobalConfig decodes a global config account's data.
func ParseGlobalConfig(data []byte) (*GlobalConfig, error) {
	if len(data) <= accountDiscriminatorLen {
		return nil, fmt.Errorf("global config data too short: %d bytes", len(data))
	}

	var cfg GlobalConfig
	if err := bin.NewBorshDecoder(data[accountDiscriminatorLen:]).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode global config: %w", err)
	}
	return &cfg, nil
}

// ParsePlatformConfig decodes a platform config account's data.
func ParsePlatformConfig(data []byte) (*PlatformConfig, error) {
	if len(data) <= accountDiscriminatorLen {
		return nil, fmt.Errorf("platform config data too short: %d bytes", len(data))
	}

	var cfg PlatformConfig
	if err := bin.NewBorshDecoder(data[accountDiscriminatorLen:]).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode platform config: %w", err)
	}
	return &cfg, nil
}
