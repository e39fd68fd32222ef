// Package launchpad implements the client-side wire contract of the on-chain
// bonding-curve launchpad program: deterministic program-derived addresses,
// binary instruction encoding, and the account orderings each instruction
// expects. The byte layouts and account orders here reproduce the deployed
// program's ABI exactly; they are not negotiable.
package launchpad

import "github.com/gagliardetto/solana-go"

// Program addresses. Fixed by the deployed protocol.
var (
	// ProgramID is the launchpad program.
	ProgramID = solana.MustPublicKeyFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")

	// MetadataProgramID is the token-metadata program that owns metadata PDAs.
	MetadataProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// WSOLMint is the wrapped-SOL mint, the default quote mint.
	WSOLMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

// PDA seed strings. Fixed by the deployed program.
const (
	SeedVaultAuthority = "vault_auth_seed"
	SeedGlobalConfig   = "global_config"
	SeedPlatformConfig = "platform_config"
	SeedPoolState      = "pool"
	SeedPoolVault      = "pool_vault"
	SeedEventAuthority = "__event_authority"
	SeedMetadata       = "metadata"
)

// Instruction discriminators. 8 opaque bytes prefixing every instruction
// payload; defined by the program's IDL and treated as data.
var (
	DiscriminatorInitialize  = [8]byte{0xaf, 0xaf, 0x6d, 0x1f, 0x0d, 0x98, 0x9b, 0xed}
	DiscriminatorBuyExactIn  = [8]byte{0xfa, 0xea, 0x0d, 0x7b, 0xd5, 0x9c, 0x13, 0xec}
	DiscriminatorSellExactIn = [8]byte{0x95, 0x27, 0xde, 0x9b, 0xd3, 0x7c, 0x98, 0x1a}
)

// Wire-format limits enforced before encoding. A value outside these bounds
// would produce a payload the program rejects, so it is an encoding error
// client-side.
const (
	MaxNameLen   = 32
	MaxSymbolLen = 10
	MaxURILen    = 200

	// MaxFeeRateBps is the denominator of every on-chain fee rate.
	MaxFeeRateBps = 10_000
)
