package launchpad

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-launchpad/internal/errors"
)

// PoolAddresses bundles every derived account a pool's instructions need.
// Derived once per operation to avoid recomputation drift between the
// instruction builders.
type PoolAddresses struct {
	Authority     solana.PublicKey
	AuthorityBump uint8
	PoolState     solana.PublicKey
	PoolBump      uint8
	BaseVault     solana.PublicKey
	QuoteVault    solana.PublicKey
	Metadata      solana.PublicKey
}

// DeriveAuthority derives the vault authority PDA.
func DeriveAuthority() (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{[]byte(SeedVaultAuthority)}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("vault authority", err)
	}
	return addr, bump, nil
}

// DeriveGlobalConfig derives the global config PDA for a quote mint, curve
// type, and config index. The index seed is big-endian, matching the
// program's u16 seed serialization.
func DeriveGlobalConfig(quoteMint solana.PublicKey, curveType uint8, index uint16) (solana.PublicKey, uint8, error) {
	var indexSeed [2]byte
	binary.BigEndian.PutUint16(indexSeed[:], index)

	addr, bump, err := solana.FindProgramAddress([][]byte{
		[]byte(SeedGlobalConfig),
		quoteMint.Bytes(),
		{curveType},
		indexSeed[:],
	}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("global config", err)
	}
	return addr, bump, nil
}

// DerivePlatformConfig derives the platform config PDA for a platform admin.
func DerivePlatformConfig(platformAdmin solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{
		[]byte(SeedPlatformConfig),
		platformAdmin.Bytes(),
	}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("platform config", err)
	}
	return addr, bump, nil
}

// DerivePoolState derives the pool state PDA for a base/quote mint pair.
func DerivePoolState(baseMint, quoteMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{
		[]byte(SeedPoolState),
		baseMint.Bytes(),
		quoteMint.Bytes(),
	}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("pool state", err)
	}
	return addr, bump, nil
}

// DerivePoolVault derives a pool vault PDA for one of the pool's mints.
func DerivePoolVault(poolState, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{
		[]byte(SeedPoolVault),
		poolState.Bytes(),
		mint.Bytes(),
	}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("pool vault", err)
	}
	return addr, bump, nil
}

// DeriveEventAuthority derives the program's event authority PDA.
func DeriveEventAuthority() (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{[]byte(SeedEventAuthority)}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("event authority", err)
	}
	return addr, bump, nil
}

// DeriveMetadata derives the token-metadata PDA for a mint. The PDA lives on
// the metadata program, not the launchpad program.
func DeriveMetadata(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{
		[]byte(SeedMetadata),
		MetadataProgramID.Bytes(),
		mint.Bytes(),
	}, MetadataProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.DerivationFailed("metadata", err)
	}
	return addr, bump, nil
}

// DerivePoolAddresses derives every PDA a pool's instructions reference in
// one call: authority, pool state, both vaults, and the metadata account.
func DerivePoolAddresses(baseMint, quoteMint solana.PublicKey) (*PoolAddresses, error) {
	authority, authorityBump, err := DeriveAuthority()
	if err != nil {
		return nil, err
	}

	poolState, poolBump, err := DerivePoolState(baseMint, quoteMint)
	if err != nil {
		return nil, err
	}

	baseVault, _, err := DerivePoolVault(poolState, baseMint)
	if err != nil {
		return nil, err
	}

	quoteVault, _, err := DerivePoolVault(poolState, quoteMint)
	if err != nil {
		return nil, err
	}

	metadata, _, err := DeriveMetadata(baseMint)
	if err != nil {
		return nil, err
	}

	return &PoolAddresses{
		Authority:     authority,
		AuthorityBump: authorityBump,
		PoolState:     poolState,
		PoolBump:      poolBump,
		BaseVault:     baseVault,
		QuoteVault:    quoteVault,
		Metadata:      metadata,
	}, nil
}
