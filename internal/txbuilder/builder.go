// Package txbuilder assembles launchpad operations into transaction bundles:
// compute-budget prefix, token-account preparation, the launchpad
// instructions themselves, and wrapped-SOL cleanup, in the order the chain
// must execute them.
package txbuilder

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/lugondev/go-launchpad/internal/common"
	"github.com/lugondev/go-launchpad/internal/config"
	"github.com/lugondev/go-launchpad/internal/errors"
	"github.com/lugondev/go-launchpad/internal/launchpad"
	solwallet "github.com/lugondev/go-launchpad/internal/solana"
)

// ChainReader is the read-side RPC surface the builder needs: account
// existence checks, pool state reads, and lookup-table resolution.
type ChainReader interface {
	GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.Account, error)
	FetchLookupTable(ctx context.Context, table solana.PublicKey) (solana.PublicKeySlice, error)
}

// BuiltTransaction is an unsigned, blockhash-free bundle. It carries
// everything needed to assemble and sign the transaction any number of
// times; assembly binds it to a specific blockhash.
type BuiltTransaction struct {
	Instructions []solana.Instruction
	Signers      []solana.PrivateKey
	Description  string
}

// Payer returns the fee payer, by convention the first signer.
func (bt *BuiltTransaction) Payer() solana.PublicKey {
	return bt.Signers[0].PublicKey()
}

// LaunchParams describes a token launch, optionally composed with an
// initial buy in the same transaction.
type LaunchParams struct {
	Mint    launchpad.MintParams
	Curve   launchpad.CurveParams
	Vesting launchpad.VestingParams

	// Creator defaults to the payer when zero.
	Creator solana.PublicKey

	// BuyAmount in quote lamports. Zero means launch without buying.
	BuyAmount        uint64
	MinimumAmountOut uint64
}

// Builder assembles transaction bundles.
type Builder struct {
	common.LoggerMixin

	chain  ChainReader
	cfg    *config.Config
	lookup *lookupCache
}

// NewBuilder creates a builder reading chain state through chain.
func NewBuilder(chain ChainReader, cfg *config.Config) *Builder {
	return &Builder{
		LoggerMixin: common.NewLoggerMixin(),
		chain:       chain,
		cfg:         cfg,
		lookup:      newLookupCache(chain, cfg.Solana.LookupTable),
	}
}

// priorityFee returns the compute-budget prefix: unit price first, then
// unit limit. Skipped entirely when the configured price is zero.
func (b *Builder) priorityFee() []solana.Instruction {
	if b.cfg.Trade.ComputeUnitPrice == 0 {
		return nil
	}
	return []solana.Instruction{
		computebudget.NewSetComputeUnitPriceInstruction(b.cfg.Trade.ComputeUnitPrice).Build(),
		computebudget.NewSetComputeUnitLimitInstruction(b.cfg.Trade.ComputeUnitLimit).Build(),
	}
}

// ensureATA resolves owner's associated token account for mint and, if the
// account does not exist on chain, returns a create instruction to prepend.
// assumeMissing skips the chain read for accounts that cannot exist yet,
// such as the ATA of a mint created in this same transaction.
func (b *Builder) ensureATA(ctx context.Context, payer, owner, mint solana.PublicKey, assumeMissing bool) (solana.PublicKey, solana.Instruction, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, nil, errors.DerivationFailed("associated token account", err)
	}

	if !assumeMissing {
		account, err := b.chain.GetAccountInfo(ctx, ata)
		if err != nil {
			return solana.PublicKey{}, nil, errors.AccountResolutionFailed(ata.String(), err)
		}
		if account != nil {
			return ata, nil, nil
		}
	}

	createIx, err := associatedtokenaccount.NewCreateInstruction(payer, owner, mint).ValidateAndBuild()
	if err != nil {
		return solana.PublicKey{}, nil, errors.AccountResolutionFailed(ata.String(), err)
	}
	return ata, createIx, nil
}

// configAddresses derives the global and platform config PDAs from the
// builder's configuration.
func (b *Builder) configAddresses(quoteMint solana.PublicKey, curveType uint8) (globalConfig, platformConfig solana.PublicKey, err error) {
	globalConfig, _, err = launchpad.DeriveGlobalConfig(quoteMint, curveType, b.cfg.Trade.GlobalConfigIndex)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}

	admin, err := solana.PublicKeyFromBase58(b.cfg.Trade.PlatformAdmin)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, errors.InvalidArgument("platform_admin", err.Error())
	}
	platformConfig, _, err = launchpad.DerivePlatformConfig(admin)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	return globalConfig, platformConfig, nil
}

func (b *Builder) quoteMint() (solana.PublicKey, error) {
	if b.cfg.Trade.QuoteMint == "" {
		return launchpad.WSOLMint, nil
	}
	mint, err := solana.PublicKeyFromBase58(b.cfg.Trade.QuoteMint)
	if err != nil {
		return solana.PublicKey{}, errors.InvalidArgument("quote_mint", err.Error())
	}
	return mint, nil
}

// BuildLaunch assembles the initialize bundle for a new pool. baseMint is
// the mint keypair being created; it co-signs the transaction. When
// params.BuyAmount is non-zero the initial buy rides in the same
// transaction, so either the pool launches and the buy lands or neither
// happens.
func (b *Builder) BuildLaunch(ctx context.Context, payer solana.PrivateKey, baseMint solana.PrivateKey, params LaunchParams) (*BuiltTransaction, error) {
	quoteMint, err := b.quoteMint()
	if err != nil {
		return nil, err
	}

	creator := params.Creator
	if creator.IsZero() {
		creator = payer.PublicKey()
	}

	globalConfig, platformConfig, err := b.configAddresses(quoteMint, uint8(params.Curve.Kind))
	if err != nil {
		return nil, err
	}
	addrs, err := launchpad.DerivePoolAddresses(baseMint.PublicKey(), quoteMint)
	if err != nil {
		return nil, err
	}

	initIx, err := launchpad.NewInitializeInstruction(launchpad.InitializeAccounts{
		Payer:          payer.PublicKey(),
		Creator:        creator,
		GlobalConfig:   globalConfig,
		PlatformConfig: platformConfig,
		Authority:      addrs.Authority,
		PoolState:      addrs.PoolState,
		BaseMint:       baseMint.PublicKey(),
		QuoteMint:      quoteMint,
		BaseVault:      addrs.BaseVault,
		QuoteVault:     addrs.QuoteVault,
		Metadata:       addrs.Metadata,
	}, launchpad.InitializeArgs{
		Mint:    params.Mint,
		Curve:   params.Curve,
		Vesting: params.Vesting,
	})
	if err != nil {
		return nil, err
	}

	instructions := b.priorityFee()
	instructions = append(instructions, initIx)
	description := fmt.Sprintf("launch %s (%s)", params.Mint.Symbol, baseMint.PublicKey())

	if params.BuyAmount > 0 {
		buyIxs, err := b.swapBundle(ctx, payer.PublicKey(), swapLeg{
			pool:          addrs,
			globalConfig:  globalConfig,
			platform:      platformConfig,
			baseMint:      baseMint.PublicKey(),
			quoteMint:     quoteMint,
			amountIn:      params.BuyAmount,
			minimumOut:    params.MinimumAmountOut,
			sell:          false,
			assumeNewBase: true,
		})
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, buyIxs...)
		description = fmt.Sprintf("%s + buy %d", description, params.BuyAmount)
	}

	return &BuiltTransaction{
		Instructions: instructions,
		Signers:      []solana.PrivateKey{payer, baseMint},
		Description:  description,
	}, nil
}

// BuildBuy assembles a buy_exact_in bundle against an existing pool. When
// minimumOut is zero it is computed from the pool's reserves with the
// configured slippage.
func (b *Builder) BuildBuy(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64) (*BuiltTransaction, error) {
	return b.buildSwap(ctx, payer, baseMint, amountIn, minimumOut, false)
}

// BuildSell assembles a sell_exact_in bundle against an existing pool.
// amountIn is in base tokens; proceeds are unwrapped back to SOL by the
// closing instruction of the bundle.
func (b *Builder) BuildSell(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64) (*BuiltTransaction, error) {
	return b.buildSwap(ctx, payer, baseMint, amountIn, minimumOut, true)
}

func (b *Builder) buildSwap(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64, sell bool) (*BuiltTransaction, error) {
	quoteMint, err := b.quoteMint()
	if err != nil {
		return nil, err
	}

	addrs, err := launchpad.DerivePoolAddresses(baseMint, quoteMint)
	if err != nil {
		return nil, err
	}

	pool, err := b.fetchPoolState(ctx, addrs.PoolState)
	if err != nil {
		return nil, err
	}

	if minimumOut == 0 {
		minimumOut = b.defaultMinimumOut(pool, amountIn, sell)
	}

	ixs, err := b.swapBundle(ctx, payer.PublicKey(), swapLeg{
		pool:         addrs,
		globalConfig: pool.GlobalConfig,
		platform:     pool.PlatformConfig,
		baseMint:     baseMint,
		quoteMint:    quoteMint,
		amountIn:     amountIn,
		minimumOut:   minimumOut,
		sell:         sell,
	})
	if err != nil {
		return nil, err
	}

	verb := "buy"
	if sell {
		verb = "sell"
	}
	instructions := append(b.priorityFee(), ixs...)
	return &BuiltTransaction{
		Instructions: instructions,
		Signers:      []solana.PrivateKey{payer},
		Description:  fmt.Sprintf("%s %d on pool %s", verb, amountIn, addrs.PoolState),
	}, nil
}

type swapLeg struct {
	pool         *launchpad.PoolAddresses
	globalConfig solana.PublicKey
	platform     solana.PublicKey
	baseMint     solana.PublicKey
	quoteMint    solana.PublicKey
	amountIn     uint64
	minimumOut   uint64
	sell         bool

	// assumeNewBase marks the base mint as created in this same
	// transaction: its ATA cannot exist yet, so skip the chain read.
	assumeNewBase bool
}

// swapBundle emits the swap's account preparation, the swap itself, and
// wrapped-SOL cleanup as one atomic sequence:
//
//	ensure base ATA -> ensure quote ATA -> [fund+sync WSOL] -> swap -> close WSOL
//
// The temporary WSOL account only ever exists inside this transaction.
func (b *Builder) swapBundle(ctx context.Context, payer solana.PublicKey, leg swapLeg) ([]solana.Instruction, error) {
	var ixs []solana.Instruction

	userBase, createBase, err := b.ensureATA(ctx, payer, payer, leg.baseMint, leg.assumeNewBase)
	if err != nil {
		return nil, err
	}
	if createBase != nil {
		ixs = append(ixs, createBase)
	}

	userQuote, createQuote, err := b.ensureATA(ctx, payer, payer, leg.quoteMint, false)
	if err != nil {
		return nil, err
	}
	if createQuote != nil {
		ixs = append(ixs, createQuote)
	}

	wrapped := leg.quoteMint.Equals(launchpad.WSOLMint)
	if wrapped && !leg.sell {
		// Fund the wrapped account with the exact input and sync its
		// token balance to the deposited lamports.
		ixs = append(ixs,
			system.NewTransferInstruction(leg.amountIn, payer, userQuote).Build(),
			token.NewSyncNativeInstruction(userQuote).Build(),
		)
	}

	accounts := launchpad.SwapAccounts{
		Payer:          payer,
		Authority:      leg.pool.Authority,
		GlobalConfig:   leg.globalConfig,
		PlatformConfig: leg.platform,
		PoolState:      leg.pool.PoolState,
		UserBaseToken:  userBase,
		UserQuoteToken: userQuote,
		BaseVault:      leg.pool.BaseVault,
		QuoteVault:     leg.pool.QuoteVault,
		BaseMint:       leg.baseMint,
		QuoteMint:      leg.quoteMint,
	}

	var swapIx solana.Instruction
	if leg.sell {
		swapIx, err = launchpad.NewSellExactInInstruction(accounts, launchpad.SellExactInArgs{
			AmountIn:         leg.amountIn,
			MinimumAmountOut: leg.minimumOut,
			ShareFeeRate:     b.cfg.Trade.ShareFeeRate,
		})
	} else {
		swapIx, err = launchpad.NewBuyExactInInstruction(accounts, launchpad.BuyExactInArgs{
			AmountIn:         leg.amountIn,
			MinimumAmountOut: leg.minimumOut,
			ShareFeeRate:     b.cfg.Trade.ShareFeeRate,
		})
	}
	if err != nil {
		return nil, err
	}
	ixs = append(ixs, swapIx)

	if wrapped {
		// Closing returns the account's lamports, unwrapping any
		// remaining or received WSOL back to native SOL.
		ixs = append(ixs, token.NewCloseAccountInstruction(userQuote, payer, payer, nil).Build())
	}

	return ixs, nil
}

// fetchPoolState reads and decodes a pool account.
func (b *Builder) fetchPoolState(ctx context.Context, poolState solana.PublicKey) (*launchpad.PoolState, error) {
	account, err := b.chain.GetAccountInfo(ctx, poolState)
	if err != nil {
		return nil, errors.AccountResolutionFailed(poolState.String(), err)
	}
	if account == nil {
		return nil, errors.AccountResolutionFailed(poolState.String(), fmt.Errorf("pool does not exist"))
	}

	pool, err := launchpad.ParsePoolState(account.Data.GetBinary())
	if err != nil {
		return nil, errors.AccountResolutionFailed(poolState.String(), err)
	}
	return pool, nil
}

func (b *Builder) defaultMinimumOut(pool *launchpad.PoolState, amountIn uint64, sell bool) uint64 {
	var expected uint64
	if sell {
		expected = launchpad.QuoteSellExactIn(pool, amountIn, 0)
	} else {
		expected = launchpad.QuoteBuyExactIn(pool, amountIn, 0)
	}
	minimum := launchpad.ApplySlippage(expected, b.cfg.Trade.SlippageBps)
	b.GetLogger().Debug("computed minimum out",
		"amount_in", amountIn,
		"expected", expected,
		"slippage_bps", b.cfg.Trade.SlippageBps,
		"minimum_out", minimum)
	return minimum
}

// Assemble binds a built bundle to a blockhash and signs it. Versioned
// transactions use the configured address lookup table when one resolves;
// lookup failures downgrade to an uncompressed transaction rather than
// failing the operation.
func (b *Builder) Assemble(ctx context.Context, built *BuiltTransaction, blockhash solana.Hash) (*solana.Transaction, error) {
	opts := []solana.TransactionOption{solana.TransactionPayer(built.Payer())}

	if b.cfg.Trade.UseVersionedTx {
		if tables := b.lookup.tables(ctx, b.GetLogger()); tables != nil {
			opts = append(opts, solana.TransactionAddressTables(tables))
		}
	}

	tx, err := solana.NewTransaction(built.Instructions, blockhash, opts...)
	if err != nil {
		return nil, errors.EncodingFailed(fmt.Sprintf("assemble transaction: %v", err))
	}

	if _, err := tx.Sign(solwallet.SignerGetter(built.Signers)); err != nil {
		return nil, errors.EncodingFailed(fmt.Sprintf("sign transaction: %v", err))
	}
	return tx, nil
}
