package txbuilder

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/lugondev/go-launchpad/internal/config"
	"github.com/lugondev/go-launchpad/internal/launchpad"
)

type fakeChain struct {
	accounts   map[solana.PublicKey][]byte
	lookupAddr solana.PublicKeySlice
	lookupErr  error
	reads      []solana.PublicKey
}

func (f *fakeChain) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.Account, error) {
	f.reads = append(f.reads, pubkey)
	data, ok := f.accounts[pubkey]
	if !ok {
		return nil, nil
	}
	return &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)}, nil
}

func (f *fakeChain) FetchLookupTable(ctx context.Context, table solana.PublicKey) (solana.PublicKeySlice, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.lookupAddr, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Trade.PlatformAdmin = solana.NewWallet().PublicKey().String()
	return cfg
}

// poolStateData serializes a pool state fixture the way the chain stores it.
func poolStateData(t *testing.T, pool *launchpad.PoolState) []byte {
	t.Helper()

	buf := make([]byte, 8) // account discriminator
	buf = binary.LittleEndian.AppendUint64(buf, pool.Epoch)
	buf = append(buf, pool.AuthBump, pool.Status, pool.BaseDecimals, pool.QuoteDecimals, pool.MigrateType)
	for _, v := range []uint64{
		pool.Supply, pool.TotalBaseSell, pool.VirtualBase, pool.VirtualQuote,
		pool.RealBase, pool.RealQuote, pool.TotalQuoteFundRaising,
		pool.QuoteProtocolFee, pool.PlatformFee, pool.MigrateFee,
		pool.Vesting.TotalLockedAmount, pool.Vesting.CliffPeriod, pool.Vesting.UnlockPeriod,
		pool.Vesting.StartTime, pool.Vesting.AllocatedShareAmount,
	} {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	for _, k := range []solana.PublicKey{
		pool.GlobalConfig, pool.PlatformConfig, pool.BaseMint, pool.QuoteMint,
		pool.BaseVault, pool.QuoteVault, pool.Creator,
	} {
		buf = append(buf, k.Bytes()...)
	}
	return buf
}

// seedPool installs a funding-stage pool for baseMint into the fake chain
// and returns its state.
func seedPool(t *testing.T, chain *fakeChain, baseMint solana.PublicKey) *launchpad.PoolState {
	t.Helper()

	addrs, err := launchpad.DerivePoolAddresses(baseMint, launchpad.WSOLMint)
	if err != nil {
		t.Fatalf("DerivePoolAddresses failed: %v", err)
	}

	pool := &launchpad.PoolState{
		Status:         launchpad.PoolStatusFunding,
		BaseDecimals:   6,
		QuoteDecimals:  9,
		Supply:         1_000_000_000_000_000,
		TotalBaseSell:  793_100_000_000_000,
		VirtualBase:    1_073_025_605_596_382,
		VirtualQuote:   30_000_852_951_842,
		RealQuote:      5_000_000_000,
		GlobalConfig:   solana.NewWallet().PublicKey(),
		PlatformConfig: solana.NewWallet().PublicKey(),
		BaseMint:       baseMint,
		QuoteMint:      launchpad.WSOLMint,
		BaseVault:      addrs.BaseVault,
		QuoteVault:     addrs.QuoteVault,
	}
	if chain.accounts == nil {
		chain.accounts = make(map[solana.PublicKey][]byte)
	}
	chain.accounts[addrs.PoolState] = poolStateData(t, pool)
	return pool
}

func instructionProgramIDs(ixs []solana.Instruction) []solana.PublicKey {
	ids := make([]solana.PublicKey, len(ixs))
	for i, ix := range ixs {
		ids[i] = ix.ProgramID()
	}
	return ids
}

func TestBuildBuyBundleOrder(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	seedPool(t, chain, baseMint)

	b := NewBuilder(chain, testConfig())
	built, err := b.BuildBuy(context.Background(), payer, baseMint, 1_000_000_000, 0)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	// compute price, compute limit, create base ATA, create WSOL ATA,
	// fund WSOL, sync native, buy, close WSOL.
	want := []solana.PublicKey{
		computebudget.ProgramID,
		computebudget.ProgramID,
		solana.SPLAssociatedTokenAccountProgramID,
		solana.SPLAssociatedTokenAccountProgramID,
		system.ProgramID,
		token.ProgramID,
		launchpad.ProgramID,
		token.ProgramID,
	}
	got := instructionProgramIDs(built.Instructions)
	if len(got) != len(want) {
		t.Fatalf("expected %d instructions, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equals(want[i]) {
			t.Errorf("instruction %d: got program %s, want %s", i, got[i], want[i])
		}
	}

	if len(built.Signers) != 1 || !built.Payer().Equals(payer.PublicKey()) {
		t.Errorf("expected single payer signer, got %d signers", len(built.Signers))
	}
}

func TestBuildBuySkipsExistingTokenAccounts(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	seedPool(t, chain, baseMint)

	baseATA, _, _ := solana.FindAssociatedTokenAddress(payer.PublicKey(), baseMint)
	quoteATA, _, _ := solana.FindAssociatedTokenAddress(payer.PublicKey(), launchpad.WSOLMint)
	chain.accounts[baseATA] = []byte{1}
	chain.accounts[quoteATA] = []byte{1}

	b := NewBuilder(chain, testConfig())
	built, err := b.BuildBuy(context.Background(), payer, baseMint, 1_000_000_000, 0)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	for i, id := range instructionProgramIDs(built.Instructions) {
		if id.Equals(solana.SPLAssociatedTokenAccountProgramID) {
			t.Errorf("instruction %d: unexpected ATA creation for existing accounts", i)
		}
	}
}

func TestBuildBuyDefaultMinimumOutAppliesSlippage(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	pool := seedPool(t, chain, baseMint)

	cfg := testConfig()
	const amountIn = 1_000_000_000

	b := NewBuilder(chain, cfg)
	built, err := b.BuildBuy(context.Background(), payer, baseMint, amountIn, 0)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	swapData := findInstructionData(t, built.Instructions, launchpad.ProgramID)
	decoded, err := launchpad.DecodeInstruction(swapData)
	if err != nil {
		t.Fatalf("DecodeInstruction failed: %v", err)
	}
	args := decoded.(launchpad.BuyExactInArgs)

	expected := launchpad.QuoteBuyExactIn(pool, amountIn, 0)
	wantMin := launchpad.ApplySlippage(expected, cfg.Trade.SlippageBps)
	if args.MinimumAmountOut != wantMin {
		t.Errorf("minimum out = %d, want %d (expected %d at %d bps)",
			args.MinimumAmountOut, wantMin, expected, cfg.Trade.SlippageBps)
	}
	if args.AmountIn != amountIn {
		t.Errorf("amount in = %d, want %d", args.AmountIn, amountIn)
	}
}

func TestBuildBuyExplicitMinimumOutIsKept(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	seedPool(t, chain, baseMint)

	b := NewBuilder(chain, testConfig())
	built, err := b.BuildBuy(context.Background(), payer, baseMint, 1_000_000_000, 777)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	decoded, err := launchpad.DecodeInstruction(findInstructionData(t, built.Instructions, launchpad.ProgramID))
	if err != nil {
		t.Fatalf("DecodeInstruction failed: %v", err)
	}
	if got := decoded.(launchpad.BuyExactInArgs).MinimumAmountOut; got != 777 {
		t.Errorf("minimum out = %d, want caller's 777", got)
	}
}

func TestBuildBuyMissingPool(t *testing.T) {
	b := NewBuilder(&fakeChain{}, testConfig())
	_, err := b.BuildBuy(context.Background(), solana.NewWallet().PrivateKey, solana.NewWallet().PublicKey(), 1_000, 0)
	if err == nil {
		t.Fatal("expected error for missing pool account")
	}
}

func TestBuildSellBundleSkipsFunding(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	seedPool(t, chain, baseMint)

	b := NewBuilder(chain, testConfig())
	built, err := b.BuildSell(context.Background(), payer, baseMint, 500_000, 0)
	if err != nil {
		t.Fatalf("BuildSell failed: %v", err)
	}

	ids := instructionProgramIDs(built.Instructions)
	for i, id := range ids {
		if id.Equals(system.ProgramID) {
			t.Errorf("instruction %d: a sell must not fund the wrapped account", i)
		}
	}
	// Proceeds still unwrap: last instruction closes the WSOL account.
	if !ids[len(ids)-1].Equals(token.ProgramID) {
		t.Errorf("last instruction should close the wrapped account, got %s", ids[len(ids)-1])
	}
	if !strings.HasPrefix(built.Description, "sell") {
		t.Errorf("description %q should describe a sell", built.Description)
	}
}

func TestBuildLaunchWithoutBuy(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PrivateKey

	b := NewBuilder(&fakeChain{}, testConfig())
	built, err := b.BuildLaunch(context.Background(), payer, baseMint, LaunchParams{
		Mint: launchpad.MintParams{Decimals: 6, Name: "Launch", Symbol: "LNC", URI: "u"},
		Curve: launchpad.CurveParams{
			Kind: launchpad.CurveConstant, Supply: 100, TotalBaseSell: 50, TotalQuoteFundRaising: 10,
		},
	})
	if err != nil {
		t.Fatalf("BuildLaunch failed: %v", err)
	}

	if len(built.Signers) != 2 {
		t.Fatalf("expected payer and mint signers, got %d", len(built.Signers))
	}
	if !built.Signers[1].PublicKey().Equals(baseMint.PublicKey()) {
		t.Error("second signer must be the base mint keypair")
	}
	if strings.Contains(built.Description, "buy") {
		t.Errorf("description %q should not mention a buy", built.Description)
	}

	ids := instructionProgramIDs(built.Instructions)
	if !ids[len(ids)-1].Equals(launchpad.ProgramID) {
		t.Errorf("last instruction should be initialize, got %s", ids[len(ids)-1])
	}
}

func TestBuildLaunchAndBuyComposesAtomically(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PrivateKey

	b := NewBuilder(&fakeChain{}, testConfig())
	built, err := b.BuildLaunch(context.Background(), payer, baseMint, LaunchParams{
		Mint: launchpad.MintParams{Decimals: 6, Name: "Launch", Symbol: "LNC", URI: "u"},
		Curve: launchpad.CurveParams{
			Kind: launchpad.CurveConstant, Supply: 100, TotalBaseSell: 50, TotalQuoteFundRaising: 10,
		},
		BuyAmount:        1_000_000,
		MinimumAmountOut: 42,
	})
	if err != nil {
		t.Fatalf("BuildLaunch failed: %v", err)
	}

	var launchpadIxs [][]byte
	for _, ix := range built.Instructions {
		if ix.ProgramID().Equals(launchpad.ProgramID) {
			data, err := ix.Data()
			if err != nil {
				t.Fatalf("Data failed: %v", err)
			}
			launchpadIxs = append(launchpadIxs, data)
		}
	}
	if len(launchpadIxs) != 2 {
		t.Fatalf("expected initialize + buy in one bundle, got %d program instructions", len(launchpadIxs))
	}

	first, err := launchpad.DecodeInstruction(launchpadIxs[0])
	if err != nil {
		t.Fatalf("DecodeInstruction failed: %v", err)
	}
	if _, ok := first.(launchpad.InitializeArgs); !ok {
		t.Errorf("first program instruction should be initialize, got %T", first)
	}

	second, err := launchpad.DecodeInstruction(launchpadIxs[1])
	if err != nil {
		t.Fatalf("DecodeInstruction failed: %v", err)
	}
	buy, ok := second.(launchpad.BuyExactInArgs)
	if !ok {
		t.Fatalf("second program instruction should be a buy, got %T", second)
	}
	if buy.AmountIn != 1_000_000 || buy.MinimumAmountOut != 42 {
		t.Errorf("buy args = %+v", buy)
	}
}

func TestBuildBuyWithoutPriorityFee(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	seedPool(t, chain, baseMint)

	cfg := testConfig()
	cfg.Trade.ComputeUnitPrice = 0

	b := NewBuilder(chain, cfg)
	built, err := b.BuildBuy(context.Background(), payer, baseMint, 1_000, 0)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	for i, id := range instructionProgramIDs(built.Instructions) {
		if id.Equals(computebudget.ProgramID) {
			t.Errorf("instruction %d: unexpected compute-budget instruction", i)
		}
	}
}

func TestAssembleLegacy(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{}
	seedPool(t, chain, baseMint)

	cfg := testConfig()
	cfg.Trade.UseVersionedTx = false

	b := NewBuilder(chain, cfg)
	built, err := b.BuildBuy(context.Background(), payer, baseMint, 1_000, 0)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	blockhash := solana.HashFromBytes([]byte("00000000000000000000000000000000"))
	tx, err := b.Assemble(context.Background(), built, blockhash)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if tx.Message.RecentBlockhash != blockhash {
		t.Error("blockhash not bound into message")
	}
	if len(tx.Signatures) != 1 {
		t.Errorf("expected 1 signature, got %d", len(tx.Signatures))
	}
	if err := tx.VerifySignatures(); err != nil {
		t.Errorf("signature verification failed: %v", err)
	}
}

func TestAssembleLookupFallback(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	baseMint := solana.NewWallet().PublicKey()

	chain := &fakeChain{lookupErr: errors.New("rpc down")}
	seedPool(t, chain, baseMint)

	cfg := testConfig()
	cfg.Trade.UseVersionedTx = true
	cfg.Solana.LookupTable = solana.NewWallet().PublicKey().String()

	b := NewBuilder(chain, cfg)
	built, err := b.BuildBuy(context.Background(), payer, baseMint, 1_000, 0)
	if err != nil {
		t.Fatalf("BuildBuy failed: %v", err)
	}

	// The table fetch fails; assembly must still succeed uncompressed.
	tx, err := b.Assemble(context.Background(), built, solana.HashFromBytes([]byte("00000000000000000000000000000000")))
	if err != nil {
		t.Fatalf("Assemble should fall back on lookup failure: %v", err)
	}
	if len(tx.Message.AddressTableLookups) != 0 {
		t.Error("expected no table lookups after fallback")
	}
}

func findInstructionData(t *testing.T, ixs []solana.Instruction, program solana.PublicKey) []byte {
	t.Helper()
	for _, ix := range ixs {
		if ix.ProgramID().Equals(program) {
			data, err := ix.Data()
			if err != nil {
				t.Fatalf("Data failed: %v", err)
			}
			return data
		}
	}
	t.Fatalf("no instruction for program %s", program)
	return nil
}
