// Package client is the high-level entry point of the launchpad SDK. It
// orchestrates metadata upload, transaction building, and submission into
// single-call operations, and exposes build-only twins for callers that
// manage submission themselves.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/lugondev/go-launchpad/internal/common"
	"github.com/lugondev/go-launchpad/internal/config"
	"github.com/lugondev/go-launchpad/internal/errors"
	"github.com/lugondev/go-launchpad/internal/launchpad"
	"github.com/lugondev/go-launchpad/internal/metadata"
	"github.com/lugondev/go-launchpad/internal/metrics"
	solrpc "github.com/lugondev/go-launchpad/internal/solana"
	"github.com/lugondev/go-launchpad/internal/submitter"
	"github.com/lugondev/go-launchpad/internal/txbuilder"
)

// Chain is the full RPC surface the client needs. The concrete RPC client
// satisfies it; tests substitute fakes.
type Chain interface {
	txbuilder.ChainReader
	submitter.ChainSender
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (string, error)
}

// LaunchRequest describes a token launch.
type LaunchRequest struct {
	Name     string
	Symbol   string
	Decimals uint8

	// URI references already-hosted metadata. When empty and an upload
	// endpoint is configured, Metadata (and Image) are uploaded to
	// produce one.
	URI      string
	Metadata *metadata.TokenMetadata
	Image    []byte

	// Curve defaults to the configured curve type with the supplied
	// totals when the zero value is passed.
	Curve   launchpad.CurveParams
	Vesting launchpad.VestingParams

	// BuyAmount composes an initial buy into the launch transaction.
	BuyAmount        uint64
	MinimumAmountOut uint64
}

// TxResult is the uniform outcome of an executed operation. Success with a
// signature means the transaction confirmed; otherwise Err explains what
// happened, including the ambiguous confirmation-timeout case where the
// signature is still populated.
type TxResult struct {
	OperationID string
	Description string
	Signature   solana.Signature
	Pool        solana.PublicKey
	BaseMint    solana.PublicKey
	Success     bool
	Err         error
}

// Client orchestrates launchpad operations.
type Client struct {
	common.LoggerMixin

	cfg       *config.Config
	chain     Chain
	builder   *txbuilder.Builder
	submitter *submitter.Submitter
	uploader  *metadata.Uploader
}

// New creates a client connected to the configured RPC endpoint.
func New(cfg *config.Config) *Client {
	chain := solrpc.NewClient(
		cfg.Solana.GetRPCEndpoint(),
		cfg.Solana.Commitment,
		time.Duration(cfg.Solana.Timeout)*time.Second,
	)
	return NewWithChain(chain, cfg, nil)
}

// NewWithChain creates a client over an existing chain connection.
func NewWithChain(chain Chain, cfg *config.Config, m metrics.Metrics) *Client {
	return &Client{
		LoggerMixin: common.NewLoggerMixin(),
		cfg:         cfg,
		chain:       chain,
		builder:     txbuilder.NewBuilder(chain, cfg),
		submitter:   submitter.NewSubmitter(chain, cfg, m),
		uploader:    metadata.NewUploader(cfg),
	}
}

// Builder exposes the underlying transaction builder.
func (c *Client) Builder() *txbuilder.Builder {
	return c.builder
}

// SetLogger sets the logger on the client and all of its components.
func (c *Client) SetLogger(logger *slog.Logger) {
	c.LoggerMixin.SetLogger(logger)
	components := []common.Loggable{c.builder, c.submitter}
	if c.uploader != nil {
		components = append(components, c.uploader)
	}
	for _, l := range components {
		l.SetLogger(logger)
	}
}

// resolveURI returns the metadata URI for a launch, uploading the document
// when no URI was supplied. A URI in the request always wins, bypassing the
// upload entirely.
func (c *Client) resolveURI(ctx context.Context, req *LaunchRequest) (string, error) {
	if req.URI != "" {
		return req.URI, nil
	}
	if req.Metadata == nil {
		return "", nil
	}
	if c.uploader == nil {
		return "", errors.InvalidArgument("metadata", "no upload endpoint configured; provide a URI instead")
	}
	return c.uploader.Upload(ctx, *req.Metadata, req.Image, "")
}

func (c *Client) launchParams(req *LaunchRequest, uri string) txbuilder.LaunchParams {
	curve := req.Curve
	if curve.Kind == 0 && curve.Supply == 0 {
		curve.Kind = launchpad.CurveKind(c.cfg.Trade.DefaultCurveType)
	}

	decimals := req.Decimals
	if decimals == 0 {
		decimals = c.cfg.Trade.DefaultTokenDecimals
	}

	return txbuilder.LaunchParams{
		Mint: launchpad.MintParams{
			Decimals: decimals,
			Name:     req.Name,
			Symbol:   req.Symbol,
			URI:      uri,
		},
		Curve:            curve,
		Vesting:          req.Vesting,
		BuyAmount:        req.BuyAmount,
		MinimumAmountOut: req.MinimumAmountOut,
	}
}

// BuildInitialize prepares a launch transaction without submitting it. The
// returned mint keypair must sign; it is already among the bundle's signers.
func (c *Client) BuildInitialize(ctx context.Context, payer solana.PrivateKey, req LaunchRequest) (*txbuilder.BuiltTransaction, solana.PrivateKey, error) {
	uri, err := c.resolveURI(ctx, &req)
	if err != nil {
		return nil, nil, err
	}

	mint, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate mint keypair")
	}

	built, err := c.builder.BuildLaunch(ctx, payer, mint, c.launchParams(&req, uri))
	if err != nil {
		return nil, nil, err
	}
	return built, mint, nil
}

// Initialize launches a new token and waits for confirmation.
func (c *Client) Initialize(ctx context.Context, payer solana.PrivateKey, req LaunchRequest) *TxResult {
	req.BuyAmount = 0
	return c.executeLaunch(ctx, payer, req)
}

// InitializeAndBuy launches a new token and buys into it in the same
// transaction, so the creator's buy cannot be front-run between launch and
// purchase.
func (c *Client) InitializeAndBuy(ctx context.Context, payer solana.PrivateKey, req LaunchRequest, buyAmount uint64) *TxResult {
	if buyAmount == 0 {
		res := c.newResult("launch and buy")
		res.Err = errors.InvalidArgument("buyAmount", "must be greater than zero")
		return res
	}
	req.BuyAmount = buyAmount
	return c.executeLaunch(ctx, payer, req)
}

func (c *Client) executeLaunch(ctx context.Context, payer solana.PrivateKey, req LaunchRequest) *TxResult {
	res := c.newResult("launch")

	built, mint, err := c.BuildInitialize(ctx, payer, req)
	if err != nil {
		res.Err = err
		return res
	}
	res.Description = built.Description
	res.BaseMint = mint.PublicKey()

	if pool, _, err := launchpad.DerivePoolState(mint.PublicKey(), c.quoteMintOrWSOL()); err == nil {
		res.Pool = pool
	}

	c.execute(ctx, res, built)
	return res
}

// BuildBuy prepares a buy transaction without submitting it.
func (c *Client) BuildBuy(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64) (*txbuilder.BuiltTransaction, error) {
	if amountIn == 0 {
		return nil, errors.InvalidArgument("amountIn", "must be greater than zero")
	}
	return c.builder.BuildBuy(ctx, payer, baseMint, amountIn, minimumOut)
}

// Buy swaps quote for base tokens on an existing pool and waits for
// confirmation. amountIn is in quote lamports; a zero minimumOut derives
// one from the pool's reserves and the configured slippage.
func (c *Client) Buy(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64) *TxResult {
	res := c.newResult("buy")
	res.BaseMint = baseMint

	built, err := c.BuildBuy(ctx, payer, baseMint, amountIn, minimumOut)
	if err != nil {
		res.Err = err
		return res
	}
	res.Description = built.Description
	c.fillPool(res, baseMint)
	c.execute(ctx, res, built)
	return res
}

// BuildSell prepares a sell transaction without submitting it.
func (c *Client) BuildSell(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64) (*txbuilder.BuiltTransaction, error) {
	if amountIn == 0 {
		return nil, errors.InvalidArgument("amountIn", "must be greater than zero")
	}
	return c.builder.BuildSell(ctx, payer, baseMint, amountIn, minimumOut)
}

// Sell swaps base tokens back to quote on an existing pool and waits for
// confirmation. amountIn is in base tokens.
func (c *Client) Sell(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey, amountIn, minimumOut uint64) *TxResult {
	res := c.newResult("sell")
	res.BaseMint = baseMint

	built, err := c.BuildSell(ctx, payer, baseMint, amountIn, minimumOut)
	if err != nil {
		res.Err = err
		return res
	}
	res.Description = built.Description
	c.fillPool(res, baseMint)
	c.execute(ctx, res, built)
	return res
}

// SellAll sells the payer's entire balance of baseMint.
func (c *Client) SellAll(ctx context.Context, payer solana.PrivateKey, baseMint solana.PublicKey) *TxResult {
	res := c.newResult("sell all")
	res.BaseMint = baseMint

	ata, _, err := solana.FindAssociatedTokenAddress(payer.PublicKey(), baseMint)
	if err != nil {
		res.Err = errors.DerivationFailed("associated token account", err)
		return res
	}

	raw, err := c.chain.GetTokenAccountBalance(ctx, ata)
	if err != nil {
		res.Err = errors.AccountResolutionFailed(ata.String(), err)
		return res
	}
	balance, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		res.Err = errors.AccountResolutionFailed(ata.String(), fmt.Errorf("malformed balance %q: %w", raw, err))
		return res
	}
	if balance == 0 {
		res.Err = errors.InvalidArgument("balance", "nothing to sell")
		return res
	}

	return c.Sell(ctx, payer, baseMint, balance, 0)
}

// GetPool fetches and decodes the pool for a base mint.
func (c *Client) GetPool(ctx context.Context, baseMint solana.PublicKey) (*launchpad.PoolState, error) {
	pool, _, err := launchpad.DerivePoolState(baseMint, c.quoteMintOrWSOL())
	if err != nil {
		return nil, err
	}

	account, err := c.chain.GetAccountInfo(ctx, pool)
	if err != nil {
		return nil, errors.AccountResolutionFailed(pool.String(), err)
	}
	if account == nil {
		return nil, errors.AccountResolutionFailed(pool.String(), fmt.Errorf("pool does not exist"))
	}
	return launchpad.ParsePoolState(account.Data.GetBinary())
}

// execute submits a built bundle and records the outcome on res.
func (c *Client) execute(ctx context.Context, res *TxResult, built *txbuilder.BuiltTransaction) {
	sig, err := c.submitter.SubmitAndConfirm(ctx, func(ctx context.Context, blockhash solana.Hash) (*solana.Transaction, error) {
		return c.builder.Assemble(ctx, built, blockhash)
	})
	res.Signature = sig
	if err != nil {
		res.Err = err
		c.GetLogger().Error("operation failed",
			"operation_id", res.OperationID,
			"description", res.Description,
			"error", err)
		return
	}

	res.Success = true
	c.GetLogger().Info("operation confirmed",
		"operation_id", res.OperationID,
		"description", res.Description,
		"signature", sig.String())
}

func (c *Client) newResult(description string) *TxResult {
	return &TxResult{
		OperationID: uuid.New().String(),
		Description: description,
	}
}

func (c *Client) fillPool(res *TxResult, baseMint solana.PublicKey) {
	if pool, _, err := launchpad.DerivePoolState(baseMint, c.quoteMintOrWSOL()); err == nil {
		res.Pool = pool
	}
}

func (c *Client) quoteMintOrWSOL() solana.PublicKey {
	if c.cfg.Trade.QuoteMint != "" {
		if mint, err := solana.PublicKeyFromBase58(c.cfg.Trade.QuoteMint); err == nil {
			return mint
		}
	}
	return launchpad.WSOLMint
}
