package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client wraps the Solana RPC client. Every method applies the configured
// per-request timeout on top of the caller's context.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	timeout    time.Duration
}

// NewClient creates a new Solana client.
func NewClient(endpoint string, commitment string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		rpc:        rpc.New(endpoint),
		commitment: ParseCommitment(commitment),
		timeout:    timeout,
	}
}

// ParseCommitment maps a config string to an RPC commitment level,
// defaulting to confirmed.
func ParseCommitment(s string) rpc.CommitmentType {
	switch s {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// Commitment returns the client's configured commitment level.
func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// GetBalance returns the balance of an account in lamports.
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.rpc.GetBalance(ctx, pubkey, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return result.Value, nil
}

// GetLatestBlockhash returns the latest blockhash.
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	return result.Value.Blockhash, nil
}

// GetAccountInfo returns the account for a given public key, or (nil, nil)
// when the account does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.Account, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err == rpc.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	if result == nil || result.Value == nil {
		return nil, nil
	}
	return result.Value, nil
}

// GetTokenAccountBalance returns the raw token balance of a token account.
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.rpc.GetTokenAccountBalance(ctx, account, c.commitment)
	if err != nil {
		return "", fmt.Errorf("failed to get token account balance: %w", err)
	}
	if result == nil || result.Value == nil {
		return "", fmt.Errorf("empty token balance response for %s", account)
	}
	return result.Value.Amount, nil
}

// SendTransaction submits a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, skipPreflight bool) (solana.Signature, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       skipPreflight,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// SignatureStatus returns the processing status of a signature, or nil when
// the network has not seen it yet.
func (c *Client) SignatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to get signature status: %w", err)
	}
	if result == nil || len(result.Value) == 0 {
		return nil, nil
	}
	return result.Value[0], nil
}

// FetchLookupTable fetches and decodes an address-lookup table. Returns the
// table's address list, or an error when the account is missing or does not
// decode as a lookup table.
func (c *Client) FetchLookupTable(ctx context.Context, table solana.PublicKey) (solana.PublicKeySlice, error) {
	account, err := c.GetAccountInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("lookup table %s not found", table)
	}

	state, err := addresslookuptable.DecodeAddressLookupTableState(account.Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to decode lookup table %s: %w", table, err)
	}
	return state.Addresses, nil
}

// RequestAirdrop requests an airdrop of SOL (only works on devnet/testnet).
func (c *Client) RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	sig, err := c.rpc.RequestAirdrop(ctx, pubkey, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to request airdrop: %w", err)
	}
	return sig, nil
}
