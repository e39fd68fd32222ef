// Package submitter sends signed transactions and tracks them to
// confirmation. Send failures are retried with linear backoff; every retry
// re-signs the same bundle against a fresh blockhash. Confirmation is never
// retried here: a transaction that was sent but not confirmed is ambiguous,
// and blind resubmission of an ambiguous swap risks a double spend.
package submitter

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/lugondev/go-launchpad/internal/common"
	"github.com/lugondev/go-launchpad/internal/config"
	"github.com/lugondev/go-launchpad/internal/errors"
	"github.com/lugondev/go-launchpad/internal/metrics"
	"github.com/lugondev/go-launchpad/pkg/retry"
)

// defaultPollInterval is how often confirmation polls signature status.
const defaultPollInterval = 2 * time.Second

// ChainSender is the RPC surface the submitter needs.
type ChainSender interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction, skipPreflight bool) (solana.Signature, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error)
	Commitment() rpc.CommitmentType
}

// AssembleFunc binds a built bundle to a blockhash and signs it. The
// submitter calls it once per send attempt so every retry carries a fresh
// blockhash without re-deriving or re-encoding anything.
type AssembleFunc func(ctx context.Context, blockhash solana.Hash) (*solana.Transaction, error)

// Submitter submits transactions with bounded retry and confirmation
// tracking.
type Submitter struct {
	common.LoggerMixin

	chain        ChainSender
	cfg          *config.Config
	metrics      metrics.Metrics
	pollInterval time.Duration
}

// NewSubmitter creates a submitter. A nil metrics falls back to the no-op
// implementation.
func NewSubmitter(chain ChainSender, cfg *config.Config, m metrics.Metrics) *Submitter {
	if m == nil {
		m = metrics.NewNoopMetrics()
	}
	return &Submitter{
		LoggerMixin:  common.NewLoggerMixin(),
		chain:        chain,
		cfg:          cfg,
		metrics:      m,
		pollInterval: defaultPollInterval,
	}
}

// Submit sends the transaction, retrying send failures up to the configured
// maximum with linear backoff. Assembly or signing failures abort
// immediately: they are deterministic and retrying cannot change them.
func (s *Submitter) Submit(ctx context.Context, assemble AssembleFunc) (solana.Signature, error) {
	maxAttempts := s.cfg.Submit.MaxRetries
	baseDelay := time.Duration(s.cfg.Submit.RetryBaseDelay) * time.Millisecond

	var sig solana.Signature
	var fatal error

	err := retry.Do(ctx, maxAttempts, baseDelay, func(attempt int) error {
		_ = s.metrics.IncrementCounter(ctx, metrics.CounterSendAttempts, 1)

		blockhash, err := s.chain.GetLatestBlockhash(ctx)
		if err != nil {
			_ = s.metrics.IncrementCounter(ctx, metrics.CounterSendFailures, 1)
			s.GetLogger().Warn("blockhash fetch failed", "attempt", attempt, "error", err)
			return err
		}

		tx, err := assemble(ctx, blockhash)
		if err != nil {
			// Not a transport failure; stop the loop and surface as-is.
			fatal = err
			return nil
		}

		sig, err = s.chain.SendTransaction(ctx, tx, s.cfg.Trade.SkipPreflight)
		if err != nil {
			_ = s.metrics.IncrementCounter(ctx, metrics.CounterSendFailures, 1)
			s.GetLogger().Warn("send failed", "attempt", attempt, "error", err)
			return err
		}

		s.GetLogger().Info("transaction sent", "signature", sig.String(), "attempt", attempt)
		return nil
	})
	if fatal != nil {
		return solana.Signature{}, fatal
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return solana.Signature{}, err
		}
		return solana.Signature{}, errors.SendFailed(err)
	}
	return sig, nil
}

// Confirm polls the signature until it reaches the client's commitment
// level. A program rejection surfaces the program's error payload. Running
// out of time returns a confirmation-timeout error carrying the signature:
// the transaction may still land, and the caller decides how to resolve
// the ambiguity.
func (s *Submitter) Confirm(ctx context.Context, sig solana.Signature) error {
	timeout := time.Duration(s.cfg.Submit.ConfirmTimeout) * time.Second
	start := time.Now()
	deadline := start.Add(timeout)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		status, err := s.chain.SignatureStatus(ctx, sig)
		if err != nil {
			s.GetLogger().Warn("status poll failed", "signature", sig.String(), "error", err)
		} else if status != nil {
			if status.Err != nil {
				_ = s.metrics.IncrementCounter(ctx, metrics.CounterRejected, 1)
				return errors.ProgramRejected(status.Err)
			}
			if s.reachedCommitment(status) {
				_ = s.metrics.IncrementCounter(ctx, metrics.CounterConfirmed, 1)
				_ = s.metrics.UpdateGauge(ctx, metrics.GaugeConfirmLatency, time.Since(start).Seconds())
				s.GetLogger().Info("transaction confirmed",
					"signature", sig.String(),
					"status", string(status.ConfirmationStatus))
				return nil
			}
		}

		if time.Now().After(deadline) {
			_ = s.metrics.IncrementCounter(ctx, metrics.CounterConfirmTimeout, 1)
			return errors.ConfirmationTimeout(sig.String())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SubmitAndConfirm submits then confirms in one call.
func (s *Submitter) SubmitAndConfirm(ctx context.Context, assemble AssembleFunc) (solana.Signature, error) {
	sig, err := s.Submit(ctx, assemble)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := s.Confirm(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

func (s *Submitter) reachedCommitment(status *rpc.SignatureStatusesResult) bool {
	switch s.chain.Commitment() {
	case rpc.CommitmentFinalized:
		return status.ConfirmationStatus == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentProcessed:
		return status.ConfirmationStatus != ""
	default:
		return status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized
	}
}
