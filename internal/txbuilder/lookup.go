package txbuilder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// lookupCache resolves the configured address lookup table once and reuses
// it across assemblies. Resolution failures are logged and the table is
// treated as absent: lookup tables only shrink transactions, they never
// gate an operation.
type lookupCache struct {
	chain ChainReader

	mu        sync.Mutex
	table     solana.PublicKey
	addresses solana.PublicKeySlice
	resolved  bool
}

func newLookupCache(chain ChainReader, table string) *lookupCache {
	c := &lookupCache{chain: chain}
	if table == "" {
		c.resolved = true
		return c
	}

	pk, err := solana.PublicKeyFromBase58(table)
	if err != nil {
		// A malformed table address behaves like no table at all.
		c.resolved = true
		return c
	}
	c.table = pk
	return c
}

// tables returns the lookup-table map for transaction assembly, or nil when
// no table is configured or it could not be resolved.
func (c *lookupCache) tables(ctx context.Context, logger *slog.Logger) map[solana.PublicKey]solana.PublicKeySlice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.resolved {
		addresses, err := c.chain.FetchLookupTable(ctx, c.table)
		if err != nil {
			logger.Warn("lookup table unavailable, assembling without it",
				"table", c.table.String(),
				"error", err)
		} else {
			c.addresses = addresses
		}
		c.resolved = true
	}

	if len(c.addresses) == 0 {
		return nil
	}
	return map[solana.PublicKey]solana.PublicKeySlice{c.table: c.addresses}
}
