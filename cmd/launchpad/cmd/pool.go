package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/go-launchpad/internal/launchpad"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Inspect bonding-curve pools",
}

var poolInfoCmd = &cobra.Command{
	Use:   "info [mint]",
	Short: "Show the on-chain state of a pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newClient()
		if err != nil {
			return err
		}

		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid mint address: %w", err)
		}

		pool, err := c.GetPool(cmd.Context(), mint)
		if err != nil {
			return err
		}

		address, _, err := launchpad.DerivePoolState(pool.BaseMint, pool.QuoteMint)
		if err != nil {
			return err
		}

		fmt.Printf("Pool:            %s\n", address.String())
		fmt.Printf("Status:          %s\n", poolStatusName(pool.Status))
		fmt.Printf("Base mint:       %s\n", pool.BaseMint.String())
		fmt.Printf("Quote mint:      %s\n", pool.QuoteMint.String())
		fmt.Printf("Creator:         %s\n", pool.Creator.String())
		fmt.Printf("Supply:          %d\n", pool.Supply)
		fmt.Printf("Total base sell: %d\n", pool.TotalBaseSell)
		fmt.Printf("Virtual base:    %d\n", pool.VirtualBase)
		fmt.Printf("Virtual quote:   %d\n", pool.VirtualQuote)
		fmt.Printf("Real base:       %d\n", pool.RealBase)
		fmt.Printf("Real quote:      %d\n", pool.RealQuote)
		fmt.Printf("Fundraising:     %d / %d lamports\n", pool.RealQuote, pool.TotalQuoteFundRaising)
		return nil
	},
}

func poolStatusName(status uint8) string {
	switch status {
	case 0:
		return "funding"
	case 1:
		return "migrating"
	case 2:
		return "migrated"
	default:
		return fmt.Sprintf("unknown (%d)", status)
	}
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(poolInfoCmd)
}
