package cmd

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var tradeFlags struct {
	minOut  uint64
	sellAll bool
}

var buyCmd = &cobra.Command{
	Use:   "buy [mint] [lamports]",
	Short: "Buy tokens from a bonding curve",
	Long: `Buy tokens from a bonding curve, spending the given number of quote
lamports. Without --min-out the minimum received amount is quoted from the
current pool reserves with the configured slippage tolerance.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payer, err := loadPayer()
		if err != nil {
			return err
		}
		c, _, err := newClient()
		if err != nil {
			return err
		}

		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid mint address: %w", err)
		}
		lamports, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid lamport amount: %w", err)
		}

		res := c.Buy(cmd.Context(), payer.PrivateKey(), mint, lamports, tradeFlags.minOut)
		printResult(res)
		if res.Err != nil {
			return res.Err
		}
		return nil
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell [mint] [amount]",
	Short: "Sell tokens back into a bonding curve",
	Long: `Sell tokens back into a bonding curve for quote lamports. The amount
is in base units of the token. Use --all to sell the full token balance of
the payer's associated token account.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payer, err := loadPayer()
		if err != nil {
			return err
		}
		c, _, err := newClient()
		if err != nil {
			return err
		}

		mint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid mint address: %w", err)
		}

		if tradeFlags.sellAll {
			res := c.SellAll(cmd.Context(), payer.PrivateKey(), mint)
			printResult(res)
			if res.Err != nil {
				return res.Err
			}
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("amount required unless --all is set")
		}
		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid token amount: %w", err)
		}

		res := c.Sell(cmd.Context(), payer.PrivateKey(), mint, amount, tradeFlags.minOut)
		printResult(res)
		if res.Err != nil {
			return res.Err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)

	buyCmd.Flags().Uint64Var(&tradeFlags.minOut, "min-out", 0, "minimum tokens to receive (0 = quote with slippage)")
	sellCmd.Flags().Uint64Var(&tradeFlags.minOut, "min-out", 0, "minimum lamports to receive (0 = quote with slippage)")
	sellCmd.Flags().BoolVar(&tradeFlags.sellAll, "all", false, "sell the entire token balance")
}
