package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	solrpc "github.com/lugondev/go-launchpad/internal/solana"
)

var walletSavePath string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet management commands",
	Long:  `Commands for managing Solana wallets including generation and balance checks.`,
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new wallet",
	Long:  `Generate a new Solana wallet keypair, optionally saving it to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wallet := solrpc.NewWallet()

		fmt.Println("New wallet generated!")
		fmt.Printf("  Public Key:  %s\n", wallet.PublicKey().String())

		if walletSavePath != "" {
			if err := wallet.SaveToFile(walletSavePath); err != nil {
				return fmt.Errorf("save keypair: %w", err)
			}
			fmt.Printf("  Keypair saved to %s\n", walletSavePath)
		} else {
			fmt.Printf("  Private Key: %s\n", wallet.PrivateKey().String())
		}
		fmt.Println("\n⚠️  WARNING: Save your private key securely. Never share it with anyone!")

		return nil
	},
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check wallet balance",
	Long:  `Check the SOL balance of a wallet address.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubKey, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		chain := solrpc.NewClient(cfg.Solana.GetRPCEndpoint(), cfg.Solana.Commitment, 0)

		lamports, err := chain.GetBalance(cmd.Context(), pubKey)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}

		fmt.Printf("Address: %s\n", pubKey.String())
		fmt.Printf("Balance: %.9f SOL (%d lamports)\n", float64(lamports)/float64(solana.LAMPORTS_PER_SOL), lamports)

		return nil
	},
}

var walletAirdropCmd = &cobra.Command{
	Use:   "airdrop [address] [sol]",
	Short: "Request an airdrop on devnet or testnet",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubKey, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}

		lamports := uint64(solana.LAMPORTS_PER_SOL)
		if len(args) == 2 {
			var sol float64
			if _, err := fmt.Sscanf(args[1], "%f", &sol); err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			lamports = uint64(sol * float64(solana.LAMPORTS_PER_SOL))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		chain := solrpc.NewClient(cfg.Solana.GetRPCEndpoint(), cfg.Solana.Commitment, 0)

		sig, err := chain.RequestAirdrop(cmd.Context(), pubKey, lamports)
		if err != nil {
			return fmt.Errorf("request airdrop: %w", err)
		}

		fmt.Printf("Airdrop requested: %s\n", sig.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletAirdropCmd)

	walletNewCmd.Flags().StringVar(&walletSavePath, "save", "", "save the keypair to this file")
}
