package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lugondev/go-launchpad/internal/client"
	"github.com/lugondev/go-launchpad/internal/config"
	solrpc "github.com/lugondev/go-launchpad/internal/solana"
)

var (
	cfgFile     string
	keypairPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Launchpad CLI - bonding-curve token launches on Solana",
	Long: `Launchpad is a CLI for launching and trading bonding-curve tokens
on Solana.

It provides commands for:
- Launching new tokens, optionally buying in the same transaction
- Buying and selling against existing pools
- Inspecting pool state
- Wallet management`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.launchpad.yaml)")
	rootCmd.PersistentFlags().StringVar(&keypairPath, "keypair", "", "path to the payer keypair file")
	rootCmd.PersistentFlags().String("rpc", "", "Solana RPC endpoint")
	rootCmd.PersistentFlags().String("network", "devnet", "Solana network (mainnet, devnet, testnet, localnet)")
	rootCmd.PersistentFlags().String("commitment", "confirmed", "commitment level (processed, confirmed, finalized)")
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)
}

// loadConfig returns the effective configuration after file, environment,
// and flag merging. Flags override the file only when explicitly set.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("rpc") {
		cfg.Solana.RPC, _ = flags.GetString("rpc")
	}
	if flags.Changed("network") {
		cfg.Solana.Network, _ = flags.GetString("network")
	}
	if flags.Changed("commitment") {
		cfg.Solana.Commitment, _ = flags.GetString("commitment")
	}
	return cfg, nil
}

// newClient builds a launchpad client from the effective configuration.
func newClient() (*client.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return client.New(cfg), cfg, nil
}

// loadPayer reads the payer keypair from --keypair.
func loadPayer() (*solrpc.Wallet, error) {
	if keypairPath == "" {
		return nil, fmt.Errorf("--keypair is required for this command")
	}
	return solrpc.WalletFromFile(keypairPath)
}

func setupLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
