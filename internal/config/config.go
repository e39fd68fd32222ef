package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the launchpad client.
type Config struct {
	Solana   SolanaConfig   `mapstructure:"solana" yaml:"solana"`
	Trade    TradeConfig    `mapstructure:"trade" yaml:"trade"`
	Submit   SubmitConfig   `mapstructure:"submit" yaml:"submit"`
	Metadata MetadataConfig `mapstructure:"metadata" yaml:"metadata"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// SolanaConfig holds Solana-specific configuration.
type SolanaConfig struct {
	RPC         string `mapstructure:"rpc" yaml:"rpc"`
	Network     string `mapstructure:"network" yaml:"network"`
	Commitment  string `mapstructure:"commitment" yaml:"commitment"` // processed, confirmed, finalized
	Timeout     int    `mapstructure:"timeout" yaml:"timeout"`       // per-request timeout in seconds
	LookupTable string `mapstructure:"lookup_table" yaml:"lookup_table"`
}

// TradeConfig holds trade construction defaults.
type TradeConfig struct {
	SlippageBps          uint64 `mapstructure:"slippage_bps" yaml:"slippage_bps"`
	ComputeUnitPrice     uint64 `mapstructure:"compute_unit_price" yaml:"compute_unit_price"` // micro-lamports
	ComputeUnitLimit     uint32 `mapstructure:"compute_unit_limit" yaml:"compute_unit_limit"`
	ShareFeeRate         uint64 `mapstructure:"share_fee_rate" yaml:"share_fee_rate"`
	GlobalConfigIndex    uint16 `mapstructure:"global_config_index" yaml:"global_config_index"`
	PlatformAdmin        string `mapstructure:"platform_admin" yaml:"platform_admin"`
	UseVersionedTx       bool   `mapstructure:"use_versioned_tx" yaml:"use_versioned_tx"`
	SkipPreflight        bool   `mapstructure:"skip_preflight" yaml:"skip_preflight"`
	QuoteMint            string `mapstructure:"quote_mint" yaml:"quote_mint"`
	DefaultCurveType     uint8  `mapstructure:"default_curve_type" yaml:"default_curve_type"`
	DefaultTokenDecimals uint8  `mapstructure:"default_token_decimals" yaml:"default_token_decimals"`
}

// SubmitConfig holds transaction submission behavior.
type SubmitConfig struct {
	MaxRetries     int `mapstructure:"max_retries" yaml:"max_retries"`
	RetryBaseDelay int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"` // milliseconds
	ConfirmTimeout int `mapstructure:"confirm_timeout" yaml:"confirm_timeout"`         // seconds
}

// MetadataConfig holds the metadata-upload collaborator endpoint.
type MetadataConfig struct {
	UploadURL string `mapstructure:"upload_url" yaml:"upload_url"`
	Timeout   int    `mapstructure:"timeout" yaml:"timeout"` // seconds
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // json or text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Solana: SolanaConfig{
			RPC:        "https://api.devnet.solana.com",
			Network:    "devnet",
			Commitment: "confirmed",
			Timeout:    30,
		},
		Trade: TradeConfig{
			SlippageBps:          500,
			ComputeUnitPrice:     100_000,
			ComputeUnitLimit:     600_000,
			GlobalConfigIndex:    0,
			QuoteMint:            "So11111111111111111111111111111111111111112",
			DefaultCurveType:     0,
			DefaultTokenDecimals: 6,
		},
		Submit: SubmitConfig{
			MaxRetries:     3,
			RetryBaseDelay: 500,
			ConfirmTimeout: 60,
		},
		Metadata: MetadataConfig{
			Timeout: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from file and environment. Each call reads
// into its own viper instance so one load never leaks file paths or
// values into the next.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".launchpad")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	// Environment variables
	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a yaml file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetRPCEndpoint returns the RPC endpoint for the configured network.
func (c *SolanaConfig) GetRPCEndpoint() string {
	if c.RPC != "" {
		return c.RPC
	}

	switch c.Network {
	case "mainnet", "mainnet-beta":
		return "https://api.mainnet-beta.solana.com"
	case "testnet":
		return "https://api.testnet.solana.com"
	case "localnet", "localhost":
		return "http://localhost:8899"
	default:
		return "https://api.devnet.solana.com"
	}
}
