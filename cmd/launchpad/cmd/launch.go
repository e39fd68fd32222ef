package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lugondev/go-launchpad/internal/client"
	"github.com/lugondev/go-launchpad/internal/launchpad"
	"github.com/lugondev/go-launchpad/internal/metadata"
)

var launchFlags struct {
	name        string
	symbol      string
	uri         string
	decimals    uint8
	supply      uint64
	baseSell    uint64
	fundRaising uint64
	curve       string
	buySOL      uint64

	description string
	imagePath   string
	twitter     string
	telegram    string
	website     string
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch a new bonding-curve token",
	Long: `Launch a new token on the bonding curve.

When --uri is omitted the token metadata is uploaded to the configured
storage endpoint first. Use --buy to purchase in the same transaction as
the launch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		payer, err := loadPayer()
		if err != nil {
			return err
		}
		c, _, err := newClient()
		if err != nil {
			return err
		}

		curveKind, err := parseCurveKind(launchFlags.curve)
		if err != nil {
			return err
		}

		req := client.LaunchRequest{
			Name:     launchFlags.name,
			Symbol:   launchFlags.symbol,
			URI:      launchFlags.uri,
			Decimals: launchFlags.decimals,
			Curve: launchpad.CurveParams{
				Kind:                  curveKind,
				Supply:                launchFlags.supply,
				TotalBaseSell:         launchFlags.baseSell,
				TotalQuoteFundRaising: launchFlags.fundRaising,
			},
		}

		if req.URI == "" {
			req.Metadata = &metadata.TokenMetadata{
				Name:        launchFlags.name,
				Symbol:      launchFlags.symbol,
				Description: launchFlags.description,
				Twitter:     launchFlags.twitter,
				Telegram:    launchFlags.telegram,
				Website:     launchFlags.website,
			}
			if launchFlags.imagePath != "" {
				image, err := os.ReadFile(launchFlags.imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				req.Image = image
			}
		}

		var res *client.TxResult
		if launchFlags.buySOL > 0 {
			res = c.InitializeAndBuy(cmd.Context(), payer.PrivateKey(), req, launchFlags.buySOL)
		} else {
			res = c.Initialize(cmd.Context(), payer.PrivateKey(), req)
		}

		printResult(res)
		if res.Err != nil {
			return res.Err
		}
		return nil
	},
}

func parseCurveKind(s string) (launchpad.CurveKind, error) {
	switch s {
	case "constant", "":
		return launchpad.CurveConstant, nil
	case "fixed":
		return launchpad.CurveFixed, nil
	case "linear":
		return launchpad.CurveLinear, nil
	default:
		return 0, fmt.Errorf("unknown curve %q (constant, fixed, linear)", s)
	}
}

func printResult(res *client.TxResult) {
	fmt.Printf("Operation:  %s (%s)\n", res.Description, res.OperationID)
	if !res.BaseMint.IsZero() {
		fmt.Printf("Mint:       %s\n", res.BaseMint.String())
	}
	if !res.Pool.IsZero() {
		fmt.Printf("Pool:       %s\n", res.Pool.String())
	}
	if !res.Signature.IsZero() {
		fmt.Printf("Signature:  %s\n", res.Signature.String())
	}
	if res.Success {
		fmt.Println("Status:     confirmed")
	} else if res.Err != nil {
		fmt.Printf("Status:     failed: %v\n", res.Err)
	}
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().StringVar(&launchFlags.name, "name", "", "token name")
	launchCmd.Flags().StringVar(&launchFlags.symbol, "symbol", "", "token symbol")
	launchCmd.Flags().StringVar(&launchFlags.uri, "uri", "", "metadata URI (skips upload)")
	launchCmd.Flags().Uint8Var(&launchFlags.decimals, "decimals", 6, "token decimals")
	launchCmd.Flags().Uint64Var(&launchFlags.supply, "supply", 1_000_000_000_000_000, "total token supply (base units)")
	launchCmd.Flags().Uint64Var(&launchFlags.baseSell, "base-sell", 793_100_000_000_000, "tokens sold on the curve (base units)")
	launchCmd.Flags().Uint64Var(&launchFlags.fundRaising, "fund-raising", 85_000_000_000, "quote fundraising target (lamports)")
	launchCmd.Flags().StringVar(&launchFlags.curve, "curve", "constant", "curve type (constant, fixed, linear)")
	launchCmd.Flags().Uint64Var(&launchFlags.buySOL, "buy", 0, "buy this many quote lamports in the launch transaction")
	launchCmd.Flags().StringVar(&launchFlags.description, "description", "", "token description for metadata upload")
	launchCmd.Flags().StringVar(&launchFlags.imagePath, "image", "", "token image file for metadata upload")
	launchCmd.Flags().StringVar(&launchFlags.twitter, "twitter", "", "twitter link for metadata upload")
	launchCmd.Flags().StringVar(&launchFlags.telegram, "telegram", "", "telegram link for metadata upload")
	launchCmd.Flags().StringVar(&launchFlags.website, "website", "", "website link for metadata upload")

	_ = launchCmd.MarkFlagRequired("name")
	_ = launchCmd.MarkFlagRequired("symbol")
}
