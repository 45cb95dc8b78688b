package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/internal/doctor"
	"github.com/nxmods/stockcheck/pkg/color"
)

var (
	doctorStrict bool
)

// errUnhealthy is returned by doctor when a critical finding is reported.
var errUnhealthy = fmt.Errorf("stock tables are unhealthy")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the stock tables",
	Long: `Check the stock tables.

Verifies that the embedded tables and any configured override tables load
and are well formed. Use --strict to also check that every path can be
produced by the canonicalizer and that overrides cover the embedded paths.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := doctor.NewDoctor(cfg.Datasets)
		result, err := doc.Check(doctorStrict)
		if err != nil {
			return fmt.Errorf("doctor: %w", err)
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else if len(result.Findings) == 0 {
			fmt.Println(color.Success("Stock tables are healthy."))
		} else {
			fmt.Printf("Findings (%d):\n", len(result.Findings))
			for _, f := range result.Findings {
				fmt.Printf("  [%s] %s: %s\n", severity(f.Severity), f.Category, f.Description)
			}
		}

		if !result.Healthy {
			return errUnhealthy
		}
		return nil
	},
}

func severity(s string) string {
	switch s {
	case "critical", "error":
		return color.Error(s)
	case "warning":
		return color.Warning(s)
	default:
		return color.Dim(s)
	}
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "include canonicalizer and coverage checks")
	rootCmd.AddCommand(doctorCmd)
}
