package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/pkg/color"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stock game's resource paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		det, err := openDetector(cmd)
		if err != nil {
			return err
		}
		paths := det.ListPaths()
		if jsonOutput {
			return outputJSON(paths)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

type knownResult struct {
	Path  string `json:"path"`
	Known bool   `json:"known"`
}

var knownCmd = &cobra.Command{
	Use:   "known <path>...",
	Short: "Report whether canonical paths belong to the stock game",
	Long: `Report whether each canonical path belongs to the stock game.

Examples:
  stockcheck known Actor/ActorInfo.product.byml
  stockcheck known --platform switch Aoc/0010/Pack/AocMainField.pack`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		det, err := openDetector(cmd)
		if err != nil {
			return err
		}
		results := make([]knownResult, 0, len(args))
		for _, p := range args {
			results = append(results, knownResult{Path: p, Known: det.IsKnown(p)})
		}

		if jsonOutput {
			return outputJSON(results)
		}
		for _, r := range results {
			status := color.Success("stock")
			if !r.Known {
				status = color.Warning("new")
			}
			fmt.Printf("%-5s %s\n", status, color.Path(r.Path))
		}
		return nil
	},
}

func init() {
	addPlatformFlag(listCmd)
	addPlatformFlag(knownCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(knownCmd)
}
