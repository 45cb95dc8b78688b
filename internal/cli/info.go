package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the stock table in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		det, err := openDetector(cmd)
		if err != nil {
			return err
		}
		p := det.Platform()
		source := cfg.Datasets.For(p)
		if source == "" {
			source = "embedded"
		}

		info := map[string]any{
			"platform":     p.String(),
			"game_version": p.GameVersion(),
			"dataset":      source,
			"paths":        det.Len(),
		}

		if jsonOutput {
			return outputJSON(info)
		}

		fmt.Printf("Platform: %s\n", p)
		fmt.Printf("  Game version: %s\n", p.GameVersion())
		fmt.Printf("  Dataset: %s\n", source)
		fmt.Printf("  Stock paths: %d\n", det.Len())
		return nil
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func init() {
	addPlatformFlag(infoCmd)
	rootCmd.AddCommand(infoCmd)
}
