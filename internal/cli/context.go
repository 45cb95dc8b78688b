package cli

import (
	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/pkg/logging"
	"github.com/nxmods/stockcheck/pkg/stock"
)

// platformFlag backs the --platform flag shared by the commands that
// query a stock table.
var platformFlag stock.Platform

func addPlatformFlag(cmd *cobra.Command) {
	cmd.Flags().Var(&platformFlag, "platform", "game platform: wiiu or switch (default from config)")
}

// resolvePlatform returns the --platform value when given, otherwise the
// configured platform.
func resolvePlatform(cmd *cobra.Command) stock.Platform {
	if f := cmd.Flags().Lookup("platform"); f != nil && f.Changed {
		return platformFlag
	}
	return cfg.Platform
}

// openDetector builds the detector for the command's platform, honoring a
// configured override table.
func openDetector(cmd *cobra.Command) (*stock.Detector, error) {
	p := resolvePlatform(cmd)
	override := cfg.Datasets.For(p)
	if override != "" {
		logging.Info("using override dataset", map[string]any{"platform": p.String(), "path": override})
	}
	return stock.Open(p, override)
}
