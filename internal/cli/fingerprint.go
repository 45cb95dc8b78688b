package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/internal/integrity"
	"github.com/nxmods/stockcheck/internal/yaz0"
	"github.com/nxmods/stockcheck/pkg/color"
)

var fingerprintRaw bool

type fingerprintResult struct {
	File        string `json:"file"`
	Fingerprint string `json:"fingerprint"`
	Value       uint64 `json:"value"`
	Yaz0        bool   `json:"yaz0"`
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>...",
	Short: "Print XXH64 fingerprints of files",
	Long: `Print the XXH64 fingerprint of each file, as used by the stock tables.

Yaz0 files are decompressed first unless --raw is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]fingerprintResult, 0, len(args))
		for _, name := range args {
			data, err := os.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			r := fingerprintResult{File: name, Yaz0: yaz0.HasMagic(data)}
			if fingerprintRaw {
				r.Value = integrity.Fingerprint(data)
			} else {
				r.Value, err = integrity.FingerprintContent(data, nil)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			r.Fingerprint = integrity.Format(r.Value)
			results = append(results, r)
		}

		if jsonOutput {
			return outputJSON(results)
		}
		for _, r := range results {
			fmt.Printf("%s  %s\n", r.Fingerprint, color.Path(r.File))
		}
		return nil
	},
}

func init() {
	fingerprintCmd.Flags().BoolVar(&fingerprintRaw, "raw", false, "fingerprint the bytes as stored, without Yaz0 decoding")
	rootCmd.AddCommand(fingerprintCmd)
}
