package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/pkg/canon"
	"github.com/nxmods/stockcheck/pkg/color"
)

var canonNoRoot bool

type canonResult struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical,omitempty"`
	OK        bool   `json:"ok"`
}

var canonCmd = &cobra.Command{
	Use:   "canon <path>...",
	Short: "Print canonical resource paths",
	Long: `Print the canonical resource path for each argument.

Paths may use either slash style and any of the known content roots
(content/, aoc/0010/, Atmosphere title folders, romfs dumps). Unrecognized
paths print "-".

With --no-root only separators and the ".s" extension prefix are normalized.

Examples:
  stockcheck canon content/Actor/Pack/Enemy_Lizalfos_Senior.sbactorpack
  stockcheck canon 'aoc\0010\Map\MainField\A-1\A-1_Dynamic.smubin'
  stockcheck canon --no-root 'Actor\Pack\Enemy_Lizalfos_Senior.sbactorpack'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := make([]canonResult, 0, len(args))
		for _, raw := range args {
			r := canonResult{Input: raw}
			if canonNoRoot {
				r.Canonical, r.OK = canon.WithoutRoot(raw), true
			} else {
				r.Canonical, r.OK = canon.Canonicalize(raw)
			}
			results = append(results, r)
		}

		if jsonOutput {
			return outputJSON(results)
		}
		for _, r := range results {
			if r.OK {
				fmt.Println(color.Path(r.Canonical))
			} else {
				fmt.Println(color.Dim("-"))
			}
		}
		return nil
	},
}

func init() {
	canonCmd.Flags().BoolVar(&canonNoRoot, "no-root", false, "only normalize separators and the .s prefix")
	rootCmd.AddCommand(canonCmd)
}
