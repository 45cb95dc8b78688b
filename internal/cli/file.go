package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/internal/integrity"
	"github.com/nxmods/stockcheck/pkg/canon"
	"github.com/nxmods/stockcheck/pkg/color"
	"github.com/nxmods/stockcheck/pkg/errclass"
)

var fileNewIsModified bool

type fileResult struct {
	Path        string `json:"path"`
	File        string `json:"file"`
	Verdict     string `json:"verdict"`
	Modified    bool   `json:"modified"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

var fileCmd = &cobra.Command{
	Use:   "file <path> <file>",
	Short: "Check one file against the stock game",
	Long: `Check the contents of <file> as the game resource <path>.

<path> is a canonical resource path; a path with a content or aoc root is
canonicalized first.

Examples:
  stockcheck file Actor/Pack/Enemy_Lizalfos_Senior.bactorpack ./Enemy_Lizalfos_Senior.sbactorpack
  stockcheck file --platform switch content/Pack/Bootup.pack ./Bootup.pack`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !canon.IsCanonical(path) {
			p, ok := canon.Canonicalize(path)
			if !ok {
				return errclass.ErrPathUnrecognized.WithMessagef("not a game resource path: %s", path)
			}
			path = p
		}

		content, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		det, err := openDetector(cmd)
		if err != nil {
			return err
		}

		newIsModified := cfg.NewIsModified
		if cmd.Flags().Changed("new-is-modified") {
			newIsModified = fileNewIsModified
		}

		res := fileResult{
			Path:     path,
			File:     args[1],
			Verdict:  det.Verdict(path, content).String(),
			Modified: det.IsModified(path, content, newIsModified),
		}
		if fp, err := integrity.FingerprintContent(content, nil); err == nil {
			res.Fingerprint = integrity.Format(fp)
		}

		if jsonOutput {
			return outputJSON(res)
		}
		fmt.Printf("%s %s\n", color.Verdict(res.Verdict), color.Path(res.Path))
		if res.Fingerprint != "" {
			fmt.Printf("  fingerprint: %s\n", color.Dim(res.Fingerprint))
		}
		fmt.Printf("  modified: %v\n", res.Modified)
		return nil
	},
}

func init() {
	addPlatformFlag(fileCmd)
	fileCmd.Flags().BoolVar(&fileNewIsModified, "new-is-modified", false, "count a path missing from the stock game as modified")
	rootCmd.AddCommand(fileCmd)
}
