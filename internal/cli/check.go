package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/internal/report"
	"github.com/nxmods/stockcheck/internal/scan"
	"github.com/nxmods/stockcheck/pkg/color"
	"github.com/nxmods/stockcheck/pkg/progress"
)

var (
	checkNewIsModified  bool
	checkWorkers        int
	checkReport         string
	checkFormat         string
	checkFailOnModified bool
	checkNoProgress     bool
	checkAll            bool
)

var checkCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Check a mod or dump directory against the stock game",
	Long: `Check every file below <dir> against the stock fingerprints.

<dir> may be a mod folder holding content/ and aoc/, or a dump root such as
.../content or .../01007EF00011E000/romfs. Files outside any known root are
skipped. Only modified, corrupt and (with --new-is-modified) added files are
listed unless --all is given.

Examples:
  stockcheck check ~/mods/MyMod
  stockcheck check --platform switch --report out.yaml --format yaml ./romfs
  stockcheck check --fail-on-modified ./dump   # exit 1 on any change`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		det, err := openDetector(cmd)
		if err != nil {
			return err
		}

		newIsModified := cfg.NewIsModified
		if cmd.Flags().Changed("new-is-modified") {
			newIsModified = checkNewIsModified
		}
		workers := cfg.Workers
		if cmd.Flags().Changed("workers") {
			workers = checkWorkers
		}
		format := cfg.Report.Format
		if cmd.Flags().Changed("format") {
			format = checkFormat
		}
		reportFormat, err := report.ParseFormat(format)
		if err != nil {
			return err
		}

		term := progress.NewTerminal(!jsonOutput && !checkNoProgress && isTerminal(os.Stderr))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s := scan.New(det, scan.Options{
			Workers:       workers,
			NewIsModified: newIsModified,
			Progress:      term.Callback(),
		})
		res, err := s.Scan(ctx, args[0])
		if err != nil {
			return err
		}

		if checkReport != "" {
			if err := report.Write(checkReport, reportFormat, res); err != nil {
				return err
			}
		}

		if jsonOutput {
			if err := outputJSON(res); err != nil {
				return err
			}
		} else {
			printScan(res)
		}

		if checkFailOnModified && res.Summary.Flagged > 0 {
			return errFlagged
		}
		return nil
	},
}

func printScan(res *scan.Result) {
	for _, e := range res.Entries {
		if !checkAll && !e.Modified {
			continue
		}
		name := e.Path
		if name == "" {
			name = e.File
		}
		fmt.Printf("%-10s %s\n", color.Verdict(string(e.Status)), color.Path(name))
	}

	s := res.Summary
	fmt.Printf("%s %d files: %d unmodified, %d modified, %d added, %d corrupt, %d skipped",
		color.Header(fmt.Sprintf("%s %s:", res.Platform, res.GameVersion)),
		s.Total, s.Unmodified, s.Modified, s.Added, s.Corrupt, s.Skipped)
	if s.Errors > 0 {
		fmt.Printf(", %s", color.Error(fmt.Sprintf("%d unreadable", s.Errors)))
	}
	fmt.Println()
	if checkReport != "" {
		fmt.Printf("Report written to %s\n", color.Path(checkReport))
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func init() {
	addPlatformFlag(checkCmd)
	checkCmd.Flags().BoolVar(&checkNewIsModified, "new-is-modified", false, "count files missing from the stock game as modified")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "files checked in parallel (default: number of CPUs)")
	checkCmd.Flags().StringVar(&checkReport, "report", "", "write a full report to this file")
	checkCmd.Flags().StringVar(&checkFormat, "format", "json", "report format: json, yaml, cbor")
	checkCmd.Flags().BoolVar(&checkFailOnModified, "fail-on-modified", false, "exit with status 1 when modified files are found")
	checkCmd.Flags().BoolVar(&checkNoProgress, "no-progress", false, "disable the progress bar")
	checkCmd.Flags().BoolVar(&checkAll, "all", false, "list every file, not only modified ones")
	rootCmd.AddCommand(checkCmd)
}
