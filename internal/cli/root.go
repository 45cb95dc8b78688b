package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nxmods/stockcheck/pkg/color"
	"github.com/nxmods/stockcheck/pkg/config"
	"github.com/nxmods/stockcheck/pkg/logging"
)

var (
	jsonOutput bool
	noColor    bool
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg = config.Default()

	rootCmd = newRootCmd()
)

// errFlagged is returned by check when --fail-on-modified is set and
// modified files were found. It only sets the exit status.
var errFlagged = errors.New("modified files found")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stockcheck",
		Short: "stockcheck - detect changes to stock Breath of the Wild files",
		Long: `stockcheck compares game files against fingerprints of the unmodified
game and turns loader and dump paths into canonical resource paths.
Wii U (1.5.0) and Switch (1.6.0) releases are supported.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	return cmd
}

// setup loads the config file and applies logging and color settings.
func setup(cmd *cobra.Command, args []string) error {
	color.Init(noColor)
	if noColor {
		color.Disable()
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	levelName := cfg.Logging.Level
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(level)
	logger.SetFormat(format)
	logging.SetGlobal(logger)

	logging.Debug("config loaded", map[string]any{"path": path, "platform": cfg.Platform.String()})
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFlagged) {
			fmtErr("%v", err)
		}
		os.Exit(1)
	}
}

// outputJSON prints v as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fmtErr(format string, args ...any) {
	prefix := "stockcheck: "
	if color.Enabled() {
		prefix = color.Error("stockcheck:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
