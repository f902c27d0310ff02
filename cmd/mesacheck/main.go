// Package main provides the CLI entry point for mesacheck.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the global flags and what PersistentPreRunE derives from
// them.
type app struct {
	configPath string
	verbose    bool
	scanLimit  int
	fillColor  string

	cfg    *config.Config
	logger *zap.Logger
	// quietLog keeps the logger off the terminal unless a log file is
	// set. The TUI owns the screen.
	quietLog bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mesacheck",
		Short: "Confirm guests on a seating spreadsheet",
		Long: `mesacheck reads a seating sheet whose header row has "Mesa ..." columns,
lets you confirm the guests listed under each table and writes the sheet
back with names re-cased and confirmed guests highlighted.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	a.registerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(
		newListCmd(a),
		newRenderCmd(a),
		newTUICmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func (a *app) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&a.configPath, "config", "", "Config file path (default: $XDG_CONFIG_HOME/mesacheck/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.IntVar(&a.scanLimit, "scan-limit", mesacheck.DefaultScanLimit, "Rows searched for the header")
	flags.StringVar(&a.fillColor, "fill-color", mesacheck.DefaultFillColor, "RGB fill of confirmed cells")
}

// setup loads the configuration, applies flag overrides and builds the
// logger. Flags win over environment variables, which win over the file.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to locate config: %w", err)
		}
		path = p
	}
	a.configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("scan-limit") {
		cfg.ScanLimit = a.scanLimit
	}
	if flags.Changed("fill-color") {
		cfg.FillColor = a.fillColor
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.quietLog = cmd.Name() == "tui"
	logger, err := newLogger(cfg.Log, a.quietLog)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// newLogger builds a production logger at the configured level, writing
// to the log file when one is set. A quiet logger without a file is a
// no-op.
func newLogger(lc config.LogConfig, quiet bool) (*zap.Logger, error) {
	if quiet && lc.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

func (a *app) options() mesacheck.Options {
	return a.cfg.Options()
}
