package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/internal/config"
	"github.com/lizardbyte/shinebrew/internal/engine"
	"github.com/lizardbyte/shinebrew/internal/env"
	"github.com/lizardbyte/shinebrew/internal/logging"
)

var (
	configPath string
	verbose    bool
	quiet      bool
	logFormat  string

	// cfg is loaded before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shinebrew",
	Short: "shinebrew builds and installs Sunshine",
	Long: `shinebrew builds and installs the Sunshine game stream host from source.
It resolves build options for the target platform, checks their requirements,
drives CMake through configure, compile and install, and reports caveats.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "settings file (default <cache>/.shinebrew/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Stream build output and log debug messages")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Write build output to a log file and show progress only")
	pf.StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

func setup(cmd *cobra.Command, _ []string) error {
	path, optional := configPath, false
	if path == "" {
		work, err := env.WorkDir()
		if err != nil {
			return err
		}
		path, optional = filepath.Join(work, "config.yaml"), true
	}
	loaded, err := config.Load(path, optional)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if quiet {
		cfg.Quiet = true
	}
	if verbose {
		logCfg.Level = "debug"
		cfg.Quiet = false
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var stage *engine.StageError
	if errors.As(err, &stage) {
		color.New(color.FgRed).Fprintf(os.Stderr, " ✘ %s failed: %v\n", stage.Stage, stage.Err)
	} else {
		color.New(color.FgRed).Fprintf(os.Stderr, " ✘ %v\n", err)
	}
	return 1
}
