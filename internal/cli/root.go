package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"natkey/config"
	"natkey/internal/logging"
)

var (
	cfgFile   string
	cfg       *config.Config
	rootDir   string
	outFormat string
	verbose   bool
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "natkey",
	Short: "Natural keys and date fields for strings and file trees",
	Long: `natkey splits strings into alternating runs of digits and non-digits
(the building blocks of natural sort keys) and reads year, month and day
fields from dates.

Example usage:
  natkey split "img12.jpg" "2023-10-05"   # Tokenize strings
  natkey field --field day 1999-12-31     # Read a date field
  natkey scan .                           # Key every file under a directory
  natkey keys                             # Show stored keys`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}
		if rootDir, err = filepath.Abs(rootDir); err != nil {
			return fmt.Errorf("invalid root directory: %w", err)
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if outFormat != "" {
			cfg.Output.Format = outFormat
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = logging.New(cfg.Logging.Level)
		if err != nil {
			return err
		}
		logger.Debug("Config loaded", zap.String("dir", rootDir), zap.String("format", cfg.Output.Format))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./natkey.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
