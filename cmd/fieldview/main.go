package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/soilution/fieldview/internal/cli"
	"github.com/soilution/fieldview/internal/config"
	"github.com/soilution/fieldview/internal/logging"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fieldview",
	Short: "fieldview - responsive soil analysis dashboard",
	Long: `fieldview is a terminal dashboard for soil readings and crop
recommendations that adapts its layout to the viewport.

The terminal width (columns times the configured cell width) is classified
into a tier: very-narrow, narrow, mobile, tablet or desktop. On every tier
change a catalog of region overrides is applied, and the overrides of the
previous tier are reverted.

Run without arguments to start the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print machine-readable JSON")

	rootCmd.AddCommand(classifyCmd, catalogCmd, watchCmd, versionCmd)
}

// setup loads the configuration and builds the logger. The dashboard owns
// the terminal, so it logs to a file unless one is configured.
func setup(cmd *cobra.Command) error {
	c, err := config.LoadConfig(configPath)
	if err != nil {
		return cli.WithCode(cli.CodeConfig, "fix or remove "+configPath, fmt.Errorf("load config: %w", err))
	}
	if verbose {
		c.Log.Level = "debug"
	}
	cfg = c

	fallback := "stderr"
	if cmd == rootCmd {
		fallback = logging.DefaultFile()
	}
	logger, err = logging.New(cfg.Log, fallback)
	return err
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(path string) (compensation.Catalog, error) {
	if path == "" {
		return compensation.DefaultCatalog(), nil
	}
	cat, err := compensation.LoadCatalog(path)
	return cat, cli.WithCode(cli.CodeCatalog, "print a valid starting point with: fieldview catalog", err)
}

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		if jsonOutput {
			_ = cli.PrintJSON(os.Stdout, cli.NewResponseError(cmd.Name(), err, time.Now()))
		}
		os.Exit(1)
	}
}
