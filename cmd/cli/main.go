package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/cmd/cli/commands"
	"github.com/jakechorley/furnace-rank/internal/config"
	"github.com/jakechorley/furnace-rank/pkg/utils/logging"
)

var (
	configPath string
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "furnace-rank",
		Short: "Furnace ranking CLI - find the best furnace for each steel type",
		Long: `Scores every furnace/steel trial on elongation, resistance, yield and processing time,
and reports the best furnace for each steel type.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.Env, "env", "e", "", "Environment (selects furnace_rank_config.<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (overrides --env lookup)")
	rootCmd.PersistentFlags().StringVarP(&app.FilePath, "file", "f", "", "Read trials from this CSV or XLSX file instead of the configured source")
	rootCmd.PersistentFlags().StringVar(&app.Sheet, "sheet", "", "Worksheet to read from an XLSX file (defaults to the first)")

	rootCmd.AddCommand(commands.ScoreCmd(app))
	rootCmd.AddCommand(commands.BestCmd(app))
	rootCmd.AddCommand(commands.SteelsCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration and sets up the logger
func initApp() error {
	app.Ctx = context.Background()

	var cfg *config.Config
	var cfgErr error
	if configPath != "" {
		cfg, cfgErr = config.LoadFromPath(configPath)
	} else {
		cfg, cfgErr = config.LoadWithEnv(app.Env)
	}
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrConfigNotFound) {
		return fmt.Errorf("failed to load config: %w", cfgErr)
	}
	app.Cfg = cfg

	logger, logFile, err := logging.InitLogger(app.Env, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Debug("Starting application",
		zap.String("environment", app.Env),
		zap.String("log_file", logFile),
	)
	if errors.Is(cfgErr, config.ErrConfigNotFound) {
		app.Logger.Debug("No config file found, using defaults")
	}

	return nil
}
