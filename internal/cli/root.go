// Package cli implements the childsim CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"childsim/internal/config"
	"childsim/internal/logging"
	"childsim/internal/memory"
)

var (
	configPath string
	dbPath     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "childsim",
	Short: "Generate minute-by-minute developmental simulation records",
	Long: "childsim drives a text generation service to produce paired external-reality\n" +
		"and internal-monologue records for each day of a simulated childhood.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "childsim.yaml", "Config file path")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Memory database path (default: from config or $CHILDSIM_MEMORY_DB)")
	RootCmd.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.MemoryDB = dbPath
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg
}

func newLogger(cfg config.Config) *zap.Logger {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		exitErr("init logging", err)
	}
	return log
}

func openStore(cfg config.Config) *memory.Store {
	s, err := memory.NewStore(cfg.MemoryDB)
	if err != nil {
		exitErr("open memory store", err)
	}
	return s
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
