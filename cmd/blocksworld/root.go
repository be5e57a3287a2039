package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anthropics/blocksworld-engine/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "blocksworld",
		Short: "Natural-language command processor for a tabletop block world",
		Long: `blocksworld interprets natural-language commands against a scene of
stacked blocks and plans the arm actions that carry them out.

Quantifier note: "put all balls in any box" lets every ball pick its own
box; the shared-container reading is not supported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to configuration JSON file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newReplCmd(a))
	root.AddCommand(newWorldsCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("blocksworld %s (commit=%s, built=%s)\n", version, commit, date)
		},
	}
}

// setup resolves the configuration and builds the logger.
// Resolution order: --config flag > BW_CONFIG env > config.json next to
// the exe or in the cwd > built-in defaults.
func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("BW_CONFIG")
	}
	if path == "" {
		path = discoverConfig()
	}

	if path == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	}

	logger, err := buildLogger(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// discoverConfig looks for config.json next to the executable, then in the cwd.
func discoverConfig() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "config.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json"
	}
	return ""
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
