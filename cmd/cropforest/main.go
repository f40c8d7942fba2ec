package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/cropforest/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "cropforest",
		Short: "cropforest is a tool to recommend crops with a random forest",
		Long:  `A tool to generate crop datasets, grow random forests from them, evaluate them, and use them to recommend crops for a piece of land`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.close()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information to STDERR")
	rootCmd.PersistentFlags().StringVarP(&(config.configPath), "config", "f", "cropforest.yml", "path to a YML configuration file (defaults are used if it does not exist)")
	rootCmd.AddCommand(
		versionCmd(),
		datasetCmd(config),
		catalogCmd(config),
		growCmd(config),
		predictCmd(config),
		testCmd(config),
		evaluateCmd(config),
		importanceCmd(config),
		treeCmd(config),
		forestsCmd(config),
	)
	return rootCmd
}

func (rcc *rootCmdConfig) init() error {
	cfg, err := config.Load(rcc.configPath)
	if err != nil {
		return err
	}
	rcc.cfg = cfg
	zc := zap.NewProductionConfig()
	if cfg.Logging.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("parsing logging level: %v", err)
		}
		zc.Level = level
	}
	if rcc.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	rcc.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %v", err)
	}
	return nil
}

func (rcc *rootCmdConfig) close() {
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	if rcc.logger != nil {
		_ = rcc.logger.Sync()
	}
}

func (rcc *rootCmdConfig) Logger() *zap.Logger {
	if rcc.logger == nil {
		return zap.NewNop()
	}
	return rcc.logger
}

func (rcc *rootCmdConfig) Config() *config.Config {
	if rcc.cfg == nil {
		return config.Default()
	}
	return rcc.cfg
}

func (rcc *rootCmdConfig) Context() context.Context {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
	return rcc.ctx
}

func exitOnError(err error, code int) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
