package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"loomii/internal/config"
	"loomii/internal/logging"
)

var (
	// Global flags
	cfgPath   string
	verbose   bool
	workspace string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "loomii",
	Short: "loomii - competitive insight question answering service",
	Long: `loomii answers questions over a corpus of competitive insights and
proposed actions. It classifies each question, retrieves the most
relevant documents with a tunable strategy, and streams an LLM answer
followed by structured card metadata in a single response.

Run "loomii serve" to start the HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars still win.
		_ = godotenv.Load()

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Logging.Debug = true
		}

		if err := logging.Initialize(workspace, cfg.LogSettings()); err != nil {
			logger.Warn("file logging disabled", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "loomii.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "Workspace directory for logs and data")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
