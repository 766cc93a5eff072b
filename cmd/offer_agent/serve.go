package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/offer-analyzer/internal/config"
	"github.com/jonathan/offer-analyzer/internal/logger"
	"github.com/jonathan/offer-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for offer assessment, offer parsing, script generation, salary contributions, and minimum wage data. The database, Redis, and the Gemini API are all optional; endpoints that need a missing backend return 503.`,
	RunE:  runServe,
}

var (
	servePort       int
	serveConfigFile string
	serveVerbose    bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT env var)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to a JSON config file")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Environment first, then the config file for anything unset, then
	// built-in defaults.
	cfg := config.FromEnv()
	if serveConfigFile != "" {
		fileCfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Config{})
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(true, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if os.Getenv("GEMINI_API_KEY") == "" && cfg.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Warning: GEMINI_API_KEY not set, offer parsing disabled\n")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		RedisAddr:   cfg.RedisAddr,
		APIKey:      cfg.APIKey,
		MinSamples:  cfg.MinSamples,
		RateLimit:   cfg.RateLimitPerMinute,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
