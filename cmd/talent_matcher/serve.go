package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/server"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running candidate searches, including a streaming variant over Server-Sent Events.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env var, then 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		JWTSecret:   cfg.JWTSecret,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
