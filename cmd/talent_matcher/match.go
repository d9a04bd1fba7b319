package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/db"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/matching"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one candidate search for a role",
	Long: `Runs the full agentic candidate search for a role: the model inspects
skill tags and employee records through tools and persists its ranked
candidates. The terminal result is printed as JSON.`,
	RunE: runMatch,
}

var (
	matchConfigPath  string
	matchRoleID      int
	matchModel       string
	matchAPIKey      string
	matchDatabaseURL string
	matchVerbose     bool
)

func init() {
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	matchCmd.Flags().IntVar(&matchRoleID, "role-id", 0, "ID of the role to search candidates for (required)")
	matchCmd.Flags().StringVar(&matchModel, "model", "", "Model tier: lite, standard or advanced (default advanced)")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	matchCmd.Flags().StringVar(&matchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = matchCmd.MarkFlagRequired("role-id")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{}
	if matchConfigPath != "" {
		loaded, err := config.LoadConfig(matchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if cmd.Flags().Changed("model") {
		cfg.Model = matchModel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = matchDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = matchVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or --db-url)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY or --api-key)")
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	model, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return err
	}
	defer model.Close() //nolint:errcheck

	result, err := matching.Run(ctx, matching.Options{
		RoleID:  matchRoleID,
		Roles:   store,
		Store:   store,
		Model:   model,
		Tier:    llm.ModelTier(cfg.Model),
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
