package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusconnect/campusconnect/internal/directory"
	"github.com/campusconnect/campusconnect/internal/llm"
	"github.com/campusconnect/campusconnect/internal/matching"
	"github.com/campusconnect/campusconnect/internal/observability"
	"github.com/campusconnect/campusconnect/internal/oracle"
)

var findPartnersCmd = &cobra.Command{
	Use:   "find-partners",
	Short: "Find study partner suggestions for a profile",
	Long: `Run the partner matching pipeline from the command line: assemble the
directory corpus, query the matching model, and print the ranked suggestions
as JSON. Pass --user-id to boost the user's existing connections.`,
	RunE: runFindPartners,
}

var (
	findProfileText string
	findProfileFile string
	findUserID      string
	findCount       int
	findTimeout     int
	findDatabaseURL string
	findAPIKey      string
	findVerbose     bool
)

func init() {
	findPartnersCmd.Flags().StringVar(&findProfileText, "profile", "", "Profile text to match against the directory")
	findPartnersCmd.Flags().StringVar(&findProfileFile, "profile-file", "", "Path to a file containing the profile text")
	findPartnersCmd.Flags().StringVar(&findUserID, "user-id", "", "Account id of the caller (enables connection boosting)")
	findPartnersCmd.Flags().IntVar(&findCount, "count", matching.DefaultSuggestionCount, "Number of suggestions to request")
	findPartnersCmd.Flags().IntVar(&findTimeout, "timeout", 60, "Matching model call timeout in seconds")
	findPartnersCmd.Flags().StringVar(&findDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	findPartnersCmd.Flags().StringVar(&findAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	findPartnersCmd.Flags().BoolVarP(&findVerbose, "verbose", "v", false, "Print corpus and ranking details")

	rootCmd.AddCommand(findPartnersCmd)
}

func runFindPartners(_ *cobra.Command, _ []string) error {
	if findProfileText != "" && findProfileFile != "" {
		return fmt.Errorf("cannot use --profile with --profile-file")
	}

	profileText := findProfileText
	if findProfileFile != "" {
		content, err := os.ReadFile(findProfileFile)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		profileText = string(content)
	}
	if profileText == "" {
		return fmt.Errorf("profile text is required (use --profile or --profile-file)")
	}

	apiKey := findAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	databaseURL := findDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url flag)")
	}

	ctx := context.Background()

	db, err := directory.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stderr)
	if findVerbose {
		users, err := db.GetAllUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch directory: %w", err)
		}
		printer.PrintCorpusSummary(users)
	}

	finder := matching.NewFinder(db, oracle.New(client), matching.Options{
		DesiredCount: findCount,
		Timeout:      time.Duration(findTimeout) * time.Second,
	})

	results, err := finder.FindPartners(ctx, findUserID, profileText)
	if err != nil {
		return fmt.Errorf("partner matching failed: %w", err)
	}

	if findVerbose {
		printer.PrintRankedMatches(results)
	}

	output, err := json.MarshalIndent(matching.ToViewModel(results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	fmt.Println(string(output))

	return nil
}
