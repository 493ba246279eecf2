// Package main provides the entry point for the CampusConnect API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "campusconnect",
	Short: "CampusConnect partner matching server",
	Long:  "CampusConnect matches students with compatible study partners by running their profiles through an LLM-backed matching pipeline over the campus directory.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
