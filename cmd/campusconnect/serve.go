package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusconnect/campusconnect/internal/config"
	"github.com/campusconnect/campusconnect/internal/server"
)

var (
	servePort          int
	serveConfigPath    string
	serveAvatarDir     string
	serveAvatarURL     string
	serveOracleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the directory, connection, and partner matching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveAvatarDir, "avatar-dir", "", "Directory for uploaded avatars (default data/avatars)")
	serveCmd.Flags().StringVar(&serveAvatarURL, "avatar-url", "", "Public base URL avatars are served from")
	serveCmd.Flags().IntVar(&serveOracleTimeout, "oracle-timeout", 60, "Matching model call timeout in seconds")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	fileCfg := &config.Config{}
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = loaded
	}

	// Flags override the config file; the file overrides built-in defaults.
	merged := fileCfg.MergeWithDefaults(config.Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		Port:          8080,
		OracleTimeout: 60,
	})
	if cmd.Flags().Changed("port") {
		merged.Port = servePort
	}
	if cmd.Flags().Changed("oracle-timeout") {
		merged.OracleTimeout = serveOracleTimeout
	}
	if serveAvatarDir != "" {
		merged.AvatarDir = serveAvatarDir
	}
	if serveAvatarURL != "" {
		merged.AvatarURL = serveAvatarURL
	}

	if merged.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if merged.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:          merged.Port,
		DatabaseURL:   merged.DatabaseURL,
		APIKey:        merged.APIKey,
		AvatarDir:     merged.AvatarDir,
		AvatarURL:     merged.AvatarURL,
		OracleTimeout: time.Duration(merged.OracleTimeout) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
