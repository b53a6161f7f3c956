// Package main provides the profile_pdf CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "profile_pdf",
	Short: "Validate user details and render them to a profile PDF",
	Long: `profile_pdf collects a user's name, email, phone, position and description,
validates them against per-country phone rules, keeps an editable draft and
renders the result to a one-page PDF.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file (optional; PROFILE_PDF_* env vars override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
