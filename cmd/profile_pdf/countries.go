package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/observability"
)

var countriesJSON bool

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List supported countries and their phone rules",
	Args:  cobra.NoArgs,
	RunE:  runCountries,
}

func init() {
	countriesCmd.Flags().BoolVar(&countriesJSON, "json", false, "Print the registry as JSON")
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, _ []string) error {
	list := countries.All()
	if !countriesJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintCountries(list)
		return nil
	}

	jsonBytes, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal countries to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}
