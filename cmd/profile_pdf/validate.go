package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/observability"
	"github.com/jonathan/profile-pdf/internal/validation"
)

var (
	validateInput string
	validateJSON  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a user details record",
	Long:  "Validates a user details JSON record read from a file or stdin. Exits non-zero when any field is invalid.",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "-", "Path to record JSON file (- for stdin)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	content, err := readInput(cmd.InOrStdin(), validateInput)
	if err != nil {
		return err
	}

	result := validation.ValidateJSON(content)

	if validateJSON {
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(result)
	}

	if !result.Valid {
		// Return error to indicate invalid fields (exit code 1)
		return fmt.Errorf("validation found %d error(s)", len(result.Errors))
	}
	return nil
}
