package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/types"
	"github.com/jonathan/profile-pdf/internal/validation"
)

var validateFieldCountry string

var validateFieldCmd = &cobra.Command{
	Use:   "validate-field <field> <value>",
	Short: "Validate a single field value",
	Long:  "Validates one field the way the editor does while typing. The phone field is checked against --country.",
	Args:  cobra.ExactArgs(2),
	RunE:  runValidateField,
}

func init() {
	validateFieldCmd.Flags().StringVarP(&validateFieldCountry, "country", "c", countries.DefaultCode, "ISO country code for phone validation")
	rootCmd.AddCommand(validateFieldCmd)
}

func runValidateField(cmd *cobra.Command, args []string) error {
	field, ok := types.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}

	if fe := validation.ValidateField(field, args[1], validateFieldCountry); fe != nil {
		return fe
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", field)
	return nil
}
