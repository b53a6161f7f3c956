package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/phone"
)

var (
	formatPhoneCountry string
	formatPhoneCheck   bool
)

var formatPhoneCmd = &cobra.Command{
	Use:   "format-phone <number>",
	Short: "Format a phone number for a country",
	Long:  "Prints the number in the country's display style. With --check the number is also validated and the command fails when it is not valid.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormatPhone,
}

func init() {
	formatPhoneCmd.Flags().StringVarP(&formatPhoneCountry, "country", "c", countries.DefaultCode, "ISO country code")
	formatPhoneCmd.Flags().BoolVar(&formatPhoneCheck, "check", false, "Also validate the number")
	rootCmd.AddCommand(formatPhoneCmd)
}

func runFormatPhone(cmd *cobra.Command, args []string) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), phone.Format(args[0], formatPhoneCountry))

	if formatPhoneCheck {
		if err := phone.Validate(args[0], formatPhoneCountry); err != nil {
			return err
		}
	}
	return nil
}
