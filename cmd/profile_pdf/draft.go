package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-pdf/internal/observability"
	"github.com/jonathan/profile-pdf/internal/session"
	"github.com/jonathan/profile-pdf/internal/types"
)

var draftShowJSON bool

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect and edit the stored draft",
	Long:  "Reads and edits the draft kept in the configured store (file, redis, postgres or memory).",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored draft and its field errors",
	Args:  cobra.NoArgs,
	RunE:  runDraftShow,
}

var draftSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set one field of the draft",
	Long:  "Sets a field and validates it. Phone numbers are formatted for the draft's country first. The draft is saved even when the value is invalid.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDraftSet,
}

var draftCountryCmd = &cobra.Command{
	Use:   "country <code>",
	Short: "Change the draft's country; clears the phone number",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftCountry,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the draft and remove it from the store",
	Args:  cobra.NoArgs,
	RunE:  runDraftClear,
}

func init() {
	draftShowCmd.Flags().BoolVar(&draftShowJSON, "json", false, "Print the draft and errors as JSON")

	draftCmd.AddCommand(draftShowCmd, draftSetCmd, draftCountryCmd, draftClearCmd)
	rootCmd.AddCommand(draftCmd)
}

// withSession runs fn against a session over the configured store and
// prints the resulting draft.
func withSession(cmd *cobra.Command, fn func(*session.Session) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.session(ctx)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintDraft(sess.Draft(), sess.Errors())
	return nil
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	if !draftShowJSON {
		return withSession(cmd, func(*session.Session) error { return nil })
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.session(ctx)
	if err != nil {
		return err
	}

	errs := make(map[string]string)
	for f, e := range sess.Errors() {
		errs[string(f)] = e.Message
	}
	jsonBytes, err := json.MarshalIndent(struct {
		Draft  types.UserDetails `json:"draft"`
		Errors map[string]string `json:"errors"`
		Loaded bool              `json:"loaded"`
	}{sess.Draft(), errs, sess.Loaded()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft to JSON: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}

func runDraftSet(cmd *cobra.Command, args []string) error {
	field, ok := types.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q", args[0])
	}
	if field == types.FieldCountryCode {
		return runDraftCountry(cmd, args[1:])
	}
	return withSession(cmd, func(sess *session.Session) error {
		return sess.SetField(cmd.Context(), field, args[1])
	})
}

func runDraftCountry(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session.Session) error {
		return sess.ChangeCountry(cmd.Context(), args[0])
	})
}

func runDraftClear(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, func(sess *session.Session) error {
		return sess.Clear(cmd.Context())
	})
}
