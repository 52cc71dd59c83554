package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"socuser/internal/validate"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <email>",
		Short: "Set a new password for an existing user",
		Example: `  # Interactive prompt
  socuser update analyst@example.com

  # Scripted
  echo "$PASSWORD" | socuser update analyst@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts, args[0])
		},
	}
}

func runUpdate(cmd *cobra.Command, opts *rootOptions, email string) error {
	svc, done, err := opts.service()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if err := svc.Preflight(ctx); err != nil {
		return err
	}

	// Resolve the account before prompting so a bad email fails fast.
	ident, err := svc.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	password, err := collectPassword(cmd)
	if err != nil {
		return err
	}
	if err := validate.Password(password); err != nil {
		return err
	}

	if err := svc.SetPassword(ctx, ident.ID, password); err != nil {
		return err
	}

	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"status": "ok",
			"id":     ident.ID,
			"email":  ident.Email(),
		})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully updated user password")
	return nil
}
