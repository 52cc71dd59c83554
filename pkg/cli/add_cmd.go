package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"socuser/internal/validate"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <email>",
		Short: "Add a new user account",
		Long: `Creates an identity for the given email and stores an Argon2id hash
of the supplied password in the credential database.

The password is read from standard input when piped, otherwise an
interactive no-echo prompt is shown.`,
		Example: `  # Interactive prompt
  socuser add analyst@example.com

  # Scripted
  echo "$PASSWORD" | socuser add analyst@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, args[0])
		},
	}
}

func runAdd(cmd *cobra.Command, opts *rootOptions, email string) error {
	svc, done, err := opts.service()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if err := svc.Preflight(ctx); err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return err
	}
	password, err := collectPassword(cmd)
	if err != nil {
		return err
	}
	if err := validate.Password(password); err != nil {
		return err
	}

	ident, err := svc.Add(ctx, email, password)
	if err != nil {
		return err
	}

	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"status": "ok",
			"id":     ident.ID,
			"email":  ident.Email(),
		})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully added new user to SOC")
	return nil
}
