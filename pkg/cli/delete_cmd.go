package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a user account",
		Long: `Removes the identity from the identity service. Credential and
session rows cascade through the service's own cleanup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, opts, args[0])
		},
	}
}

func runDelete(cmd *cobra.Command, opts *rootOptions, email string) error {
	svc, done, err := opts.service()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if err := svc.Preflight(ctx); err != nil {
		return err
	}
	if err := svc.Delete(ctx, email); err != nil {
		return err
	}

	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"status": "ok",
			"email":  email,
		})
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully deleted user")
	return nil
}
