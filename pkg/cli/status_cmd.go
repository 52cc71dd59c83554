package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnableCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <email>",
		Short: "Re-activate a locked user account",
		Long: `Sets the identity status back to active and restores the stored
password hash so the user can log in again. Existing sessions are
not touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, opts, args[0], true)
		},
	}
}

func newDisableCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <email>",
		Short: "Lock a user account",
		Long: `Sets the identity status to locked, parks the stored password hash
so logins fail, and deletes every session belonging to the user.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, opts, args[0], false)
		},
	}
}

func runSetStatus(cmd *cobra.Command, opts *rootOptions, email string, enable bool) error {
	svc, done, err := opts.service()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if err := svc.Preflight(ctx); err != nil {
		return err
	}

	verb := "enabled"
	if enable {
		err = svc.Enable(ctx, email)
	} else {
		err = svc.Disable(ctx, email)
		verb = "disabled"
	}
	if err != nil {
		return err
	}

	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"status":  "ok",
			"email":   email,
			"enabled": enable,
		})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully %s user\n", verb)
	return nil
}
