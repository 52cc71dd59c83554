package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all user accounts",
		Example: `  # List account emails
  socuser list

  # Full identity records as JSON
  socuser list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions) error {
	svc, done, err := opts.service()
	if err != nil {
		return err
	}
	defer done()

	ctx := cmd.Context()
	if err := svc.Preflight(ctx); err != nil {
		return err
	}
	idents, err := svc.List(ctx)
	if err != nil {
		return err
	}

	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), idents)
	}
	rows := make([][]string, 0, len(idents))
	for _, ident := range idents {
		rows = append(rows, []string{ident.Email()})
	}
	printTable(cmd.OutOrStdout(), []string{"email"}, rows)
	return nil
}
