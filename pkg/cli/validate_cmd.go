package cli

import (
	"github.com/spf13/cobra"

	"socuser/internal/validate"
)

// The validation commands run fully offline: no identity service or
// credential database access, so they are safe in provisioning scripts
// before the stack is up.

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <email>",
		Short: "Validate an email and password without touching the backend",
		Example: `  # Check both inputs before provisioning
  echo "$PASSWORD" | socuser validate analyst@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Email(args[0]); err != nil {
				return err
			}
			password, err := collectPassword(cmd)
			if err != nil {
				return err
			}
			return validate.Password(password)
		},
	}
}

func newValemailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valemail <email>",
		Short: "Validate an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validate.Email(args[0])
		},
	}
}

func newValpassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "valpass",
		Short: "Validate a password",
		Example: `  # Check a candidate password from a pipe
  echo "$PASSWORD" | socuser valpass`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := collectPassword(cmd)
			if err != nil {
				return err
			}
			return validate.Password(password)
		},
	}
}
