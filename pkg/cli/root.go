package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"socuser/internal/config"
	"socuser/internal/credstore"
	"socuser/internal/crypto"
	"socuser/internal/domain"
	"socuser/internal/identity"
	"socuser/internal/notify"
	"socuser/internal/service/useradmin"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			var svcErr *domain.ServiceError
			if errors.As(err, &svcErr) {
				errObj["code"] = svcErr.Code
			}
			_ = printJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return exitCode(err)
	}
	return 0
}

// exitCode maps an error to the exit code contract: 2 for an invalid
// password, 3 for an invalid email, 1 for everything else.
func exitCode(err error) int {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		if valErr.Field == domain.FieldPassword {
			return 2
		}
		return 3
	}
	return 1
}

// rootOptions carries the connection settings resolved by the root
// command's PersistentPreRunE into the subcommands.
type rootOptions struct {
	url     string
	dbPath  string
	output  string
	profile string

	cfg    *config.Config
	client *identity.Client
	logger *slog.Logger
}

// service wires the user administration service against the resolved
// identity service URL and credential database. The returned cleanup
// func closes the credential store.
func (o *rootOptions) service() (*useradmin.Service, func(), error) {
	store, err := credstore.Open(o.dbPath)
	if err != nil {
		return nil, nil, err
	}
	hasher, err := crypto.NewHasher(crypto.Params{
		Iterations:  o.cfg.Argon2Iterations,
		MemoryExp:   o.cfg.Argon2MemoryExp,
		Parallelism: o.cfg.Argon2Parallelism,
		KeyLength:   o.cfg.Argon2KeyLength,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	notifier := notify.Multi{
		notify.NewHook(o.cfg.CaseHook, false, o.logger),
		notify.NewHook(o.cfg.EndpointHook, true, o.logger),
	}
	svc := useradmin.NewService(o.client, store, hasher, notifier, o.logger)
	return svc, func() { _ = store.Close() }, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{
		client: identity.NewClient(config.DefaultIdentityURL),
	}

	rootCmd := &cobra.Command{
		Use:           "socuser",
		Short:         "SOC user administration CLI",
		Long:          "Manage analyst accounts in the identity service and its credential store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load config from profile if flags/env not set
			userCfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				userCfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}

			p, err := userCfg.ActiveProfile(opts.profile)
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("url") {
				if v := os.Getenv("SOC_IDENTITY_URL"); v != "" {
					opts.url = v
				} else if p.URL != "" {
					opts.url = p.URL
				}
			}
			if !cmd.Flags().Changed("db") {
				if v := os.Getenv("SOC_CRED_DB"); v != "" {
					opts.dbPath = v
				} else if p.DB != "" {
					opts.dbPath = p.DB
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("SOC_OUTPUT"); v != "" {
					opts.output = v
				} else if p.Output != "" {
					opts.output = p.Output
				}
			}

			if err := validateOutputFormat(opts.output); err != nil {
				return err
			}
			if err := validateServiceURL(opts.url); err != nil {
				return err
			}

			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.client.BaseURL = strings.TrimSuffix(opts.url, "/")
			opts.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.url, "url", config.DefaultIdentityURL, "Identity service admin URL")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", config.DefaultCredDBPath, "Path to the identity credential database")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&opts.profile, "profile", "p", "", "Config profile to use")

	// Account management commands
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newUpdateCmd(opts))
	rootCmd.AddCommand(newEnableCmd(opts))
	rootCmd.AddCommand(newDisableCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))

	// Offline validation commands
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newValemailCmd())
	rootCmd.AddCommand(newValpassCmd())

	// Utility commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCommandsCmd())

	// Shell completions
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
