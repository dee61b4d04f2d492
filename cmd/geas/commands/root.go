package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"geas/internal/app"
	"geas/internal/domain"
)

// cli carries flag values and the wired app between the root and subcommands.
type cli struct {
	configFile string
	root       string
	keysDir    string
	verbose    bool

	wire *app.Wire
}

// Execute runs the CLI against the process arguments.
func Execute() error {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, renderError(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "geas",
		Short:         "Local governance layer for human and agent identities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(c.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := cfg.Override(c.root, c.keysDir); err != nil {
				return err
			}
			if err := app.SetupLogging(cfg.Logging, c.verbose); err != nil {
				return err
			}
			c.wire = app.NewWire(*cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default .geas/config/geas.yaml or ~/.geas/geas.yaml)")
	root.PersistentFlags().StringVar(&c.root, "root", "", "governance directory (default .geas)")
	root.PersistentFlags().StringVar(&c.keysDir, "keys-dir", "", "key vault directory (default ~/.geas/keys)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.initCmd(), c.identityCmd(), c.agentsCmd())
	return root
}

// renderError turns an error into the operator-facing message, adding the
// next step for the kinds that have one.
func renderError(err error) string {
	msg := errorStyle.Render("Error:") + " " + err.Error()

	var hint string
	switch {
	case errors.Is(err, domain.ErrCredentialInUse):
		hint = "Choose another name, or give each project its own vault with --keys-dir or keys_dir."
	case errors.Is(err, domain.ErrOrphanedCredential):
		hint = "Inspect it with 'geas identity verify', then delete the key file and retry."
	case errors.Is(err, domain.ErrNotInitialized), errors.Is(err, domain.ErrVaultDirMissing):
		hint = "Run 'geas init' in the project directory first."
	case errors.Is(err, domain.ErrStoreCorrupt):
		hint = "Fix the ledger file by hand; it was not modified."
	case errors.Is(err, domain.ErrInvalidInput):
		hint = "See 'geas identity add --help'."
	}
	if hint != "" {
		msg += "\n" + mutedStyle.Render(hint)
	}
	return msg
}
