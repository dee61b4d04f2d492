package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"geas/internal/domain"
	"geas/internal/services/identity"
)

var errInconsistent = errors.New("identity ledger and key vault are inconsistent")

func (c *cli) identityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage human and agent identities",
	}
	cmd.AddCommand(c.identityAddCmd(), c.identityListCmd(), c.identityVerifyCmd())
	return cmd
}

func (c *cli) identityAddCmd() *cobra.Command {
	var name, role, persona, model string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an identity and generate its private key",
		Example: "  geas identity add --name alice --role human\n" +
			"  geas identity add --name bot --role agent --persona Dev --model gpt-4",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := identity.ParseProfile(role, persona, model)
			if err != nil {
				return err
			}
			reg, err := c.wire.Identities.Add(domain.Name(name), profile)
			if err != nil {
				return err
			}
			printRegistration(cmd.OutOrStdout(), reg)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "unique identity name (required)")
	cmd.Flags().StringVar(&role, "role", "", "identity role: human or agent (required)")
	cmd.Flags().StringVar(&persona, "persona", "", "agent persona (agents only)")
	cmd.Flags().StringVar(&model, "model", "", "backing model (agents only)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func printRegistration(out io.Writer, reg domain.Registration) {
	id := reg.Identity
	fmt.Fprintf(out, "%s Identity '%s' created (%s)\n", successStyle.Render("✓"), id.Name, id.Role())
	fmt.Fprintf(out, "  Key:         %s\n", pathStyle.Render(reg.KeyPath))
	fmt.Fprintf(out, "  Fingerprint: %s\n", reg.Fingerprint)
	if id.Role() == domain.RoleAgent {
		fmt.Fprintf(out, "  Persona:     %s\n", orDash(id.Persona()))
		fmt.Fprintf(out, "  Model:       %s\n", orDash(id.Model()))
	}

	if reg.Export == "" {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, infoStyle.Render("Hand this to the agent process (shown once):"))
	// Left unstyled so it can be copied or eval'd as is.
	fmt.Fprintln(out, "export "+reg.Export)
}

func (c *cli) identityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := c.wire.Identities.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("GEAS Identities"))
			if len(ids) == 0 {
				fmt.Fprintln(out, infoStyle.Render("No identities registered. Add one with 'geas identity add'."))
				return nil
			}

			t := newTable("NAME", "ROLE", "PERSONA", "MODEL", "FINGERPRINT")
			for _, id := range ids {
				fp, err := c.wire.Identities.Fingerprint(id.Name)
				fingerprint := fp.String()
				if err != nil {
					fingerprint = warningStyle.Render("missing key")
				}
				t.Row(id.Name.String(), id.Role().String(), orDash(id.Persona()), orDash(id.Model()), fingerprint)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

func (c *cli) identityVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every identity has exactly one private key and vice versa",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := c.wire.Identities.Verify()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rec.Foreign) > 0 {
				fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(
					"%d key file(s) in %s belong to other governance directories", len(rec.Foreign), c.wire.Vault.Dir())))
			}
			if rec.Consistent() {
				fmt.Fprintln(out, successStyle.Render("✓")+" Ledger and key vault agree")
				return nil
			}
			printNames(out, "Orphaned key files (no ledger entry):", rec.Orphaned, c.wire.Vault.Path)
			printNames(out, "Ledger entries without a key file:", rec.Unbacked, nil)
			printNames(out, "Key files readable by group or other:", rec.Exposed, c.wire.Vault.Path)
			return errInconsistent
		},
	}
}

func printNames(out io.Writer, title string, names []domain.Name, path func(domain.Name) string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(out, warningStyle.Render(title))
	for _, n := range names {
		line := "  - " + n.String()
		if path != nil {
			line += " " + mutedStyle.Render(path(n))
		}
		fmt.Fprintln(out, line)
	}
}
