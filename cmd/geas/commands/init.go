package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the GEAS governance layer in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.wire.Bootstrap.Init()
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}

			root, err := filepath.Abs(res.Root)
			if err != nil {
				root = res.Root
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render("Success!")+" GEAS initialized at "+pathStyle.Render(root))
			fmt.Fprintln(out)
			fmt.Fprintln(out, headerStyle.Render("Created:"))
			for _, p := range res.Created {
				fmt.Fprintln(out, "  - "+p)
			}
			fmt.Fprintln(out, "  - "+res.VaultDir+" "+mutedStyle.Render("(key vault, owner-only)"))
			return nil
		},
	}
}
