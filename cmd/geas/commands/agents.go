package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "Show the agents roster from config/agents.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := c.wire.Roster.Agents()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("GEAS Agents Roster (Global)"))
			if len(agents) == 0 {
				fmt.Fprintln(out, infoStyle.Render("No agents defined."))
				return nil
			}
			t := newTable("NAME", "ROLE", "GOAL")
			for _, a := range agents {
				t.Row(a.Name, orDash(a.Role), orDash(a.Goal))
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}
