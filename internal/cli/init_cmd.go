package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <agent-name>",
		Short: "Scaffold a new data agent folder",
		Long:  "Creates an agent folder with a starter notebook, README, and lifecycle record. The folder name is the lowercased agent name with spaces and hyphens as underscores.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _ := localManager()
			a, err := m.Scaffold(args[0], force)
			if err != nil {
				return err
			}
			fmt.Printf("Created agent %q in %s\n", a.Name, a.Dir)
			fmt.Printf("  Notebook: %s\n", a.NotebookPath())
			fmt.Printf("Next: edit the notebook, then `dad upload %q`\n", a.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing agent folder")
	return cmd
}
