package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadfw/dad/internal/agent"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List agents in the project directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agents, err := agent.List(projectDir)
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				fmt.Println("No agents found. Create one with `dad init <name>`.")
				return nil
			}
			for _, a := range agents {
				rec, err := a.LoadRecord()
				if err != nil {
					fmt.Printf("  %-24s (unreadable record: %v)\n", a.FolderName, err)
					continue
				}
				extra := ""
				if rec.NotebookID != "" {
					extra = " notebook=" + rec.NotebookID
				}
				fmt.Printf("  %-24s %-22s%s\n", a.FolderName, rec.Status, extra)
			}
			return nil
		},
	}
}
