package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadfw/dad/internal/version"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [agent-name]",
		Short: "Show toolkit configuration or one agent's lifecycle state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cfg := localManager()

			if len(args) == 0 {
				fmt.Printf("dad %s (commit %s)\n\n", version.Version, version.Commit)
				fmt.Printf("Config:    %s\n", paths.Config)
				fmt.Printf("Data:      %s\n", paths.Data)
				fmt.Printf("Project:   %s\n", projectDir)
				fmt.Println()
				workspace := cfg.Workspace.ID
				if workspace == "" {
					workspace = "(not set)"
				}
				fmt.Printf("Workspace: %s\n", workspace)
				if cfg.Lakehouse.Name != "" {
					fmt.Printf("Lakehouse: %s (%s)\n", cfg.Lakehouse.Name, cfg.Lakehouse.ID)
				}
				auth := "none"
				if cfg.Auth.ClientID != "" {
					auth = "service principal"
				}
				fmt.Printf("Auth:      %s\n", auth)
				fmt.Printf("History:   enabled=%v\n", cfg.HistoryEnabled())
				return nil
			}

			a, err := m.Resolve(args[0])
			if err != nil {
				return err
			}
			rec, err := a.LoadRecord()
			if err != nil {
				return err
			}

			fmt.Printf("Agent:     %s (%s)\n", rec.AgentName, a.FolderName)
			fmt.Printf("Status:    %s\n", rec.Status)
			fmt.Printf("Created:   %s\n", rec.CreatedDate.Format("2006-01-02"))
			if rec.WorkspaceID != "" {
				fmt.Printf("Workspace: %s\n", rec.WorkspaceID)
			}
			if rec.NotebookID != "" {
				fmt.Printf("Notebook:  %s (%s)\n", rec.NotebookName, rec.NotebookID)
			}
			if rec.LastUpload != nil {
				fmt.Printf("Uploaded:  %s\n", rec.LastUpload.Format("2006-01-02 15:04:05"))
			}
			if rec.LastExecution != nil {
				fmt.Printf("Last run:  %s status=%s runtime=%s\n",
					rec.LastExecution.Timestamp.Format("2006-01-02 15:04:05"),
					rec.LastExecution.Status, rec.LastExecution.Runtime)
			}
			if rec.AgentURL != "" {
				fmt.Printf("Agent URL: %s\n", rec.AgentURL)
			}
			return nil
		},
	}
}
