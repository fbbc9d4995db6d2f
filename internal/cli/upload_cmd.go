package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadfw/dad/internal/agent"
)

func newUploadCmd() *cobra.Command {
	var (
		workspace   string
		displayName string
		raw         bool
		yes         bool
		all         bool
	)

	cmd := &cobra.Command{
		Use:   "upload [agent-name]",
		Short: "Create or update agent notebooks in a Fabric workspace",
		Long:  "Compiles the agent notebook and uploads it to the workspace. An existing notebook is found by the recorded id or display name and updated after confirmation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cleanup, err := remoteManager(cmd, yes)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := agent.UploadOptions{
				WorkspaceID: workspace,
				DisplayName: displayName,
				UseRaw:      raw,
				ForceUpdate: yes,
			}

			if all {
				results, err := m.UploadAll(cmd.Context(), opts)
				if err != nil {
					return err
				}
				failed := 0
				for _, r := range results {
					if r.Err != nil {
						failed++
						fmt.Printf("  %-24s FAILED: %v\n", r.Agent.FolderName, r.Err)
						continue
					}
					fmt.Printf("  %-24s %s (%s)\n", r.Agent.FolderName, r.Upload.NotebookID, uploadVerb(r.Upload))
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d agents failed to upload", failed, len(results))
				}
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("agent name required (or pass --all)")
			}
			a, err := m.Resolve(args[0])
			if err != nil {
				return err
			}
			res, err := m.Upload(cmd.Context(), a, opts)
			if err != nil {
				return err
			}
			fmt.Printf("%s notebook %q (%s) in workspace %s\n",
				uploadVerbTitle(res), res.DisplayName, res.NotebookID, res.WorkspaceID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace id (overrides the agent record)")
	cmd.Flags().StringVar(&displayName, "name", "", "remote display name (defaults to the agent name)")
	cmd.Flags().BoolVar(&raw, "raw", false, "upload the raw ipynb instead of compiled Fabric source")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "update existing notebooks without asking")
	cmd.Flags().BoolVar(&all, "all", false, "upload every agent in the project directory")
	return cmd
}

func uploadVerb(res *agent.UploadResult) string {
	if res.Updated {
		return "updated"
	}
	return "created"
}

func uploadVerbTitle(res *agent.UploadResult) string {
	if res.Updated {
		return "Updated"
	}
	return "Created"
}
