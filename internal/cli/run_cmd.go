package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadfw/dad/internal/agent"
)

func newRunCmd() *cobra.Command {
	var (
		workspace string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "run [agent-name]",
		Short: "Execute agent notebooks and wait for the published agents",
		Long:  "Submits the uploaded notebook as a Fabric job, polls until it reaches a terminal status, and looks up the data agent the notebook published.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cleanup, err := remoteManager(cmd, true)
			if err != nil {
				return err
			}
			defer cleanup()

			if all {
				results, err := m.RunAll(cmd.Context(), workspace)
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
					printRunResult(r.Agent, r.Run)
					if !r.Run.Success {
						failed++
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d agents did not run successfully", failed, len(results))
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
			res, err := m.Run(cmd.Context(), a, workspace)
			if err != nil {
				return err
			}
			printRunResult(a, res)
			if !res.Success {
				return fmt.Errorf("notebook job ended with status %s", res.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace id (overrides the agent record)")
	cmd.Flags().BoolVar(&all, "all", false, "run every agent in the project directory")
	return cmd
}

func printRunResult(a *agent.Agent, res *agent.RunResult) {
	fmt.Printf("  %-24s job=%s status=%s runtime=%s\n", a.FolderName, res.JobID, res.Status, res.Runtime)
	if res.AgentFound {
		fmt.Printf("  %-24s agent %q published\n", "", res.AgentDisplayName)
		fmt.Printf("  %-24s %s\n", "", res.AgentURL)
	} else if res.DiscoveryError != nil {
		fmt.Printf("  %-24s agent discovery: %v\n", "", res.DiscoveryError)
	}
}
