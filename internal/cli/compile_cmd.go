package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var (
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "compile [agent-name]",
		Short: "Transcode agent notebooks into Fabric source format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _ := localManager()

			if all {
				results, err := m.CompileAll()
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
					fmt.Printf("  %-24s %s\n", r.Agent.FolderName, r.Output)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d agents failed to compile", failed, len(results))
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
			out, err := m.Compile(a, output)
			if err != nil {
				return err
			}
			fmt.Printf("Compiled %s -> %s\n", a.NotebookPath(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path for the compiled source")
	cmd.Flags().BoolVar(&all, "all", false, "compile every agent in the project directory")
	return cmd
}
