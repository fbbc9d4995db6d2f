package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadfw/dad/internal/agent"
	"github.com/dadfw/dad/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [agent-name]",
		Short: "Show recorded notebook runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cfg.HistoryEnabled() {
				return fmt.Errorf("run history is disabled in %s", paths.Config)
			}

			db, err := store.Open(paths.HistoryDB(), log)
			if err != nil {
				return err
			}
			defer db.Close()
			s := store.NewHistoryStore(db)

			var runs []store.Run
			if len(args) > 0 {
				runs, err = s.ByAgent(agent.Slug(args[0]), limit)
			} else {
				runs, err = s.Recent(limit)
			}
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}
			for _, r := range runs {
				outcome := "FAILED"
				if r.Success {
					outcome = "ok"
				}
				fmt.Printf("  %s  %-24s %-10s %-8s job=%s\n",
					r.StartedAt.Format("2006-01-02 15:04"), r.FolderName, r.Status, outcome, r.JobID)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to show")
	return cmd
}
