package cmd

import (
	"fmt"
	"time"

	"backend-launcher/core/config"
	"backend-launcher/core/journal"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent launch attempts",
	Long:  `Prints the most recent launch attempts recorded in the journal, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := journal.Connect(cfg.Journal)
		if err != nil {
			return fmt.Errorf("journal connection required: %w", err)
		}

		j, err := journal.New(db)
		if err != nil {
			return err
		}

		runs, err := j.Recent(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No launches recorded yet.")
			return nil
		}

		fmt.Printf("%-38s %-20s %-12s %-5s %s\n", "RUN", "STARTED", "OUTCOME", "EXIT", "SCRIPT")
		for _, r := range runs {
			outcome := r.Outcome
			if outcome == "" {
				outcome = "running"
			}
			fmt.Printf("%-38s %-20s %-12s %-5d %s\n",
				r.ID,
				r.StartedAt.Format(time.DateTime),
				outcome,
				r.ExitCode,
				r.Script,
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to show")
}
