package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"world-merger/feature/journal"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd lists recorded merge runs.
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded merge runs, or show one run in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := loadRuntime()
		if err != nil {
			return err
		}
		defer l.Sync()

		store, err := openJournal(cfg.Database)
		if err != nil {
			return fmt.Errorf("merge journal unavailable: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if historyJSON {
				return writeJSON(out, run)
			}
			printRun(out, run)
			return nil
		}

		runs, err := store.ListRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if historyJSON {
			return writeJSON(out, runs)
		}
		printRuns(out, runs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", journal.DefaultListLimit, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	RootCmd.AddCommand(historyCmd)
}

func printRuns(out io.Writer, runs []journal.MergeRun) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No merge runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tRULE\tCOPIED\tMERGED\tFAILED\tTARGET\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Rule, r.Copied, r.Merged, r.Failed, r.Target, r.Source)
	}
	tw.Flush()
}

func printRun(out io.Writer, r *journal.MergeRun) {
	fmt.Fprintf(out, "Run:      %s\n", r.ID)
	fmt.Fprintf(out, "Target:   %s\n", r.Target)
	fmt.Fprintf(out, "Source:   %s\n", r.Source)
	fmt.Fprintf(out, "Rule:     %s\n", r.Rule)
	fmt.Fprintf(out, "Started:  %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(out, "Chunks:   %d inserted, %d replaced, %d kept, %d identical\n\n",
		r.Inserted, r.Replaced, r.Kept, r.Identical)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tACTION\tINSERTED\tREPLACED\tKEPT\tIDENTICAL\tERROR")
	for _, f := range r.Files {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			f.Name, f.Action, f.Inserted, f.Replaced, f.Kept, f.Identical, f.Error)
	}
	tw.Flush()
}
