package cmd

import (
	"fmt"

	"world-merger/core/reconcile"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	restoreYes   bool
	restorePurge bool
)

// restoreCmd writes the backups of a merge run back into the target world.
var restoreCmd = &cobra.Command{
	Use:   "restore <run-id> <target_world>",
	Short: "Restore the region files a merge run overwrote",
	Long: `Downloads the backups uploaded by a merge run started with --backup and
writes them back into the target world's region directory. Files the run
copied from the source world are not removed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runID, target := args[0], args[1]

		cfg, l, err := loadRuntime()
		if err != nil {
			return err
		}
		defer l.Sync()

		svc, err := openBackups(ctx, cfg, l)
		if err != nil {
			return err
		}
		defer svc.Close()

		names, err := svc.List(ctx, runID)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no backups found for run %s", runID)
		}

		spec := &reconcile.Spec{TargetDir: target, RegionDir: cfg.Merge.RegionDir}
		dir := spec.TargetRegionDir()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s has %d backed up files.\n", runID, len(names))
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}

		prompt := fmt.Sprintf("WARNING: %d files in %s will be overwritten.", len(names), dir)
		if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt, restoreYes) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Restore cancelled. No changes were made.")
			return nil
		}

		restored, err := svc.Restore(ctx, afero.NewOsFs(), runID, dir)
		fmt.Fprintf(out, "Restored %d of %d files.\n", restored, len(names))
		if err != nil {
			return fmt.Errorf("restore incomplete: %w", err)
		}

		if restorePurge {
			deleted, err := svc.Delete(ctx, runID)
			if err != nil {
				return fmt.Errorf("failed to delete backups: %w", err)
			}
			l.Info("Deleted backups", zap.String("run", runID), zap.Int("count", deleted))
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "Auto-confirm the restore (non-interactive)")
	restoreCmd.Flags().BoolVar(&restorePurge, "purge", false, "Delete the run's backups after a complete restore")
	RootCmd.AddCommand(restoreCmd)
}
