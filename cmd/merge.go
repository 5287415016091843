package cmd

import (
	"context"
	"fmt"
	"io"

	"world-merger/core/merge"
	"world-merger/core/reconcile"
	"world-merger/feature/backup"
	"world-merger/feature/journal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type mergeFlags struct {
	rule     string
	workers  int
	dryRun   bool
	yes      bool
	jsonOut  bool
	doBackup bool
}

var mergeOpts mergeFlags

// mergeCmd merges the region files of a source world into a target world.
var mergeCmd = &cobra.Command{
	Use:   "merge <target_world> <source_world>",
	Short: "Merge the region files of a source world into a target world",
	Long: `Lists the region files of both worlds, prints which files will be copied
and which will be merged, asks for confirmation and applies the merge.

Files only present in the source world are copied. Files present in both
worlds are merged chunk by chunk; the conflict rule decides overlapping
chunks:

  last-modified  the newer chunk wins, ties keep the target (default)
  always         the source chunk always wins
  never          the target chunk always wins

Examples:
  # Show what would happen
  merge ./world ./world-copy --dry-run

  # Merge with auto-confirm, back up overwritten files first
  merge ./world ./world-copy --yes --backup

  # Source wins every conflict, four files at a time
  merge ./world ./world-copy --rule always --workers 4`,
	Args: cobra.ExactArgs(2),
	RunE: runMergeCmd,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeOpts.rule, "rule", merge.DefaultRule, "Conflict rule (always, last-modified, never)")
	mergeCmd.Flags().IntVar(&mergeOpts.workers, "workers", 1, "Number of region files merged concurrently")
	mergeCmd.Flags().BoolVar(&mergeOpts.dryRun, "dry-run", false, "Print the plan without changing anything")
	mergeCmd.Flags().BoolVar(&mergeOpts.yes, "yes", false, "Auto-confirm the merge (non-interactive)")
	mergeCmd.Flags().BoolVar(&mergeOpts.jsonOut, "json", false, "Print the plan and report as JSON")
	mergeCmd.Flags().BoolVar(&mergeOpts.doBackup, "backup", false, "Upload overwritten target files to object storage first")

	RootCmd.AddCommand(mergeCmd)
}

func runMergeCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	flags := mergeOpts
	if !cmd.Flags().Changed("rule") {
		flags.rule = cfg.Merge.Rule
	}
	if !cmd.Flags().Changed("workers") {
		flags.workers = cfg.Merge.Workers
	}
	flags.doBackup = flags.doBackup || cfg.Backup.Enabled

	m := &merger{
		fs:     afero.NewOsFs(),
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		logger: l,
	}

	if cfg.Journal.Enabled && !flags.dryRun {
		store, err := openJournal(cfg.Database)
		if err != nil {
			l.Warn("Merge journal unavailable, run will not be recorded", zap.Error(err))
		} else {
			m.journal = store
		}
	}
	if flags.doBackup {
		m.openBackups = func(ctx context.Context) (*backup.Service, error) {
			return openBackups(ctx, cfg, l)
		}
	}

	spec := &reconcile.Spec{
		TargetDir: args[0],
		SourceDir: args[1],
		RegionDir: cfg.Merge.RegionDir,
		Extension: cfg.Merge.Extension,
	}
	return m.run(ctx, spec, flags)
}

// merger runs one merge command against a filesystem.
type merger struct {
	fs     afero.Fs
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger

	// journal is nil when runs are not recorded.
	journal *journal.Store
	// openBackups is nil when backups are disabled.
	openBackups func(ctx context.Context) (*backup.Service, error)
}

type mergeOutput struct {
	Plan   *reconcile.Plan   `json:"plan"`
	Report *reconcile.Report `json:"report,omitempty"`
	RunID  string            `json:"run_id,omitempty"`
}

func (m *merger) run(ctx context.Context, spec *reconcile.Spec, flags mergeFlags) error {
	rule, err := merge.ParseRule(flags.rule)
	if err != nil {
		return err
	}
	spec.Fs = m.fs

	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to plan merge: %w", err)
	}

	output := mergeOutput{Plan: plan}
	if !flags.jsonOut {
		printPlan(m.out, spec, plan)
	}

	if plan.Empty() {
		if flags.jsonOut {
			return writeJSON(m.out, output)
		}
		fmt.Fprintln(m.out, "Nothing to merge.")
		return nil
	}

	if flags.dryRun {
		if flags.jsonOut {
			return writeJSON(m.out, output)
		}
		fmt.Fprintln(m.out, "Dry-run mode: no changes were made.")
		return nil
	}

	prompt := fmt.Sprintf("Files in %s will be created.", spec.TargetRegionDir())
	if plan.Destructive() {
		prompt = fmt.Sprintf("WARNING: %d files in %s will be overwritten. Back up the target world first.",
			len(plan.Merges), spec.TargetRegionDir())
	}
	if !confirm(m.in, m.errOut, prompt, flags.yes) {
		fmt.Fprintln(m.errOut, "Merge cancelled. No changes were made.")
		return nil
	}

	run := journal.NewRun(spec.TargetDir, spec.SourceDir, flags.rule)
	opts := reconcile.Options{
		Confirmed: true,
		Rule:      rule,
		Workers:   flags.workers,
	}

	if m.openBackups != nil && plan.Destructive() {
		svc, err := m.openBackups(ctx)
		if err != nil {
			return fmt.Errorf("backups requested but unavailable: %w", err)
		}
		defer svc.Close()
		opts.Backup = svc.ForRun(run.ID)
		m.logger.Info("Backing up overwritten files", zap.String("run", run.ID))
	}

	m.logger.Info("Applying merge",
		zap.String("rule", flags.rule),
		zap.Int("copies", len(plan.Copies)),
		zap.Int("merges", len(plan.Merges)),
		zap.Int("workers", flags.workers))

	report, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply merge: %w", err)
	}

	if m.journal != nil {
		if err := m.journal.RecordRun(ctx, run, report); err != nil {
			m.logger.Warn("Failed to record merge run", zap.Error(err))
		}
	}

	output.Report = report
	output.RunID = run.ID
	if flags.jsonOut {
		if err := writeJSON(m.out, output); err != nil {
			return err
		}
	} else {
		printReport(m.out, run.ID, report)
	}

	if err := report.Err(); err != nil {
		return fmt.Errorf("%d of %d files failed: %w", report.Summary.Failed, len(report.Results), err)
	}
	return nil
}

func printPlan(out io.Writer, spec *reconcile.Spec, plan *reconcile.Plan) {
	s := plan.Summary
	fmt.Fprintf(out, "Source: %s (%d files)\n", spec.SourceRegionDir(), s.SourceFiles)
	fmt.Fprintf(out, "Target: %s (%d files)\n\n", spec.TargetRegionDir(), s.TargetFiles)

	fmt.Fprintf(out, "Files to copy (%d, %s):\n", s.CopyFiles, humanize.Bytes(uint64(s.CopyBytes)))
	for _, a := range plan.Copies {
		fmt.Fprintf(out, "  %s\n", a.Name)
	}
	fmt.Fprintf(out, "Files to merge (%d, %s):\n", s.MergeFiles, humanize.Bytes(uint64(s.MergeBytes)))
	for _, a := range plan.Merges {
		fmt.Fprintf(out, "  %s\n", a.Name)
	}
	fmt.Fprintln(out)
}

func printReport(out io.Writer, runID string, report *reconcile.Report) {
	s := report.Summary
	for _, res := range report.Failures() {
		fmt.Fprintf(out, "FAILED %s %s: %v\n", res.Action.Type, res.Action.Name, res.Err)
	}
	fmt.Fprintf(out, "Copied %d, merged %d, failed %d.\n", s.Copied, s.Merged, s.Failed)
	fmt.Fprintf(out, "Chunks: %d inserted, %d replaced, %d kept, %d identical.\n",
		s.Slots.Inserted, s.Slots.Replaced, s.Slots.Kept, s.Slots.Identical)
	fmt.Fprintf(out, "Run: %s\n", runID)
}
