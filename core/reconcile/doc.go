// Package reconcile plans and applies the merge of a source world's region
// files into a target world.
//
// Reconciliation runs in two phases so that nothing is written before the
// caller has seen what will happen:
//
// 1. Plan: ReconcileWithPlan lists the region directory of both worlds and
//    classifies every source file. Files only the source has become copy
//    actions; files both worlds have become merge actions. Empty files are
//    treated as absent on either side.
//
// 2. Apply: ApplyPlan performs the actions, but only when the options say
//    the destructive step was confirmed and this is not a dry run. Copies
//    run first, then merges. Each merge reads both files, decodes them,
//    folds the source into the target with the configured merge.Rule,
//    re-encodes and atomically replaces the target file.
//
// # Failure handling
//
// A failing file does not stop the batch. Every failure is recorded in the
// Report and Report.Err combines them. ApplyPlan itself only returns an
// error for a missing rule or a cancelled context.
//
// # Concurrency
//
// Merge actions are independent and run on up to Options.Workers
// goroutines. Pairs share no state; each write is all-or-nothing through a
// temporary file and rename.
//
// # Usage Example
//
//	spec := &reconcile.Spec{Fs: afero.NewOsFs(), TargetDir: "worlds/main", SourceDir: "worlds/backup"}
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
//	if err != nil {
//	    return err
//	}
//	report, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.Options{
//	    Rule:      merge.NewestWins,
//	    Confirmed: true,
//	})
package reconcile
