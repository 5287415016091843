package reconcile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ReconcileWithPlan lists both worlds and classifies every source region
// file. It does NOT execute anything; use ApplyPlan for that.
//
// A missing source region directory is an error. A missing target region
// directory means every source file is copied.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*Plan, error) {
	if spec.Fs == nil {
		return nil, errors.New("reconcile: spec has no filesystem")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sourceFiles, err := listRegionFiles(spec.Fs, spec.SourceRegionDir(), spec.extension())
	if err != nil {
		return nil, fmt.Errorf("failed to list source regions: %w", err)
	}

	targetFiles := map[string]regionFile{}
	exists, err := afero.DirExists(spec.Fs, spec.TargetRegionDir())
	if err != nil {
		return nil, fmt.Errorf("failed to stat target regions: %w", err)
	}
	if exists {
		targetFiles, err = listRegionFiles(spec.Fs, spec.TargetRegionDir(), spec.extension())
		if err != nil {
			return nil, fmt.Errorf("failed to list target regions: %w", err)
		}
	}

	plan := &Plan{
		Copies: []Action{},
		Merges: []Action{},
	}
	plan.Summary.SourceFiles = len(sourceFiles)
	plan.Summary.TargetFiles = len(targetFiles)

	for name, src := range sourceFiles {
		if dst, ok := targetFiles[name]; ok {
			plan.Merges = append(plan.Merges, Action{
				Type:       ActionMerge,
				Name:       name,
				SourcePath: src.path,
				TargetPath: dst.path,
				SourceSize: src.size,
				TargetSize: dst.size,
			})
			plan.Summary.MergeFiles++
			plan.Summary.MergeBytes += src.size
			continue
		}

		plan.Copies = append(plan.Copies, Action{
			Type:       ActionCopy,
			Name:       name,
			SourcePath: src.path,
			TargetPath: filepath.Join(spec.TargetRegionDir(), name),
			SourceSize: src.size,
		})
		plan.Summary.CopyFiles++
		plan.Summary.CopyBytes += src.size
	}

	// Sort actions by name for deterministic output
	sort.Slice(plan.Copies, func(i, j int) bool {
		return plan.Copies[i].Name < plan.Copies[j].Name
	})
	sort.Slice(plan.Merges, func(i, j int) bool {
		return plan.Merges[i].Name < plan.Merges[j].Name
	})

	return plan, nil
}

// ApplyPlan executes the actions in a plan.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute;
// otherwise it returns an empty report.
//
// Per-file failures are recorded in the report and do not stop the batch.
// The returned error is non-nil only when no rule is configured or ctx is
// cancelled; in the latter case the report holds what finished before.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (*Report, error) {
	report := &Report{Results: []FileResult{}}

	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return report, nil
	}

	if opts.Rule == nil {
		return nil, errors.New("reconcile: no merge rule configured")
	}
	if spec.Fs == nil {
		return nil, errors.New("reconcile: spec has no filesystem")
	}

	// Copies touch files the target does not have yet, run them first.
	for _, action := range plan.Copies {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.add(applyCopy(ctx, spec.Fs, action))
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, len(plan.Merges))
	done := make([]bool, len(plan.Merges))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, action := range plan.Merges {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = applyMerge(ctx, spec.Fs, action, opts)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i, res := range results {
		if done[i] {
			report.add(res)
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// ReconcileAndApply is a convenience wrapper that plans and applies in one call.
// The caller is responsible for having confirmed the destructive step
// through opts.Confirmed.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Plan, *Report, error) {
	plan, err := ReconcileWithPlan(ctx, spec)
	if err != nil {
		return nil, nil, err
	}

	report, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, report, err
}
