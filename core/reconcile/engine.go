package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	"world-merger/core/merge"
	"world-merger/core/region"

	"github.com/spf13/afero"
)

// merged is the in-memory outcome of one merge action.
type merged struct {
	original []byte
	output   []byte
	result   merge.Result
}

// MergeFile runs decode → merge → encode for one merge action and returns
// the encoded target content without writing it.
func MergeFile(ctx context.Context, fsys afero.Fs, action Action, rule merge.Rule) ([]byte, merge.Result, error) {
	m, err := mergePair(ctx, fsys, action, rule)
	if err != nil {
		return nil, merge.Result{}, err
	}
	return m.output, m.result, nil
}

// PreviewMerge merges the region file name of both worlds in memory and
// reports what a real merge would do. Nothing is written.
func PreviewMerge(ctx context.Context, spec *Spec, name string, rule merge.Rule) (merge.Result, error) {
	if name != filepath.Base(name) {
		return merge.Result{}, fmt.Errorf("invalid region file name %q", name)
	}
	action := Action{
		Type:       ActionMerge,
		Name:       name,
		SourcePath: filepath.Join(spec.SourceRegionDir(), name),
		TargetPath: filepath.Join(spec.TargetRegionDir(), name),
	}
	_, res, err := MergeFile(ctx, spec.Fs, action, rule)
	return res, err
}

func mergePair(ctx context.Context, fsys afero.Fs, action Action, rule merge.Rule) (*merged, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targetData, err := afero.ReadFile(fsys, action.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	sourceData, err := afero.ReadFile(fsys, action.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	target, err := region.Decode(targetData)
	if err != nil {
		return nil, fmt.Errorf("decode target %s: %w", action.TargetPath, err)
	}
	source, err := region.Decode(sourceData)
	if err != nil {
		return nil, fmt.Errorf("decode source %s: %w", action.SourcePath, err)
	}

	res := merge.Merge(target, source, rule)

	out, err := region.Encode(target)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", action.Name, err)
	}

	return &merged{original: targetData, output: out, result: res}, nil
}

// applyMerge merges one pair and replaces the target file.
func applyMerge(ctx context.Context, fsys afero.Fs, action Action, opts Options) FileResult {
	res := FileResult{Action: action}

	m, err := mergePair(ctx, fsys, action, opts.Rule)
	if err != nil {
		res.Err = err
		return res
	}
	res.Merge = m.result

	if opts.Backup != nil {
		if err := opts.Backup.Backup(ctx, action.Name, m.original); err != nil {
			res.Err = fmt.Errorf("backup: %w", err)
			return res
		}
	}

	if err := writeFileAtomic(fsys, action.TargetPath, m.output); err != nil {
		res.Err = err
		return res
	}
	res.BytesWritten = len(m.output)
	return res
}

// applyCopy copies a source-only file into the target region directory.
func applyCopy(ctx context.Context, fsys afero.Fs, action Action) FileResult {
	res := FileResult{Action: action}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data, err := afero.ReadFile(fsys, action.SourcePath)
	if err != nil {
		res.Err = fmt.Errorf("read source: %w", err)
		return res
	}

	if err := fsys.MkdirAll(filepath.Dir(action.TargetPath), 0o755); err != nil {
		res.Err = fmt.Errorf("create target directory: %w", err)
		return res
	}

	if err := writeFileAtomic(fsys, action.TargetPath, data); err != nil {
		res.Err = err
		return res
	}
	res.BytesWritten = len(data)
	return res
}
