package reconcile

import (
	"fmt"
	"path/filepath"

	"world-merger/core/merge"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

const (
	// DefaultRegionDir is the region directory name inside a world.
	DefaultRegionDir = "region"
	// DefaultExtension is the region file extension.
	DefaultExtension = ".mca"
)

// Spec describes the two worlds being reconciled.
type Spec struct {
	// Fs is the filesystem both worlds live on.
	Fs afero.Fs

	// TargetDir is the root of the world that receives the merge.
	// Its region files may be overwritten.
	TargetDir string

	// SourceDir is the root of the world merged from. It is only read.
	SourceDir string

	// RegionDir is the directory inside each world holding region files.
	// Defaults to DefaultRegionDir.
	RegionDir string

	// Extension filters region files by suffix. Defaults to DefaultExtension.
	Extension string
}

// TargetRegionDir returns the region directory of the target world.
func (s *Spec) TargetRegionDir() string {
	return filepath.Join(s.TargetDir, s.regionDir())
}

// SourceRegionDir returns the region directory of the source world.
func (s *Spec) SourceRegionDir() string {
	return filepath.Join(s.SourceDir, s.regionDir())
}

// CacheKey returns a unique key for caching plans of this spec.
func (s *Spec) CacheKey() string {
	return s.TargetDir + "|" + s.SourceDir + "|" + s.regionDir() + "|" + s.extension()
}

func (s *Spec) regionDir() string {
	if s.RegionDir == "" {
		return DefaultRegionDir
	}
	return s.RegionDir
}

func (s *Spec) extension() string {
	if s.Extension == "" {
		return DefaultExtension
	}
	return s.Extension
}

// ActionType represents the type of file action.
type ActionType string

const (
	// ActionCopy copies a source-only region file into the target world.
	ActionCopy ActionType = "copy"
	// ActionMerge merges a source region file into the target file of the same name.
	ActionMerge ActionType = "merge"
)

// Action represents one planned file operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Name is the region file name shared by both worlds.
	Name string `json:"name"`

	// SourcePath is the file read from the source world.
	SourcePath string `json:"source_path"`

	// TargetPath is the file written in the target world.
	TargetPath string `json:"target_path"`

	// SourceSize is the size of the source file when planned.
	SourceSize int64 `json:"source_size"`

	// TargetSize is the size of the target file when planned (merges only).
	TargetSize int64 `json:"target_size,omitempty"`
}

// Plan contains the classified region files.
type Plan struct {
	// Copies are source-only files, sorted by name.
	Copies []Action `json:"copies"`

	// Merges are files present in both worlds, sorted by name.
	Merges []Action `json:"merges"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// Empty reports whether the plan has nothing to do.
func (p *Plan) Empty() bool {
	return len(p.Copies) == 0 && len(p.Merges) == 0
}

// Destructive reports whether applying the plan overwrites existing
// target files. Callers must confirm before applying such a plan.
func (p *Plan) Destructive() bool {
	return len(p.Merges) > 0
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	SourceFiles int   `json:"source_files"`
	TargetFiles int   `json:"target_files"`
	CopyFiles   int   `json:"copy_files"`
	MergeFiles  int   `json:"merge_files"`
	CopyBytes   int64 `json:"copy_bytes"`
	MergeBytes  int64 `json:"merge_bytes"`
}

// Options controls ApplyPlan.
type Options struct {
	// DryRun prevents execution of any action if true.
	DryRun bool

	// Confirmed indicates the caller confirmed the destructive step.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool

	// Rule decides overlapping slots. Required.
	Rule merge.Rule

	// Workers is the number of merges run concurrently. Values below 1 mean 1.
	Workers int

	// Backup, when set, receives each target file's original bytes
	// before it is overwritten.
	Backup Backupper
}

// FileResult is the outcome of one action.
type FileResult struct {
	Action Action `json:"action"`

	// Merge holds the slot counts of a merge action.
	Merge merge.Result `json:"merge"`

	// BytesWritten is the size of the written file.
	BytesWritten int `json:"bytes_written"`

	// Err is the failure, if any. It is encoded as the "error" string.
	Err error `json:"-"`
}

// MarshalJSON encodes r with Err rendered as an "error" message.
func (r FileResult) MarshalJSON() ([]byte, error) {
	type fileResult FileResult
	out := struct {
		fileResult
		Error string `json:"error,omitempty"`
	}{fileResult: fileResult(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Failed reports whether the action failed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Report collects the results of ApplyPlan.
type Report struct {
	// Results holds one entry per executed action: copies first, then
	// merges in plan order.
	Results []FileResult `json:"results"`

	// Summary provides aggregate counts.
	Summary ApplySummary `json:"summary"`
}

// ApplySummary provides aggregate statistics for an applied plan.
type ApplySummary struct {
	Copied int          `json:"copied"`
	Merged int          `json:"merged"`
	Failed int          `json:"failed"`
	Slots  merge.Result `json:"slots"`
}

func (r *Report) add(res FileResult) {
	r.Results = append(r.Results, res)
	switch {
	case res.Failed():
		r.Summary.Failed++
	case res.Action.Type == ActionCopy:
		r.Summary.Copied++
	case res.Action.Type == ActionMerge:
		r.Summary.Merged++
		r.Summary.Slots.Add(res.Merge)
	}
}

// Failures returns the failed results.
func (r *Report) Failures() []FileResult {
	var failed []FileResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err combines every per-file failure into one error, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Failures() {
		err = multierr.Append(err, fmt.Errorf("%s %s: %w", res.Action.Type, res.Action.Name, res.Err))
	}
	return err
}
