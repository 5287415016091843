package regions

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"world-merger/core/merge"
	"world-merger/core/reconcile"
	"world-merger/core/utils"
	"world-merger/feature/journal"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrInvalidName is returned for names that are not plain file names.
	ErrInvalidName = errors.New("invalid region file name")
	// ErrInvalidSide is returned for a side other than target or source.
	ErrInvalidSide = errors.New("side must be target or source")
	// ErrInvalidRule is returned for an unknown merge rule.
	ErrInvalidRule = errors.New("invalid merge rule")
	// ErrNotFound is returned when a region file does not exist.
	ErrNotFound = errors.New("region file not found")
	// ErrJournalDisabled is returned by History without a journal.
	ErrJournalDisabled = errors.New("merge journal is disabled")
)

const (
	SideTarget = "target"
	SideSource = "source"
)

// Preview is the result of an in-memory merge of one region file.
type Preview struct {
	Name   string       `json:"name"`
	Rule   string       `json:"rule"`
	Result merge.Result `json:"result"`
}

// Service answers read-only queries about the configured worlds.
type Service struct {
	spec     *reconcile.Spec
	rule     string
	cacheTTL time.Duration
	journal  *journal.Store
	logger   *zap.Logger
}

// NewService creates a regions service. store may be nil when the journal
// is disabled.
func NewService(spec *reconcile.Spec, rule string, cacheTTL time.Duration, store *journal.Store, logger *zap.Logger) *Service {
	return &Service{
		spec:     spec,
		rule:     rule,
		cacheTTL: cacheTTL,
		journal:  store,
		logger:   logger,
	}
}

// Plan returns the copy and merge lists, cached for the configured TTL.
// refresh drops the cached plan first, e.g. after a merge ran elsewhere.
func (s *Service) Plan(ctx context.Context, refresh bool) (*reconcile.Plan, error) {
	if refresh {
		reconcile.InvalidatePlan(s.spec)
	}
	return reconcile.GetOrBuildPlan(ctx, s.spec, s.cacheTTL)
}

// Inspect decodes one region file of the given side.
func (s *Service) Inspect(ctx context.Context, side, name string) (*Report, error) {
	if !utils.IsPlainName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	var dir string
	switch side {
	case SideTarget:
		dir = s.spec.TargetRegionDir()
	case SideSource:
		dir = s.spec.SourceRegionDir()
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.spec.Fs, filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, side, name)
	}
	if err != nil {
		return nil, err
	}
	return BuildReport(name, data)
}

// Preview merges name in memory with ruleName, or the configured rule when
// ruleName is empty.
func (s *Service) Preview(ctx context.Context, name, ruleName string) (*Preview, error) {
	if !utils.IsPlainName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if ruleName == "" {
		ruleName = s.rule
	}
	rule, err := merge.ParseRule(ruleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	res, err := reconcile.PreviewMerge(ctx, s.spec, name, rule)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s must exist in both worlds", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if ruleName == "" {
		ruleName = merge.DefaultRule
	}
	return &Preview{Name: name, Rule: ruleName, Result: res}, nil
}

// History returns the most recent merge runs.
func (s *Service) History(ctx context.Context, limit int) ([]journal.MergeRun, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.ListRuns(ctx, limit)
}
