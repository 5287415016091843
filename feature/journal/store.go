package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"world-merger/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultListLimit caps ListRuns when no positive limit is given.
const DefaultListLimit = 20

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("merge run not found")

// Store persists merge runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the journal tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&MergeRun{}, &MergeFile{}); err != nil {
		return fmt.Errorf("failed to migrate journal: %w", err)
	}
	return nil
}

// NewRun starts a run record with a fresh id.
func NewRun(target, source, rule string) *MergeRun {
	return &MergeRun{
		ID:        uuid.NewString(),
		Target:    target,
		Source:    source,
		Rule:      rule,
		StartedAt: time.Now().UTC(),
	}
}

// RecordRun fills run from report and stores it with its files.
func (s *Store) RecordRun(ctx context.Context, run *MergeRun, report *reconcile.Report) error {
	run.FinishedAt = time.Now().UTC()
	run.Copied = report.Summary.Copied
	run.Merged = report.Summary.Merged
	run.Failed = report.Summary.Failed
	run.Inserted = report.Summary.Slots.Inserted
	run.Replaced = report.Summary.Slots.Replaced
	run.Kept = report.Summary.Slots.Kept
	run.Identical = report.Summary.Slots.Identical

	run.Files = make([]MergeFile, 0, len(report.Results))
	for _, res := range report.Results {
		f := MergeFile{
			Name:      res.Action.Name,
			Action:    string(res.Action.Type),
			Inserted:  res.Merge.Inserted,
			Replaced:  res.Merge.Replaced,
			Kept:      res.Merge.Kept,
			Identical: res.Merge.Identical,
			Bytes:     res.BytesWritten,
		}
		if res.Err != nil {
			f.Error = res.Err.Error()
		}
		run.Files = append(run.Files, f)
	}

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record merge run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs without their files.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]MergeRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var runs []MergeRun
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merge runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its files sorted by name.
func (s *Store) GetRun(ctx context.Context, id string) (*MergeRun, error) {
	var run MergeRun
	err := s.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("name")
		}).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merge run %s: %w", id, err)
	}
	return &run, nil
}
