package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"world-merger/core/database"
	"world-merger/core/merge"
	"world-merger/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *Store {
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	store := NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func sampleReport() *reconcile.Report {
	return &reconcile.Report{
		Results: []reconcile.FileResult{
			{
				Action:       reconcile.Action{Type: reconcile.ActionCopy, Name: "r.1.0.mca"},
				BytesWritten: 12288,
			},
			{
				Action:       reconcile.Action{Type: reconcile.ActionMerge, Name: "r.0.0.mca"},
				Merge:        merge.Result{Inserted: 2, Replaced: 1, Kept: 3, Identical: 1},
				BytesWritten: 40960,
			},
			{
				Action: reconcile.Action{Type: reconcile.ActionMerge, Name: "r.0.1.mca"},
				Err:    errors.New("decode source: truncated"),
			},
		},
		Summary: reconcile.ApplySummary{
			Copied: 1,
			Merged: 1,
			Failed: 1,
			Slots:  merge.Result{Inserted: 2, Replaced: 1, Kept: 3, Identical: 1},
		},
	}
}

func TestStore_RecordAndGetRun(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	run := NewRun("/worlds/target", "/worlds/source", "last-modified")
	require.NoError(t, store.RecordRun(ctx, run, sampleReport()))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, "/worlds/target", got.Target)
	assert.Equal(t, "last-modified", got.Rule)
	assert.Equal(t, 1, got.Copied)
	assert.Equal(t, 1, got.Merged)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 2, got.Inserted)
	assert.Equal(t, 3, got.Kept)
	assert.False(t, got.FinishedAt.Before(got.StartedAt))

	require.Len(t, got.Files, 3)
	assert.Equal(t, "r.0.0.mca", got.Files[0].Name)
	assert.Equal(t, "merge", got.Files[0].Action)
	assert.Equal(t, 1, got.Files[0].Replaced)
	assert.Equal(t, "r.0.1.mca", got.Files[1].Name)
	assert.Equal(t, "decode source: truncated", got.Files[1].Error)
	assert.Equal(t, "copy", got.Files[2].Action)
	assert.Equal(t, 12288, got.Files[2].Bytes)
}

func TestStore_GetRunNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStore_ListRuns(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run := NewRun("/t", "/s", "always")
		run.StartedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.RecordRun(ctx, run, &reconcile.Report{}))
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Empty(t, runs[0].Files)

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_RecordRunDatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `merge_runs`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	run := NewRun("/t", "/s", "never")
	err := store.RecordRun(context.Background(), run, &reconcile.Report{})
	assert.ErrorContains(t, err, "disk full")
	assert.ErrorContains(t, err, run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRunsDatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `merge_runs`").WillReturnError(errors.New("gone away"))

	_, err := store.ListRuns(context.Background(), 5)
	assert.ErrorContains(t, err, "failed to list merge runs: gone away")
}

func TestNewRun(t *testing.T) {
	a := NewRun("/t", "/s", "never")
	b := NewRun("/t", "/s", "never")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.Equal(t, time.UTC, a.StartedAt.Location())
}
