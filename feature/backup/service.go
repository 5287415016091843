package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"world-merger/core/reconcile"
	"world-merger/core/storage"
	"world-merger/core/utils"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Extension is appended to every backup object name.
const Extension = ".zst"

// Service stores zstd-compressed copies of region files in object storage.
type Service struct {
	client  storage.Client
	bucket  string
	prefix  string
	logger  *zap.Logger
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewService creates a backup service writing to bucket under prefix.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger) (*Service, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		logger:  logger,
		encoder: enc,
		decoder: dec,
	}, nil
}

// Close releases the compressor resources.
func (s *Service) Close() {
	s.encoder.Close()
	s.decoder.Close()
}

// EnsureBucket creates the backup bucket if needed.
func (s *Service) EnsureBucket(ctx context.Context) error {
	return storage.EnsureBucket(ctx, s.client, s.bucket, "")
}

// ObjectName returns the key holding the backup of name for runID.
func (s *Service) ObjectName(runID, name string) string {
	return path.Join(s.runPrefix(runID), name+Extension)
}

func (s *Service) runPrefix(runID string) string {
	if s.prefix == "" {
		return runID
	}
	return s.prefix + "/" + runID
}

// ForRun returns a reconcile.Backupper that stores files under runID.
func (s *Service) ForRun(runID string) reconcile.Backupper {
	return reconcile.BackupFunc(func(ctx context.Context, name string, data []byte) error {
		return s.Backup(ctx, runID, name, data)
	})
}

// Backup uploads a compressed copy of data as the backup of name.
func (s *Service) Backup(ctx context.Context, runID, name string, data []byte) error {
	compressed := s.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	key := s.ObjectName(runID, name)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(compressed), int64(len(compressed)), minio.PutObjectOptions{
		ContentType: "application/zstd",
		UserMetadata: map[string]string{
			"original-size": fmt.Sprintf("%d", len(data)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload backup %s: %w", key, err)
	}

	s.logger.Debug("Backed up region file",
		zap.String("run", runID),
		zap.String("file", name),
		zap.Int("size", len(data)),
		zap.Int("compressed", len(compressed)))
	return nil
}

// List returns the region file names backed up for runID, in listing order.
func (s *Service) List(ctx context.Context, runID string) ([]string, error) {
	objects, err := s.listObjects(ctx, runID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(objects))
	for _, obj := range objects {
		names = append(names, strings.TrimSuffix(path.Base(obj.Key), Extension))
	}
	return names, nil
}

// Restore writes every backup of runID back into regionDir on fsys and
// returns how many files were restored. Failures are collected; the other
// files are still restored.
func (s *Service) Restore(ctx context.Context, fsys afero.Fs, runID, regionDir string) (int, error) {
	objects, err := s.listObjects(ctx, runID)
	if err != nil {
		return 0, err
	}
	if len(objects) == 0 {
		return 0, fmt.Errorf("no backups found for run %s", runID)
	}

	var (
		restored int
		errs     error
	)
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return restored, multierr.Append(errs, err)
		}
		name := strings.TrimSuffix(path.Base(obj.Key), Extension)
		if !utils.IsPlainName(name) {
			errs = multierr.Append(errs, fmt.Errorf("refusing to restore %q", obj.Key))
			continue
		}
		data, err := s.fetch(ctx, obj.Key)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := reconcile.WriteFileAtomic(fsys, filepath.Join(regionDir, name), data); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to restore %s: %w", name, err))
			continue
		}
		restored++
		s.logger.Info("Restored region file", zap.String("run", runID), zap.String("file", name))
	}
	return restored, errs
}

// Delete removes every backup object of runID and returns how many were removed.
func (s *Service) Delete(ctx context.Context, runID string) (int, error) {
	objects, err := s.listObjects(ctx, runID)
	if err != nil {
		return 0, err
	}

	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		objectsCh <- obj
	}
	close(objectsCh)

	var errs error
	failed := 0
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		errs = multierr.Append(errs, fmt.Errorf("failed to delete %s: %w", rErr.ObjectName, rErr.Err))
	}
	return len(objects) - failed, errs
}

func (s *Service) listObjects(ctx context.Context, runID string) ([]minio.ObjectInfo, error) {
	if !utils.IsPlainName(runID) {
		return nil, fmt.Errorf("invalid run id %q", runID)
	}
	var objects []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.runPrefix(runID) + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups of run %s: %w", runID, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, Extension) {
			continue
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (s *Service) fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	compressed, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", key, err)
	}
	return data, nil
}
