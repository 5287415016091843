package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// regionFile is a listed region file.
type regionFile struct {
	path string
	size int64
}

// listRegionFiles returns the region files directly inside dir, keyed by
// file name. Zero-length files carry no data and are left out.
func listRegionFiles(fsys afero.Fs, dir, extension string) (map[string]regionFile, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	files := make(map[string]regionFile, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() || info.Size() == 0 {
			continue
		}
		if !strings.HasSuffix(info.Name(), extension) {
			continue
		}
		files[info.Name()] = regionFile{
			path: filepath.Join(dir, info.Name()),
			size: info.Size(),
		}
	}
	return files, nil
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory, so readers see either the old or the new content.
func writeFileAtomic(fsys afero.Fs, path string, data []byte) (err error) {
	tmpPath := path + ".tmp"

	f, err := fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmpPath, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err = fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}

// WriteFileAtomic exposes writeFileAtomic for collaborators restoring files.
func WriteFileAtomic(fsys afero.Fs, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return writeFileAtomic(fsys, path, data)
}
