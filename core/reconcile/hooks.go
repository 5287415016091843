package reconcile

import "context"

// Backupper stores a target region file's original content before
// ApplyPlan overwrites it. A Backup error fails that file and leaves it
// untouched.
type Backupper interface {
	Backup(ctx context.Context, name string, data []byte) error
}

// BackupFunc adapts a function to the Backupper interface.
type BackupFunc func(ctx context.Context, name string, data []byte) error

// Backup calls f.
func (f BackupFunc) Backup(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}
