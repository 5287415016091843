package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"world-merger/core/config"
	"world-merger/core/database"
	"world-merger/core/logger"
	"world-merger/core/storage"
	"world-merger/feature/backup"
	"world-merger/feature/journal"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// openJournal connects to the journal database and migrates it.
func openJournal(cfg database.Config) (*journal.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := journal.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}

// openBackups connects to object storage and makes sure the bucket exists.
func openBackups(ctx context.Context, cfg *config.Config, l *zap.Logger) (*backup.Service, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	svc, err := backup.NewService(client, cfg.Storage.Bucket, cfg.Backup.Prefix, l)
	if err != nil {
		return nil, err
	}
	if err := svc.EnsureBucket(ctx); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

// confirm asks on out for the word "yes" read from in, unless assumeYes is set.
func confirm(in io.Reader, out io.Writer, prompt string, assumeYes bool) bool {
	if assumeYes {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "%s Type 'yes' to continue: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
