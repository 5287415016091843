package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"world-merger/core/config"
	"world-merger/core/loader"
	"world-merger/core/logger"
	"world-merger/core/middleware"
	"world-merger/core/reconcile"
	"world-merger/feature/journal"
	"world-merger/feature/regions"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the read-only inspection server",
	Long: `Starts the HTTP server over the worlds configured by MERGE_TARGET_WORLD and
MERGE_SOURCE_WORLD. It serves the merge plan, decoded region headers, merge
previews and the merge history. It never writes to either world.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The journal is optional; history answers 503 without it.
		var store *journal.Store
		if cfg.Journal.Enabled {
			if s, err := openJournal(cfg.Database); err != nil {
				logg.Warn("Optional merge journal unavailable", zap.Error(err))
			} else {
				store = s
				logg.Info("Connected to merge journal", zap.String("driver", cfg.Database.Driver))
			}
		}

		app := newServer(cfg, logg, store)

		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()), zap.Bool("auth", cfg.Server.AuthEnabled()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newServer builds the fiber app with middleware and every feature loaded.
func newServer(cfg *config.Config, logg *zap.Logger, store *journal.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	spec := &reconcile.Spec{
		Fs:        afero.NewReadOnlyFs(afero.NewOsFs()),
		TargetDir: cfg.Merge.TargetWorld,
		SourceDir: cfg.Merge.SourceWorld,
		RegionDir: cfg.Merge.RegionDir,
		Extension: cfg.Merge.Extension,
	}
	ttl := time.Duration(cfg.Merge.PlanCacheSeconds) * time.Second

	mgr := loader.NewManager(logg)
	mgr.Register(regions.NewFeature(spec, cfg.Merge.Rule, ttl, store, logg))

	// Request ID first so every later log line can carry it.
	app.Use(middleware.RequestID())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRequestID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})
	app.Use(middleware.Auth(cfg.Server.ApiKey))

	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	return app
}
