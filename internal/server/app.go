// Package server wires the Lightway server together: database and
// migrations, time-lock encryption, object storage, the background jobs and
// the gRPC endpoint, with graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/lightway/internal/cryptox"
	"github.com/dmitrijs2005/lightway/internal/logging"
	"github.com/dmitrijs2005/lightway/internal/server/config"
	"github.com/dmitrijs2005/lightway/internal/server/models"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lightway/internal/server/scheduler"
	"github.com/dmitrijs2005/lightway/internal/server/services"
	"github.com/dmitrijs2005/lightway/internal/timex"

	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/lightway/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	letterService  *services.LetterService
	galleryService *services.GalleryService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogBackend, c.LogLevel, os.Stdout)

	for _, name := range c.InsecureDefaults() {
		logger.Warn(ctx, "insecure default in use, set it before deploying", "setting", name)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	storage, err := services.NewS3Storage(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	clock := timex.SystemClock{}
	ls := services.NewLetterService(db, rm, cryptox.NewTimeLock(c.EncryptionKey), c, clock)
	gals := services.NewGalleryService(db, rm, storage, c, clock)

	return &App{config: c, logger: logger, db: db, letterService: ls, galleryService: gals}, nil
}

type letterJobs interface {
	DestroyVoidLetters(ctx context.Context) (int, error)
	ListOpenable(ctx context.Context) ([]*models.Letter, error)
}

type galleryJobs interface {
	CleanupExpiredIdentities(ctx context.Context) (int, error)
}

func newJobs(c *config.Config, letters letterJobs, gallery galleryJobs) []scheduler.Job {
	return []scheduler.Job{
		{
			Name:     "cleanup_expired_identities",
			Interval: c.IdentityCleanupInterval,
			Run:      gallery.CleanupExpiredIdentities,
		},
		{
			Name:     "cleanup_void_letters",
			Interval: c.VoidCleanupInterval,
			Run:      letters.DestroyVoidLetters,
		},
		{
			Name:     "check_openable_letters",
			Interval: c.OpenableCheckInterval,
			Run: func(ctx context.Context) (int, error) {
				ready, err := letters.ListOpenable(ctx)
				return len(ready), err
			},
		},
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.letterService, app.galleryService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startScheduler(ctx context.Context, cancelFunc context.CancelFunc) {
	r := scheduler.NewRunner(app.logger.With("module", "scheduler"), newJobs(app.config, app.letterService, app.galleryService)...)

	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a shutdown signal arrives or ctx is cancelled, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startScheduler(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
