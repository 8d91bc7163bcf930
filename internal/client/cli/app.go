package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/lightway/internal/client/client"
	"github.com/dmitrijs2005/lightway/internal/client/config"
	"github.com/dmitrijs2005/lightway/internal/client/services"
	"github.com/dmitrijs2005/lightway/internal/filex"
	"github.com/dmitrijs2005/lightway/internal/timex"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	db             *sql.DB
	apiClient      client.Client
	letterService  services.LetterService
	galleryService services.GalleryService
	clock          timex.Clock
	reader         *bufio.Reader
	out            io.Writer
	interactive    bool

	mu   sync.Mutex
	Mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureSubDir(filepath.Dir(c.LedgerPath))
	if err != nil {
		return nil, fmt.Errorf("error preparing ledger directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, filepath.Base(c.LedgerPath)))
	if err != nil {
		return nil, fmt.Errorf("error initializing ledger: %w", err)
	}

	apiClient, err := client.NewLightwayClientService(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := client.NewRepositories(db)
	clock := timex.SystemClock{}

	gs := services.NewGalleryService(apiClient, repos.Metadata, clock)
	if err := gs.RestoreSession(ctx); err != nil {
		log.Printf("could not restore gallery session: %v", err)
	}

	return &App{
		config:         c,
		db:             db,
		apiClient:      apiClient,
		letterService:  services.NewLetterService(apiClient, repos.Letters, clock),
		galleryService: gs,
		clock:          clock,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		interactive:    isTerminal(int(os.Stdin.Fd())),
	}, nil
}

func (app *App) mode() Mode {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.Mode
}

func (app *App) setMode(mode Mode) {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.Mode != mode {
		app.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (app *App) Run(ctx context.Context) {
	defer app.Close()
	app.Root(ctx)
}

func (app *App) Close() {
	if app.apiClient != nil {
		_ = app.apiClient.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

// requestContext bounds one command's server calls.
func (app *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := 10 * time.Second
	if app.config != nil && app.config.RequestTimeout > 0 {
		timeout = app.config.RequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (app *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			app.checkOnline(ctx)

		case <-ctx.Done():
			return
		}
	}
}

func (app *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	_, err := app.letterService.Ping(ctx)
	cancel()

	if err != nil {
		app.setMode(ModeOffline)
	} else {
		app.setMode(ModeOnline)
	}
}
