package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lightway/internal/client/client"
	"github.com/dmitrijs2005/lightway/internal/common"
)

func (app *App) getStatus() string {
	if m := app.mode(); m != "" {
		return fmt.Sprintf("(%s)", m)
	}
	return ""
}

// Root prints the greeting, starts the connectivity watcher and runs the
// command loop until the user leaves or ctx is cancelled.
func (app *App) Root(ctx context.Context) {
	fmt.Fprintf(app.out, "Welcome to %s %s (type 'help' for commands)\n", common.AppName, common.Version)

	app.checkOnline(ctx)

	go app.StartOnlineStatusWatcher(ctx, app.config.OnlineCheckInterval)

	runREPL(ctx, app, app.getStatus, app.reader, app.out)
}

// report prints a command failure. Transport failures also flip the
// prompt to offline without waiting for the next status check.
func (app *App) report(err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		app.setMode(ModeOffline)
		fmt.Fprintln(app.out, "Error: server is unreachable, try again later")
		return err
	}

	var serr *client.ServerError
	if errors.As(err, &serr) {
		fmt.Fprintln(app.out, "Error:", serr.Message)
		return err
	}

	fmt.Fprintln(app.out, "Error:", err)
	return err
}
