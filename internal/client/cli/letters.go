package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"
)

const displayLayout = "2006-01-02 15:04"

var errEmptyLetter = errors.New("letter is empty")

func (app *App) Ping(ctx context.Context) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.letterService.Ping(ctx)
	if err != nil {
		return app.report(err)
	}
	app.setMode(ModeOnline)
	fmt.Fprintf(app.out, "%s %s: %s\n", resp.App, resp.Version, resp.Status)
	return nil
}

func (app *App) Seal(ctx context.Context) error {
	title, err := GetSimpleText(app.reader, "Title (optional):", app.out)
	if err != nil {
		return app.report(err)
	}
	when, err := GetSimpleText(app.reader, "Open at (2030-01-02, 2030-01-02 15:04, 72h, 30d):", app.out)
	if err != nil {
		return app.report(err)
	}
	openAt, err := ParseOpenAt(when, app.clock.Now(), time.Local)
	if err != nil {
		return app.report(err)
	}
	body, err := app.readBody("Write your letter:")
	if err != nil {
		return app.report(err)
	}
	if body == "" {
		return app.report(errEmptyLetter)
	}

	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.letterService.Seal(ctx, body, title, openAt)
	if resp != nil {
		fmt.Fprintln(app.out, resp.Message)
		fmt.Fprintf(app.out, "Letter %s opens at %s\n", resp.ID, resp.OpenAt.Local().Format(displayLayout))
	}
	if err != nil {
		return app.report(err)
	}
	return nil
}

func (app *App) Void(ctx context.Context) error {
	title, err := GetSimpleText(app.reader, "Title (optional):", app.out)
	if err != nil {
		return app.report(err)
	}
	body, err := app.readBody("Write what you want to let go of:")
	if err != nil {
		return app.report(err)
	}
	if body == "" {
		return app.report(errEmptyLetter)
	}

	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.letterService.Void(ctx, body, title)
	if resp != nil {
		fmt.Fprintln(app.out, resp.Message)
	}
	if err != nil {
		return app.report(err)
	}
	return nil
}

func (app *App) Open(ctx context.Context, id string) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.letterService.Open(ctx, id)
	if resp != nil {
		if resp.Title != "" {
			fmt.Fprintf(app.out, "== %s ==\n", resp.Title)
		}
		fmt.Fprintf(app.out, "Sealed %s\n\n%s\n\n", resp.CreatedAt.Local().Format(displayLayout), resp.Content)
	}
	if err != nil {
		return app.report(err)
	}
	return nil
}

func (app *App) Openable(ctx context.Context) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	letters, err := app.letterService.Openable(ctx)
	if err != nil {
		return app.report(err)
	}
	if len(letters) == 0 {
		fmt.Fprintln(app.out, "No letters are ready yet.")
		return nil
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEALED\tOPENS AT")
	for _, l := range letters {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.CreatedAt.Local().Format(displayLayout), l.OpenAt.Local().Format(displayLayout))
	}
	return tw.Flush()
}

// Mine lists the local ledger; it works offline.
func (app *App) Mine(ctx context.Context) error {
	letters, err := app.letterService.Mine(ctx)
	if err != nil {
		return app.report(err)
	}
	if len(letters) == 0 {
		fmt.Fprintln(app.out, "You have not sealed any letters from this machine.")
		return nil
	}

	now := app.clock.Now()
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tOPENS\tSTATUS")
	for _, l := range letters {
		status := "sealed"
		switch {
		case l.SendToVoid:
			status = "void"
		case l.OpenedAt != nil:
			status = "opened"
		case l.Ready(now):
			status = "ready"
		}

		opens := l.OpenAt.Local().Format(displayLayout)
		if l.SendToVoid {
			opens = "never"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Title, opens, status)
	}
	return tw.Flush()
}
