package cli

import (
	"context"
	"errors"
	"fmt"
)

func (app *App) ShowIdentity(ctx context.Context) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.galleryService.Identity(ctx)
	if err != nil {
		return app.report(err)
	}
	fmt.Fprintf(app.out, "Identity %s, %s left\n", resp.IdentityToken, resp.TimeRemaining)
	return nil
}

func (app *App) NewIdentity(ctx context.Context) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.galleryService.NewIdentity(ctx)
	if err != nil {
		return app.report(err)
	}
	fmt.Fprintf(app.out, "New identity %s, valid until %s\n", resp.IdentityToken, resp.ExpiresAt.Local().Format(displayLayout))
	return nil
}

func (app *App) Post(ctx context.Context, imagePath string) error {
	text, err := app.readBody("What do you want to share?")
	if err != nil {
		return app.report(err)
	}
	if text == "" && imagePath == "" {
		return app.report(errors.New("nothing to post"))
	}

	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	resp, err := app.galleryService.Post(ctx, text, imagePath)
	if err != nil {
		return app.report(err)
	}
	fmt.Fprintf(app.out, "Posted %s\n", resp.ID)
	return nil
}

func (app *App) Gallery(ctx context.Context, limit, offset int) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	items, err := app.galleryService.Gallery(ctx, limit, offset)
	if err != nil {
		return app.report(err)
	}
	if len(items) == 0 {
		fmt.Fprintln(app.out, "The gallery is empty.")
		return nil
	}

	for _, it := range items {
		fmt.Fprintf(app.out, "[%s] %d applause, fades in %s\n", it.ID, it.ApplauseCount, it.TimeRemaining)
		if it.Text != "" {
			fmt.Fprintln(app.out, it.Text)
		}
		if it.ImageURL != "" {
			fmt.Fprintln(app.out, "image:", it.ImageURL)
		}
		fmt.Fprintln(app.out)
	}
	return nil
}

func (app *App) Applaud(ctx context.Context, id string) error {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	count, err := app.galleryService.Applaud(ctx, id)
	if err != nil {
		return app.report(err)
	}
	fmt.Fprintf(app.out, "%s now has %d applause\n", id, count)
	return nil
}
