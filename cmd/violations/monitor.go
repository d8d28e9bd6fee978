package main

import (
	"context"
	"time"
)

// monitor refetches on every tick and calls dispatch when the collection
// differs from what was last seen.
func (app *application) monitor(ctx context.Context, done <-chan bool, dispatch func()) {
	ticker := time.NewTicker(app.interval)
	defer ticker.Stop()

	app.poll(ctx, dispatch)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			app.poll(ctx, dispatch)
		}
	}
}

func (app *application) poll(ctx context.Context, dispatch func()) {
	if err := app.controller.FetchViolations(ctx); err != nil {
		app.logger.Warn("poll failed", "error", err)
		return
	}

	// Try to print only when something has changed
	if app.controller.HasChanges() {
		dispatch()
	}
}
