//go:build js

package main

import (
	"context"
	"log/slog"

	"github.com/octoberswimmer/reveal"
)

func run(ctx context.Context, log *slog.Logger) error {
	host := reveal.BrowserHost()
	host.Logger = log
	page := reveal.Bind(reveal.BrowserDocument(), host)
	log.Info("page bound", "typewriters", len(page.Typewriters()), "reveals", len(page.Reveals()))
	return page.Run(ctx)
}
