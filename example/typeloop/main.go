// Command typeloop binds the reveal effects of the page it is loaded into.
// Serve it with `reveal serve ./example/typeloop`.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/octoberswimmer/reveal"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := run(context.Background(), log); err != nil && !errors.Is(err, reveal.ErrStopped) {
		log.Error("typeloop", "err", err)
		os.Exit(1)
	}
}
