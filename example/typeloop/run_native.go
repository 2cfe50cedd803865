//go:build !js

package main

import (
	"context"
	"errors"
	"log/slog"
)

func run(context.Context, *slog.Logger) error {
	return errors.New("typeloop runs in the browser: build it with GOOS=js GOARCH=wasm")
}
