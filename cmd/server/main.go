// Command server runs the feedsense HTTP API.
//
// Exit codes: 0 = clean shutdown, 1 = startup or runtime error.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/heartmarshall/feedsense-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
