package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bethropolis/source-map/internal/app"
	"github.com/bethropolis/source-map/internal/config"
)

func main() {
	// Load configuration from command-line flags
	cfg := config.New()

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Error("%v", err)
		stop()
		os.Exit(1)
	}
}
