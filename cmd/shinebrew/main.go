package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lizardbyte/shinebrew/cmd/shinebrew/internal"
)

func main() {
	os.Exit(run())
}

// run returns the exit code once the signal handlers are released.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return internal.Execute(ctx)
}
