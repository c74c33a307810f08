package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rezkam/eisen/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := command.NewApp(os.Stdout, os.Stderr)
	err := app.RunContext(ctx, os.Args)

	stop()
	os.Exit(command.ExitCode(err))
}
