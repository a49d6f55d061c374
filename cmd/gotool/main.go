package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/liangyou/gotool/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp(os.Stdout, os.Stderr).Run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
