package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/promakler/sitekit/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sitekit: %v\n", err)
		os.Exit(1)
	}
}
