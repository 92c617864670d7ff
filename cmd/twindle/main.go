package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lisanmuaddib/twindle/internal/cli"
)

func main() {
	// Create context with cancellation on SIGINT and SIGTERM
	ctx, cancel := context.WithCancel(context.Background())

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	code := cli.Execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
