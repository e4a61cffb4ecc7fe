package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/config"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/execute"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return execute.New(cfg).Run(ctx)
}
