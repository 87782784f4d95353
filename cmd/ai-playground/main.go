package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"ai-playground/internal/cli"
)

const version = "0.1.0"

func main() {
	root := cli.NewRootCmd()

	// fang добавляет --version, completions и manpages.
	// SIGTERM отменяет контекст команды, serve успевает остановиться штатно
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(cli.ShutdownSignals...),
	); err != nil {
		os.Exit(1)
	}
}
