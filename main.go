package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeFn := SetupLogger(os.Stderr, cfg.LogLevel, cfg.SeqURL)
	defer closeFn()
	slog.SetDefault(logger)

	ctx := context.Background()
	validator := NewValidator()
	session := NewSession(validator, logger)
	if err := session.Connect(ctx, cfg.Target()); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot connect to sqlite. Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
	defer session.Close()

	console, err := newTermConsole(os.Stdout)
	if err != nil {
		logger.Error("terminal setup failed", "error", err)
		session.Close()
		closeFn()
		os.Exit(1)
	}
	defer console.Close()

	app := NewApp(session, console, os.Stdout, validator, cfg.PageSize, logger)
	if err := app.Run(ctx); err != nil {
		logger.Error("unexpected failure", "error", err)
		console.Close()
		session.Close()
		closeFn()
		os.Exit(1)
	}
}
