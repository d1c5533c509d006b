package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

// Config holds the command-line settings
type Config struct {
	Path     string
	PageSize int
	LogLevel slog.Level
	SeqURL   string
}

// Target is the database the command line asks for
func (c *Config) Target() Target {
	if c.Path == "" {
		return MemoryTarget()
	}
	return FileTarget(c.Path)
}

func parseConfig(args []string) (*Config, error) {
	flags := flag.NewFlagSet("sqlmenu", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [--path my.db]\n\nInteractive demonstration of basic sqlite features.\nWithout --path the database lives in memory.\n\n", os.Args[0])
		flags.PrintDefaults()
	}
	var cfg Config
	var level string
	flags.StringVarP(&cfg.Path, "path", "p", "", "Work on the sqlite file at this path")
	flags.IntVar(&cfg.PageSize, "page-size", defaultPageSize, "Rows shown per page")
	flags.StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.SeqURL, "seq-url", "", "Also ship logs to this Seq server")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	if cfg.PageSize <= 0 {
		return nil, errors.Errorf("--page-size must be positive, got %d", cfg.PageSize)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrap(err, "--log-level")
	}
	return &cfg, nil
}
