package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	slogseq "github.com/sokkalf/slog-seq"
)

// logSink is a named destination for log records
type logSink struct {
	name    string
	handler slog.Handler
}

// fanoutHandler hands each record to every sink whose level admits it. A
// failing sink does not stop delivery to the others.
type fanoutHandler struct {
	sinks []logSink
}

func newFanoutHandler(sinks ...logSink) *fanoutHandler {
	return &fanoutHandler{sinks: sinks}
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if s.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle returns the first sink failure, naming the sink.
func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, s := range f.sinks {
		if !s.handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.handler.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = errors.Wrapf(err, "log sink %s", s.name)
		}
	}
	return first
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *fanoutHandler) derive(fn func(slog.Handler) slog.Handler) *fanoutHandler {
	sinks := make([]logSink, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = logSink{name: s.name, handler: fn(s.handler)}
	}
	return &fanoutHandler{sinks: sinks}
}

// names lists the sinks in delivery order.
func (f *fanoutHandler) names() []string {
	out := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		out[i] = s.name
	}
	return out
}

// SetupLogger builds the process logger and returns a cleanup function.
// Console output goes to w so it stays off the menus on stdout; records
// are also shipped to Seq when seqURL is set.
func SetupLogger(w io.Writer, level slog.Level, seqURL string) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: level}
	consoleHandler := slog.NewTextHandler(w, opts)
	if seqURL == "" {
		return slog.New(consoleHandler), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		seqURL,
		slogseq.WithBatchSize(1),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(&slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}),
	)
	if seqHandler == nil {
		return slog.New(consoleHandler), func() {}
	}

	fanout := newFanoutHandler(
		logSink{name: "console", handler: consoleHandler},
		logSink{name: "seq", handler: seqHandler},
	)
	logger := slog.New(fanout)
	logger.Debug("logger ready", "sinks", fanout.names(), "seq", seqURL)
	return logger, func() { seqHandler.Close() }
}
