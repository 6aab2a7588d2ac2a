package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/sarchlab/moosim/config"
	"github.com/sarchlab/moosim/core"
	"github.com/tebeka/atexit"
)

// newLogger builds the handler chain selected by the options. With a log
// file, records go to both the terminal handler and a JSON file handler.
func newLogger(opts config.Options, stderr io.Writer) (*slog.Logger, error) {
	handlerOpts := &slog.HandlerOptions{
		Level:       opts.Level(),
		ReplaceAttr: replaceLevel,
	}

	var terminal slog.Handler
	if opts.LogFormat == "json" {
		terminal = slog.NewJSONHandler(stderr, handlerOpts)
	} else {
		terminal = slog.NewTextHandler(stderr, handlerOpts)
	}

	if opts.LogFile == "" {
		return slog.New(terminal), nil
	}

	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	atexit.Register(func() {
		f.Close()
	})

	return slog.New(slogmulti.Fanout(
		terminal,
		slog.NewJSONHandler(f, handlerOpts),
	)), nil
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}

	if level, ok := a.Value.Any().(slog.Level); ok && level == core.LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}

	return a
}
