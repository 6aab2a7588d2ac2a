// Command moosim runs moo programs.
//
// Usage:
//
//	moosim [flags] program.cow
//
// The program reads from standard input and writes to standard output.
// Flags override the values of the config file given with -config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/api"
	"github.com/sarchlab/moosim/config"
	"github.com/sarchlab/moosim/core"
	"github.com/sarchlab/moosim/verify"
	"github.com/tebeka/atexit"
)

const (
	exitOK    = 0
	exitAbort = 1
	exitUsage = 2
)

type cli struct {
	programPath string
	reportPath  string
	monitor     bool
	opts        config.Options
}

func parseArgs(args []string, stderr io.Writer) (cli, error) {
	var c cli

	fs := flag.NewFlagSet("moosim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: moosim [flags] program.cow")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "load options from a .toml or .yaml file")
	mode := fs.String("mode", "", "run, trace or step")
	trace := fs.Bool("trace", false, "same as -mode trace")
	step := fs.Bool("step", false, "same as -mode step")
	maxSteps := fs.Uint64("max-steps", 0, "abort after this many instructions, 0 for no limit")
	logLevel := fs.String("log-level", "", "debug, info, trace, warn or error")
	logFormat := fs.String("log-format", "", "text or json")
	logFile := fs.String("log-file", "", "also write JSON logs to this file")
	style := fs.String("style", "", "table style of the state dump")
	lint := fs.Bool("lint", false, "report suspicious code before running")
	fs.StringVar(&c.reportPath, "report", "", "write a program report to this file")
	fs.BoolVar(&c.monitor, "monitor", false, "start the akita monitoring server")

	if err := fs.Parse(args); err != nil {
		return c, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return c, errors.New("expected exactly one program file")
	}
	c.programPath = fs.Arg(0)

	c.opts = config.Default()
	if *configPath != "" {
		opts, err := config.Load(*configPath)
		if err != nil {
			return c, err
		}
		c.opts = opts
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			c.opts.Mode = *mode
		case "trace":
			if *trace {
				c.opts.Mode = "trace"
			}
		case "step":
			if *step {
				c.opts.Mode = "step"
			}
		case "max-steps":
			c.opts.MaxSteps = *maxSteps
		case "log-level":
			c.opts.LogLevel = *logLevel
		case "log-format":
			c.opts.LogFormat = *logFormat
		case "log-file":
			c.opts.LogFile = *logFile
		case "style":
			c.opts.StateTableStyle = *style
		case "lint":
			c.opts.Lint = *lint
		}
	})

	if err := c.opts.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

func run(c cli, stdin io.Reader, stdout, stderr io.Writer) int {
	program, err := core.LoadProgramFile(c.programPath)
	if err != nil {
		fmt.Fprintf(stderr, "moosim: %v\n", err)
		return exitUsage
	}

	if c.opts.Lint || c.reportPath != "" {
		report := verify.GenerateReport(c.programPath, program)

		if c.opts.Lint {
			for _, issue := range report.Issues {
				fmt.Fprintf(stderr, "%s: %s\n", c.programPath, issue)
			}
		}

		if c.reportPath != "" {
			if err := report.SaveReportToFile(c.reportPath); err != nil {
				fmt.Fprintf(stderr, "moosim: %v\n", err)
				return exitUsage
			}
		}
	}

	engine := sim.NewSerialEngine()
	builder := api.DriverBuilder{}.
		WithEngine(engine).
		WithConsole(core.NewConsole(stdin, stdout)).
		WithOutput(stdout).
		WithOptions(c.opts)

	if c.monitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		builder = builder.WithMonitor(monitor)
		monitor.StartServer()
	}

	result := builder.Build("Driver").Run(program)

	slog.Info("run finished",
		"Status", result.Status.String(),
		"Steps", result.Steps,
		"Cycles", result.Cycles,
	)

	if !result.OK() {
		fmt.Fprintf(stderr, "moosim: %v\n", result.Reason)
		return exitAbort
	}

	return exitOK
}

func main() {
	c, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(exitOK)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "moosim: %v\n", err)
		atexit.Exit(exitUsage)
	}

	logger, err := newLogger(c.opts, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "moosim: %v\n", err)
		atexit.Exit(exitUsage)
	}
	slog.SetDefault(logger)

	atexit.Exit(run(c, os.Stdin, os.Stdout, os.Stderr))
}
