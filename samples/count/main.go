package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/api"
	"github.com/sarchlab/moosim/core"
	"github.com/tebeka/atexit"
)

//go:embed count.cow
var countProgram string

var upTo = flag.Int("n", 5, "count from 1 up to n")
var trace = flag.Bool("trace", false, "print every instruction")

func count(n int, out io.Writer, withTrace bool) api.RunResult {
	program, err := core.Load(countProgram)
	if err != nil {
		panic(err)
	}

	driver := api.DriverBuilder{}.
		WithEngine(sim.NewSerialEngine()).
		WithFreq(1 * sim.GHz).
		WithConsole(core.NewConsole(strings.NewReader(fmt.Sprintln(n)), out)).
		WithOutput(out).
		Build("Driver")

	if withTrace {
		return driver.RunWithTrace(program)
	}

	return driver.RunPlain(program)
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
}

func main() {
	flag.Parse()

	result := count(*upTo, os.Stdout, *trace)
	if !result.OK() {
		fmt.Fprintln(os.Stderr, result.Reason)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
