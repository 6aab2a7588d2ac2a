package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/api"
	"github.com/sarchlab/moosim/core"
	"github.com/tebeka/atexit"
)

//go:embed hello.cow
var helloProgram string

func hello(driver api.Driver) api.RunResult {
	program, err := core.Load(helloProgram)
	if err != nil {
		panic(err)
	}

	return driver.Run(program)
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
}

func main() {
	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithConsole(core.NewConsole(os.Stdin, os.Stdout)).
		Build("Driver")

	result := hello(driver)
	if !result.OK() {
		fmt.Fprintln(os.Stderr, result.Reason)
		atexit.Exit(1)
	}

	fmt.Printf("Steps: %d, Cycles: %d\n", result.Steps, result.Cycles)

	atexit.Exit(0)
}
