// Package config provides the runtime options of the moo machine and loads
// them from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/core"
	"gopkg.in/yaml.v3"
)

// ErrConfig is wrapped by every error returned by Load and Validate.
var ErrConfig = errors.New("invalid configuration")

// Options are the runtime options of a run.
type Options struct {
	Mode            string   `toml:"mode" yaml:"mode"`
	MaxSteps        uint64   `toml:"max-steps" yaml:"max-steps"`
	Freq            sim.Freq `toml:"freq" yaml:"freq"`
	LogLevel        string   `toml:"log-level" yaml:"log-level"`
	LogFormat       string   `toml:"log-format" yaml:"log-format"`
	LogFile         string   `toml:"log-file" yaml:"log-file"`
	StateTableStyle string   `toml:"state-table-style" yaml:"state-table-style"`
	Lint            bool     `toml:"lint" yaml:"lint"`
}

// Default returns the options used when nothing is configured.
func Default() Options {
	return Options{
		Mode:            "run",
		Freq:            1 * sim.GHz,
		LogLevel:        "warn",
		LogFormat:       "text",
		StateTableStyle: "default",
	}
}

// Load reads the options from a file, on top of the defaults. The decoder
// is chosen by the file extension.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	opts := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &opts)
	case ".yaml", ".yml":
		err = decodeYAML(data, &opts)
	default:
		err = fmt.Errorf("%w: unsupported config format %q", ErrConfig, ext)
	}

	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}

	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}

	return opts, nil
}

func decodeTOML(data []byte, opts *Options) error {
	md, err := toml.Decode(string(data), opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrConfig, undecoded[0].String())
	}

	return nil
}

func decodeYAML(data []byte, opts *Options) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(opts)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return nil
}

// Validate checks that every option holds a supported value.
func (o Options) Validate() error {
	switch o.Mode {
	case "run", "trace", "step":
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrConfig, o.Mode)
	}

	if _, err := ParseLevel(o.LogLevel); err != nil {
		return err
	}

	switch o.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrConfig, o.LogFormat)
	}

	if o.Freq <= 0 {
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrConfig, float64(o.Freq))
	}

	if _, ok := core.TableStyle(o.StateTableStyle); !ok {
		return fmt.Errorf("%w: unknown table style %q", ErrConfig, o.StateTableStyle)
	}

	return nil
}

// Level returns the slog level of the options. It assumes the options have
// been validated.
func (o Options) Level() slog.Level {
	level, _ := ParseLevel(o.LogLevel)
	return level
}

// ParseLevel converts a level name into a slog level. "trace" maps to the
// instruction trace level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "trace":
		return core.LevelTrace, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrConfig, name)
	}
}
