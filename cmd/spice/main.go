// Command spice queries CSPICE through the safe bindings: time conversion,
// positions, exports over a time window and kernel set discovery.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/woxQAQ/gospice/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage: spice [flags] <command> [args]

Commands:
  et <date>                                           convert a date to ephemeris time
  timout <et>                                         format an ephemeris time
  position <target> <observer> <date>                 position of target relative to observer
  export <target> <observer> <date> <duration> <step> positions over a window (seconds)
  kernels                                             list discovered kernel sets

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("spice", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "Path to configuration file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("backend", config.BackendWasm, "Backend hosting CSPICE (wasm, native)")
	flags.StringSlice("kernel", nil, "Kernel to load before the command (repeatable)")
	flags.StringSlice("kernel-path", nil, "Directory searched for kernel sets (repeatable)")
	flags.String("time-format", "", "Picture used to format epochs")
	flags.String("wasm-module", "", "CSPICE WebAssembly module")
	flags.String("library", "", "CSPICE shared library")
	format := flags.String("format", formatText, "Output format (text, json, yaml)")
	set := flags.String("set", "", "Kernel set to load before the command")
	frame := flags.String("frame", "", "Reference frame (default from the kernel set, else J2000)")
	abcorr := flags.String("abcorr", "", "Aberration correction (default from the kernel set, else NONE)")
	showVersion := flags.Bool("version", false, "Print version and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "spice %s (%s, %s)\n", version, commit, date)
		return 0
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(stderr, "spice: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "spice: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Debug("Starting spice",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("date", date),
		zap.String("backend", cfg.Backend),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	a := &app{
		cfg:    cfg,
		logger: logger,
		out:    stdout,
		open:   openLibrary,
		format: *format,
		set:    *set,
		frame:  *frame,
		abcorr: *abcorr,
	}
	if err := a.run(ctx, flags.Args()); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "spice: %v\n", err)
			flags.Usage()
			return 2
		}
		logger.Error("Command failed", zap.String("command", flags.Arg(0)), zap.Error(err))
		return 1
	}
	return 0
}

// newLogger builds a development logger at debug level and a production
// logger otherwise, both writing to w.
func newLogger(cfg *config.Config, w io.Writer) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if level == zapcore.DebugLevel {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, zap.AddCaller()), nil
}
