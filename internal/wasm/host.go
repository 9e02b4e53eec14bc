package wasm

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

// guestOutput carries a guest's stdout and stderr into the log.
//
// CSPICE prints its error report to stdout in REPORT and ABORT modes; the
// bindings run in RETURN mode, so anything arriving here is unexpected and
// logged at warn level.
type guestOutput struct {
	stdout *zapio.Writer
	stderr *zapio.Writer
}

func newGuestOutput(logger *zap.Logger) *guestOutput {
	return &guestOutput{
		stdout: &zapio.Writer{Log: logger.With(zap.String("stream", "stdout")), Level: zapcore.WarnLevel},
		stderr: &zapio.Writer{Log: logger.With(zap.String("stream", "stderr")), Level: zapcore.ErrorLevel},
	}
}

// Close flushes partial lines.
func (o *guestOutput) Close() error {
	return multierr.Combine(o.stdout.Close(), o.stderr.Close())
}
