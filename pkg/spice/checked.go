package spice

import (
	"context"

	"go.uber.org/zap"
)

// Checked calls entry points under the native error protocol. A call that
// sets the native error flag returns an *Error and zero outputs, and leaves
// the flag cleared.
type Checked struct {
	raw    *Raw
	logger *zap.Logger
}

// Raw returns the unchecked view of the same token.
func (chk *Checked) Raw() *Raw {
	return chk.raw
}

// run executes call between the protocol steps. Every step is mandatory:
// RETURN mode must be set before the call or a native error would abort.
// Once RETURN mode is set, the error flag is cleared on every exit path.
func (chk *Checked) run(ctx context.Context, function string, call func(raw *Raw) error) error {
	raw := chk.raw
	if err := raw.Erract(ctx, "SET", len("RETURN")+1, "RETURN"); err != nil {
		return err
	}
	cleared := false
	defer func() {
		if !cleared {
			chk.reset(ctx, function)
		}
	}()

	if err := call(raw); err != nil {
		return err
	}
	failed, err := raw.Failed(ctx)
	if err != nil {
		return err
	}
	if !failed {
		cleared = true
		return nil
	}

	short, err := raw.Getmsg(ctx, "SHORT", ShortMessageLen)
	if err != nil {
		return err
	}
	long, err := raw.Getmsg(ctx, "LONG", LongMessageLen)
	if err != nil {
		return err
	}
	if err := raw.Reset(ctx); err != nil {
		return err
	}
	cleared = true

	e := newError(function, short, long)
	chk.logger.Debug("Native error",
		zap.String("function", function),
		zap.String("short", e.Short),
		zap.Stringer("kind", e.Kind),
	)
	return e
}

// reset clears the error flag after a call that failed outside the native
// error protocol. It fails quietly on a token that can no longer call in.
func (chk *Checked) reset(ctx context.Context, function string) {
	if err := chk.raw.Reset(context.WithoutCancel(ctx)); err != nil {
		chk.logger.Debug("Failed to clear the error flag",
			zap.String("function", function),
			zap.Error(err),
		)
	}
}
