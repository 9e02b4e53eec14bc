package main

import (
	"context"
	"fmt"

	"github.com/woxQAQ/gospice/internal/config"
	"github.com/woxQAQ/gospice/internal/native"
	"github.com/woxQAQ/gospice/internal/wasm"
	"github.com/woxQAQ/gospice/pkg/spice"
	"go.uber.org/zap"
)

// openLibrary loads CSPICE with the configured backend.
func openLibrary(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*spice.Library, error) {
	switch cfg.Backend {
	case config.BackendWasm:
		inst, err := wasm.OpenFile(ctx, logger, &wasm.RuntimeConfig{
			MemoryPages:  cfg.Wasm.MemoryPages,
			DebugEnabled: cfg.Wasm.Debug,
			CacheDir:     cfg.Wasm.CacheDir,
			MaxInstances: cfg.Wasm.MaxInstances,
		}, cfg.Wasm.ModulePath, cfg.Wasm.KernelDirs)
		if err != nil {
			return nil, err
		}
		return spice.New(inst, logger), nil

	case config.BackendNative:
		lib, err := native.Open(cfg.Native.LibraryPath, logger)
		if err != nil {
			return nil, err
		}
		return spice.New(lib, logger), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
