// Command spicegen renders the Raw and Checked bindings of pkg/spice from a
// signatures schema. It is run through go:generate.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/woxQAQ/gospice/internal/gen"
	"go.uber.org/zap"
)

func main() {
	schemaPath := pflag.String("schema", "signatures.yaml", "Path to the signatures schema")
	outDir := pflag.String("out", ".", "Directory receiving the generated files")
	verbose := pflag.Bool("verbose", false, "Log every generated file")
	pflag.Parse()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	if err := run(*schemaPath, *outDir, logger); err != nil {
		fmt.Fprintln(os.Stderr, "spicegen:", err)
		os.Exit(1)
	}
}

func run(schemaPath, outDir string, logger *zap.Logger) error {
	schema, err := gen.LoadSchema(schemaPath)
	if err != nil {
		return err
	}
	files, err := gen.Generate(schema)
	if err != nil {
		return err
	}
	for name, src := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("Generated bindings",
			zap.String("file", path),
			zap.Int("declarations", len(schema.Functions)),
		)
	}
	return nil
}
