package kernel

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Scanner finds kernel set manifests on disk.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a new manifest scanner.
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{
		logger: logger.With(zap.String("component", "kernel-scanner")),
	}
}

// Scan reads every manifest found in paths. A path may hold a manifest
// itself or contain one per subdirectory. Broken manifests are logged and
// skipped as long as at least one set is found.
func (s *Scanner) Scan(paths []string) ([]*Manifest, error) {
	var manifests []*Manifest
	var errs []error

	for _, basePath := range paths {
		s.logger.Debug("Scanning kernel directory", zap.String("path", basePath))

		if _, err := os.Stat(filepath.Join(basePath, ManifestFile)); err == nil {
			m, err := ParseManifest(basePath)
			if err != nil {
				s.logger.Error("Failed to read manifest", zap.String("dir", basePath), zap.Error(err))
				errs = append(errs, err)
				continue
			}
			manifests = append(manifests, m)
			continue
		}

		entries, err := os.ReadDir(basePath)
		if err != nil {
			if os.IsNotExist(err) {
				s.logger.Warn("Kernel path does not exist", zap.String("path", basePath))
				continue
			}
			return nil, fmt.Errorf("failed to read directory '%s': %w", basePath, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			dir := filepath.Join(basePath, entry.Name())
			if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
				continue
			}

			m, err := ParseManifest(dir)
			if err != nil {
				s.logger.Error("Failed to read manifest",
					zap.String("dir", dir),
					zap.Error(err),
				)
				errs = append(errs, err)
				continue
			}

			manifests = append(manifests, m)
		}
	}

	if len(manifests) > 0 && len(errs) > 0 {
		s.logger.Warn("Some kernel sets are invalid",
			zap.Int("found", len(manifests)),
			zap.Int("invalid", len(errs)),
		)
	}

	if len(manifests) == 0 {
		return nil, &NoSetsFoundError{Paths: paths}
	}

	return manifests, nil
}
