package chart

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/marketlens/stockcompare/internal/logger"
	"github.com/marketlens/stockcompare/pkg/errors"
)

// Writer serializes chart specifications to disk.
type Writer struct {
	logger *logger.Logger
}

func NewWriter(logger *logger.Logger) *Writer {
	return &Writer{
		logger: logger,
	}
}

// Write serializes the spec as indented JSON to outputPath, creating parent
// directories as needed.
func (w *Writer) Write(spec Spec, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeChartWriteFailed, err, "failed to create output directory: %s", dir)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeChartEncodeFailed, "failed to encode chart specification", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeChartWriteFailed, err, "failed to write chart specification: %s", outputPath)
	}

	w.logger.Info("Chart specification written",
		zap.String("path", outputPath),
		zap.Int("bytes", len(data)))

	return nil
}
