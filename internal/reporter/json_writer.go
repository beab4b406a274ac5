package reporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/pkg/config"
)

// WriteJSON writes the report to output_<timestamp>.json
func WriteJSON(report *models.Report, cfg *config.Config) (string, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	outputPath := filepath.Join(cfg.OutputDir, OutputFileName(report.Metadata.GeneratedAt, "json"))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	slog.Debug("json written", slog.String("path", outputPath))
	return outputPath, nil
}
