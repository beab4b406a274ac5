package reporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/pkg/config"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes report rows to output_<timestamp>.xlsx in the output directory.
// Nil fields are left as empty cells.
func WriteXLSX(report *models.Report, cfg *config.Config) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())

	header := make([]interface{}, len(models.Columns))
	for i, column := range models.Columns {
		header[i] = column
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range report.Rows {
		for col, value := range rowCells(row) {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", fmt.Errorf("failed to address cell: %w", err)
			}
			if err := book.SetCellValue(sheet, cell, value); err != nil {
				return "", fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	outputPath := filepath.Join(cfg.OutputDir, OutputFileName(report.Metadata.GeneratedAt, "xlsx"))
	if err := book.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	slog.Debug("xlsx written", slog.String("path", outputPath), slog.Int("rows", len(report.Rows)))
	return outputPath, nil
}

// rowCells returns the row in column order with nil for missing values
func rowCells(row models.Row) []interface{} {
	cells := []interface{}{row.IP, nil, nil, nil, nil, nil, nil}
	if row.Score != nil {
		cells[1] = *row.Score
	}
	if row.Reports != nil {
		cells[2] = *row.Reports
	}
	if row.LastUpdated != nil {
		cells[3] = *row.LastUpdated
	}
	if row.Hours != nil {
		cells[4] = *row.Hours
	}
	if row.Weeks != nil {
		cells[5] = *row.Weeks
	}
	if row.Months != nil {
		cells[6] = *row.Months
	}
	return cells
}
