package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/pkg/config"
)

const (
	textANSIReset = "\x1b[0m"
	textANSIBold  = "\x1b[1m"
	textNoValue   = "n/a"
)

// WriteText writes a human-readable report to output_<timestamp>.txt and stdout.
func WriteText(report *models.Report, cfg *config.Config) (string, error) {
	return writeText(report, cfg, os.Stdout)
}

func writeText(report *models.Report, cfg *config.Config, out io.Writer) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is nil")
	}
	if cfg == nil {
		return "", fmt.Errorf("config is nil")
	}
	if out == nil {
		return "", fmt.Errorf("writer is nil")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(cfg.OutputDir, OutputFileName(report.Metadata.GeneratedAt, "txt"))
	if err := os.WriteFile(outputPath, []byte(renderTextReport(report, false)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	if _, err := io.WriteString(out, renderTextReport(report, supportsANSI(out))); err != nil {
		return "", fmt.Errorf("failed to write text report to output: %w", err)
	}

	return outputPath, nil
}

func renderTextReport(report *models.Report, useANSI bool) string {
	var b strings.Builder

	generatedAt := strings.TrimSpace(report.Timestamp)
	if generatedAt == "" {
		if !report.Metadata.GeneratedAt.IsZero() {
			generatedAt = report.Metadata.GeneratedAt.UTC().Format(time.RFC3339)
		} else {
			generatedAt = "unknown"
		}
	}

	input := strings.TrimSpace(report.Metadata.InputFile)
	if input == "" {
		input = "unknown"
	}

	writeTextSectionHeader(&b, "IPSpectre Reputation Report", useANSI)
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt)
	fmt.Fprintf(&b, "Input: %s\n", input)
	fmt.Fprintf(&b, "IPs checked: %s\n", humanize.Comma(int64(report.Metadata.TotalIPs)))
	fmt.Fprintf(&b, "Failed lookups: %s\n", humanize.Comma(int64(report.Metadata.FailedLookups)))
	b.WriteString("\n")

	writeTextSectionHeader(&b, "Results", useANSI)
	if len(report.Rows) == 0 {
		b.WriteString("No IPs checked.\n")
		return b.String()
	}

	b.WriteString("IP                                       SCORE REPORTS LAST REPORTED             HOURS      WEEKS  MONTHS\n")
	b.WriteString("-------------------------------------------------------------------------------------------------------------\n")
	for _, row := range report.Rows {
		fmt.Fprintf(
			&b,
			"%-40s %5s %7s %-25s %10s %6s %7s\n",
			truncateTextValue(row.IP, 40),
			formatInt(row.Score),
			formatInt(row.Reports),
			truncateTextValue(formatString(row.LastUpdated), 25),
			formatHours(row.Hours),
			formatWhole(row.Weeks),
			formatWhole(row.Months),
		)
	}

	return b.String()
}

func writeTextSectionHeader(b *strings.Builder, title string, useANSI bool) {
	header := title
	if useANSI {
		header = textANSIBold + title + textANSIReset
	}
	fmt.Fprintf(b, "%s\n", header)
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", len(title)))
}

func supportsANSI(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice != 0
}

func formatInt(v *int) string {
	if v == nil {
		return textNoValue
	}
	return strconv.Itoa(*v)
}

func formatString(v *string) string {
	if v == nil {
		return textNoValue
	}
	return *v
}

func formatHours(v *float64) string {
	if v == nil {
		return textNoValue
	}
	return humanize.FormatFloat("#,###.##", *v)
}

func formatWhole(v *float64) string {
	if v == nil {
		return textNoValue
	}
	return strconv.FormatFloat(*v, 'f', 0, 64)
}

func truncateTextValue(value string, width int) string {
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}
