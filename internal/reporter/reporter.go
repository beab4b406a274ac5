package reporter

import (
	"fmt"
	"time"

	"github.com/ppiankov/ipspectre/internal/models"
	"github.com/ppiankov/ipspectre/pkg/config"
)

// Reporter interface for generating reports
type Reporter interface {
	// Generate writes every configured format and returns the created paths
	Generate(report *models.Report) ([]string, error)
}

// reporter implements the Reporter interface
type reporter struct {
	config *config.Config
}

// New creates a new reporter instance
func New(cfg *config.Config) Reporter {
	return &reporter{
		config: cfg,
	}
}

// Generate generates the report
func (r *reporter) Generate(report *models.Report) ([]string, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var paths []string
	for _, format := range r.config.Formats() {
		var (
			path string
			err  error
		)
		switch format {
		case config.FormatXLSX:
			path, err = WriteXLSX(report, r.config)
		case config.FormatJSON:
			path, err = WriteJSON(report, r.config)
		case config.FormatText:
			path, err = WriteText(report, r.config)
		default:
			err = fmt.Errorf("unsupported format %q", format)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// OutputFileName returns output_<YYYYMMDDHHMMSS>.<ext> for the given instant
func OutputFileName(at time.Time, ext string) string {
	return fmt.Sprintf("output_%s.%s", at.Format("20060102150405"), ext)
}
