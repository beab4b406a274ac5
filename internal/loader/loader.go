// Package loader reads the list of IP addresses to enrich.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// FileAccessError means the input file is missing or unreadable
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access input file %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// FormatError means the input file is not a readable workbook
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("input file %q is not a valid spreadsheet: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Load reads IP addresses from the first column of the first sheet.
// Order is preserved; fully blank rows are skipped.
func Load(path string, skipHeader bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &FileAccessError{Path: path, Err: errors.New("is a directory")}
	}

	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	ips := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		value := strings.TrimSpace(row[0])
		if value == "" {
			continue
		}
		ips = append(ips, value)
	}

	slog.Debug("input loaded",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("ips", len(ips)),
	)

	return ips, nil
}
